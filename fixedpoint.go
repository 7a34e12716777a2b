package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FixedScale is the wire scale for positions, angles and direction vectors.
// Counterparts must use the same factor.
const FixedScale = 1000

// EncodeFixed converts a simulation value into its wire integer
func EncodeFixed(v float64) int64 {
	return int64(math.Round(v * FixedScale))
}

// DecodeFixed parses a wire integer token back into a simulation value
func DecodeFixed(tok string) (float64, error) {
	n, err := parseNumber(tok)
	if err != nil {
		return 0, err
	}
	return n / FixedScale, nil
}

func parseNumber(tok string) (float64, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, fmt.Errorf("empty number: %w", ErrMalformedRecord)
	}
	n, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("number %q: %w", tok, ErrMalformedRecord)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("number %q not finite: %w", tok, ErrMalformedRecord)
	}
	return n, nil
}

func parseInt(tok string) (int, error) {
	tok = strings.TrimSpace(tok)
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("integer %q: %w", tok, ErrMalformedRecord)
	}
	return n, nil
}
