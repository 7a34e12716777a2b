package main

import (
	"errors"
	"fmt"
	"strings"
)

// Client -> Server datagram tags
const (
	MsgRock   = "rock"
	MsgJoin   = "join"
	MsgPos    = "pos"
	MsgBullet = "bul"
)

// Server -> Client datagram tags
const (
	MsgJoinOK    = "join-ok"
	MsgRockOK    = "rock-ok"
	MsgNewPlayer = "newplayer"
	// MsgBullet is shared by both directions
)

const (
	recordSep = ";"
	fieldSep  = ","
)

var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrShortRecord     = errors.New("record has too few fields")
	ErrUnknownTag      = errors.New("unknown message tag")
)

// Message is one decoded inbound record
type Message interface {
	Tag() string
}

// JoinOKMsg initializes the local ship
type JoinOKMsg struct {
	ID       int
	X, Y     float64
	Angle    float64
	Spice    int
	Energy   int
	ShieldOn bool
}

// RockOKMsg carries one asteroid of a snapshot
type RockOKMsg struct {
	ID     int
	X, Y   float64
	Angle  float64 // heading of travel, only used on insert
	Speed  float64 // wire units per ms
	Size   float64
	Health float64
}

// NewPlayerMsg announces another ship joining
type NewPlayerMsg struct {
	ID int
}

// BulletMsg is a shot fired by any ship
type BulletMsg struct {
	ID     int
	X, Y   float64
	DX, DY float64
}

func (JoinOKMsg) Tag() string    { return MsgJoinOK }
func (RockOKMsg) Tag() string    { return MsgRockOK }
func (NewPlayerMsg) Tag() string { return MsgNewPlayer }
func (BulletMsg) Tag() string    { return MsgBullet }

// SplitBatch splits a datagram into records and each record into fields.
// Blank records (e.g. from a trailing separator) are dropped.
func SplitBatch(datagram string) [][]string {
	parts := strings.Split(datagram, recordSep)
	records := make([][]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		records = append(records, strings.Split(p, fieldSep))
	}
	return records
}

// ParseRecord decodes one record's fields into a typed message
func ParseRecord(fields []string) (Message, error) {
	if len(fields) == 0 {
		return nil, ErrShortRecord
	}
	tag := strings.TrimSpace(fields[0])
	switch tag {
	case MsgJoinOK:
		return parseJoinOK(fields)
	case MsgRockOK:
		return parseRockOK(fields)
	case MsgNewPlayer:
		if len(fields) < 2 {
			return nil, fmt.Errorf("%s: %w", tag, ErrShortRecord)
		}
		id, err := parseInt(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s id: %w", tag, err)
		}
		return NewPlayerMsg{ID: id}, nil
	case MsgBullet:
		return parseBullet(fields)
	}
	return nil, fmt.Errorf("%q: %w", tag, ErrUnknownTag)
}

// fieldReader decodes fields positionally and keeps the first error
type fieldReader struct {
	tag    string
	fields []string
	err    error
}

func (r *fieldReader) fixed(i int, name string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := DecodeFixed(r.fields[i])
	if err != nil {
		r.err = fmt.Errorf("%s %s: %w", r.tag, name, err)
	}
	return v
}

func (r *fieldReader) number(i int, name string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := parseNumber(r.fields[i])
	if err != nil {
		r.err = fmt.Errorf("%s %s: %w", r.tag, name, err)
	}
	return v
}

func (r *fieldReader) integer(i int, name string) int {
	if r.err != nil {
		return 0
	}
	v, err := parseInt(r.fields[i])
	if err != nil {
		r.err = fmt.Errorf("%s %s: %w", r.tag, name, err)
	}
	return v
}

func newFieldReader(fields []string, want int) (*fieldReader, error) {
	if len(fields) < want {
		return nil, fmt.Errorf("%s: want %d fields, got %d: %w", fields[0], want, len(fields), ErrShortRecord)
	}
	return &fieldReader{tag: fields[0], fields: fields}, nil
}

func parseJoinOK(fields []string) (Message, error) {
	r, err := newFieldReader(fields, 8)
	if err != nil {
		return nil, err
	}
	m := JoinOKMsg{
		ID:       r.integer(1, "id"),
		X:        r.fixed(2, "x"),
		Y:        r.fixed(3, "y"),
		Angle:    r.fixed(4, "angle"),
		Spice:    r.integer(5, "spice"),
		Energy:   r.integer(6, "energy"),
		ShieldOn: r.integer(7, "shield") != 0,
	}
	return m, r.err
}

func parseRockOK(fields []string) (Message, error) {
	r, err := newFieldReader(fields, 8)
	if err != nil {
		return nil, err
	}
	m := RockOKMsg{
		ID:     r.integer(1, "id"),
		X:      r.fixed(2, "x"),
		Y:      r.fixed(3, "y"),
		Angle:  r.fixed(4, "angle"),
		Speed:  r.number(5, "speed"),
		Size:   r.number(6, "size"),
		Health: r.number(7, "health"),
	}
	if r.err != nil {
		return nil, r.err
	}
	if m.Size <= 0 || m.Size > MaxRockSize {
		return nil, fmt.Errorf("%s size %v out of range: %w", r.tag, m.Size, ErrMalformedRecord)
	}
	if m.Health <= 0 || m.Health > MaxRockHealth {
		return nil, fmt.Errorf("%s health %v out of range: %w", r.tag, m.Health, ErrMalformedRecord)
	}
	return m, nil
}

func parseBullet(fields []string) (Message, error) {
	r, err := newFieldReader(fields, 6)
	if err != nil {
		return nil, err
	}
	m := BulletMsg{
		ID: r.integer(1, "id"),
		X:  r.fixed(2, "x"),
		Y:  r.fixed(3, "y"),
		DX: r.fixed(4, "dx"),
		DY: r.fixed(5, "dy"),
	}
	return m, r.err
}

// FormatPos encodes the per-tick position update for a ship
func FormatPos(s *Ship) string {
	return fmt.Sprintf("%s,%d,%d,%d,%d", MsgPos, s.ID, EncodeFixed(s.X), EncodeFixed(s.Y), EncodeFixed(s.Angle))
}

// FormatBullet encodes a locally fired bullet
func FormatBullet(b *Bullet) string {
	return fmt.Sprintf("%s,%d,%d,%d,%d,%d", MsgBullet, b.OwnerID,
		EncodeFixed(b.X), EncodeFixed(b.Y), EncodeFixed(b.DX), EncodeFixed(b.DY))
}
