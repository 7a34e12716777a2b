package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const (
	viewerTokenExpiry = 12 * time.Hour
	secretLen         = 32
	hkdfInfo          = "galactica bridge token key"
)

// Auth issues and checks the tokens that gate the render bridge
type Auth struct {
	jwtSecret []byte
}

// NewAuth derives the signing key from passphrase when given, otherwise
// loads (or creates and persists) a random one
func NewAuth(db *DB, passphrase string) (*Auth, error) {
	if passphrase != "" {
		key, err := deriveSecret(passphrase)
		if err != nil {
			return nil, err
		}
		return &Auth{jwtSecret: key}, nil
	}
	secret, err := loadOrCreateSecret(db)
	if err != nil {
		return nil, err
	}
	return &Auth{jwtSecret: secret}, nil
}

func deriveSecret(passphrase string) ([]byte, error) {
	key := make([]byte, secretLen)
	r := hkdf.New(sha256.New, []byte(passphrase), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive bridge key: %w", err)
	}
	return key, nil
}

// loadOrCreateSecret loads the JWT secret from the database, or generates
// and persists a new one if none exists.
func loadOrCreateSecret(db *DB) ([]byte, error) {
	if db != nil {
		if h := db.GetSetting("jwt_secret"); h != "" {
			if b, err := hex.DecodeString(h); err == nil && len(b) == secretLen {
				return b, nil
			}
		}
	}
	secret := make([]byte, secretLen)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate bridge key: %w", err)
	}
	if db != nil {
		if err := db.SetSetting("jwt_secret", hex.EncodeToString(secret)); err != nil {
			log.Printf("warning: could not persist JWT secret: %v", err)
		}
	}
	return secret, nil
}

// IssueToken signs a bridge token for a role
func (a *Auth) IssueToken(role string) (string, error) {
	if role != RoleViewer && role != RoleController {
		return "", fmt.Errorf("unknown role %q", role)
	}
	claims := jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(viewerTokenExpiry).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateToken checks a bridge token and returns its role
func (a *Auth) ValidateToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	role, ok := claims["role"].(string)
	if !ok || (role != RoleViewer && role != RoleController) {
		return "", fmt.Errorf("invalid token claims")
	}
	return role, nil
}
