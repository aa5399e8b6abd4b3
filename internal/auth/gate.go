// Package auth implements the access gate: it mints bearer tokens on
// successful login and validates them on every guarded request.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried inside a minted token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Gate owns the set of valid bearer tokens for the lifetime of the process.
// Tokens are signed with a secret generated at construction, so a restart
// invalidates every previously issued token. The issued-at map is the
// authoritative validity check; the signature is verified on top of it.
type Gate struct {
	secret []byte

	mu     sync.Mutex
	tokens map[string]time.Time
}

// NewGate creates a gate with a fresh random signing secret and an empty
// token set.
func NewGate() (*Gate, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generating gate secret: %w", err)
	}
	return &Gate{
		secret: secret,
		tokens: make(map[string]time.Time),
	}, nil
}

// Mint issues a new bearer token for the given user and records it as valid.
func (g *Gate) Mint(username string) (string, error) {
	jti := make([]byte, 16)
	if _, err := rand.Read(jti); err != nil {
		return "", fmt.Errorf("generating token id: %w", err)
	}

	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       hex.EncodeToString(jti),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	g.mu.Lock()
	g.tokens[signed] = now
	g.mu.Unlock()

	return signed, nil
}

// Validate reports whether the token was minted by this gate instance and
// returns its claims.
func (g *Gate) Validate(tokenStr string) (*Claims, error) {
	g.mu.Lock()
	_, known := g.tokens[tokenStr]
	g.mu.Unlock()
	if !known {
		return nil, fmt.Errorf("unknown token")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
