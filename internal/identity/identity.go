package identity

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jmoiron/sqlx"
)

// Identity is who a connection belongs to, resolved before any gameplay.
type Identity struct {
	PlayerID string
	Rating   int
}

var ErrInvalidToken = errors.New("invalid identity token")

// Provider resolves a connection's bearer token to a player identity. An
// empty token resolves to a fresh anonymous guest.
type Provider interface {
	Resolve(ctx context.Context, token string) (Identity, error)
}

// JWTProvider verifies signed tokens and loads the player's stored rating.
// Tokenless connections play as guests at the default rating.
type JWTProvider struct {
	db            *sqlx.DB
	secret        []byte
	defaultRating int
}

func NewJWTProvider(db *sqlx.DB, secret string, defaultRating int) *JWTProvider {
	return &JWTProvider{db: db, secret: []byte(secret), defaultRating: defaultRating}
}

func (p *JWTProvider) Resolve(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{PlayerID: guestID(), Rating: p.defaultRating}, nil
	}

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{PlayerID: claims.Subject, Rating: p.lookupRating(ctx, claims.Subject)}, nil
}

func (p *JWTProvider) lookupRating(ctx context.Context, playerID string) int {
	if p.db == nil {
		return p.defaultRating
	}
	var rating int
	err := p.db.GetContext(ctx, &rating, `SELECT rating FROM players WHERE player_id = $1`, playerID)
	if err == sql.ErrNoRows {
		return p.defaultRating
	}
	if err != nil {
		log.Printf("[IDENTITY] Rating lookup failed for %s: %v", playerID, err)
		return p.defaultRating
	}
	return rating
}

func guestID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return "guest_" + hex.EncodeToString(b)
}

// Static maps tokens to fixed identities. Test support.
type Static struct {
	Identities    map[string]Identity
	DefaultRating int
}

func (s Static) Resolve(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{PlayerID: guestID(), Rating: s.DefaultRating}, nil
	}
	id, ok := s.Identities[token]
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return id, nil
}
