package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adminhub/identity-system/internal/core/domain"
	"github.com/adminhub/identity-system/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// TokenIssuer signs time-bounded HS256 credentials embedding the user's
// identity and role. The request layer validates with the same secret,
// issuer, and audience.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	clock    ports.Clock
}

func NewTokenIssuer(secret, issuer, audience string, ttl time.Duration, clock ports.Clock) *TokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		clock:    clock,
	}
}

// Issue returns a signed token for the user. Expiry forces re-authentication;
// there is no refresh mechanism.
func (i *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := i.clock.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"role":  string(user.Role),
		"iss":   i.issuer,
		"aud":   i.audience,
		"iat":   now.Unix(),
		"exp":   now.Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}
