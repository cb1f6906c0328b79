package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/jobboard-service/internal/config"
)

// ErrInvalidToken is the only error Validate returns. Callers must not learn
// which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated subject a token is issued for.
type Identity struct {
	ID    int64
	Email string
	Role  Role
}

// TokenManager issues and validates signed HS256 tokens. All fields come from
// the immutable startup configuration; the manager is safe for concurrent use.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenManager builds a manager from auth configuration. An empty secret,
// issuer or audience, or a non-positive TTL, is a configuration error: the
// caller is expected to abort startup rather than run with a guessed value.
func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}
	if cfg.Issuer == "" {
		return nil, errors.New("auth: token issuer must not be empty")
	}
	if cfg.Audience == "" {
		return nil, errors.New("auth: token audience must not be empty")
	}
	if cfg.TokenTTL() <= 0 {
		return nil, errors.New("auth: token TTL must be positive")
	}
	return &TokenManager{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TokenTTL(),
	}, nil
}

// Issue builds and signs a token for the identity. The role is embedded twice,
// as its canonical name and as its numeric code, so downstream claim-type
// normalization cannot strip it entirely.
func (tm *TokenManager) Issue(identity Identity, now time.Time) (string, time.Time, error) {
	if !identity.Role.Valid() {
		return "", time.Time{}, errors.New("auth: cannot issue token for undefined role")
	}

	expiresAt := now.Add(tm.ttl)
	claims := jwt.MapClaims{
		ClaimSubject:  strconv.FormatInt(identity.ID, 10),
		ClaimEmail:    identity.Email,
		ClaimRoleName: identity.Role.Name(),
		ClaimRoleCode: identity.Role.Code(),
		ClaimTokenID:  uuid.NewString(),
		"iss":         tm.issuer,
		"aud":         tm.audience,
		"iat":         jwt.NewNumericDate(now),
		"exp":         jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate verifies signature, issuer, audience and the time window
// iat <= now < exp with zero leeway, then exposes the payload as a ClaimSet.
// A token presented at exactly its expiry instant is already invalid.
// It performs no role resolution.
func (tm *TokenManager) Validate(tokenStr string, now time.Time) (*ClaimSet, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, jwt.MapClaims{}, func(token *jwt.Token) (any, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithAudience(tm.audience),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return NewClaimSet(claims), nil
}
