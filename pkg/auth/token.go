package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/coilbill-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AdminAudience is stamped on every token so tokens minted for other
// consumers of the same secret are refused.
const AdminAudience = "coilbill-admin"

const clockSkew = 30 * time.Second

var jwtSigningMethod = jwt.SigningMethodHS256

// Issuer mints and verifies admin session tokens for one signing config.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewIssuer validates cfg once so Issue and Verify never see a partial config.
func NewIssuer(cfg config.JWTConfig) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		return nil, errors.New("jwt issuer is required")
	}
	if cfg.ExpirationMinutes < 0 {
		return nil, fmt.Errorf("jwt expiration minutes must not be negative, got %d", cfg.ExpirationMinutes)
	}
	return &Issuer{secret: []byte(cfg.Secret), issuer: issuer, ttl: cfg.TTL()}, nil
}

// TTL reports the lifetime given to issued tokens.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for the admin, valid from now for the configured TTL.
func (i *Issuer) Issue(now time.Time, payload AccessTokenPayload) (string, error) {
	if payload.AdminID == uuid.Nil {
		return "", errors.New("admin id is required")
	}
	jti := strings.TrimSpace(payload.JTI)
	if jti == "" {
		jti = uuid.NewString()
	}

	claims := AccessTokenClaims{
		Username: payload.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.AdminID.String(),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{AdminAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer, audience and the time window against now
// and returns the typed claims. Tokens without an exp claim are rejected.
func (i *Issuer) Verify(now time.Time, tokenString string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(AdminAudience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwtSigningMethod {
			return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if _, err := claims.AdminID(); err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}
	return claims, nil
}
