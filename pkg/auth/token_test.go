package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/coilbill-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func testJWTConfig(minutes int) config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "coilbill",
		ExpirationMinutes: minutes,
	}
}

func newTestIssuer(t *testing.T, cfg config.JWTConfig) *Issuer {
	t.Helper()
	issuer, err := NewIssuer(cfg)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	return issuer
}

func TestIssueAndVerify(t *testing.T) {
	issuer := newTestIssuer(t, testJWTConfig(10080))
	now := time.Now().UTC()
	adminID := uuid.New()

	token, err := issuer.Issue(now, AccessTokenPayload{AdminID: adminID, Username: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Verify(now, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	got, err := claims.AdminID()
	if err != nil || got != adminID {
		t.Fatalf("expected sub %s, got %s (err %v)", adminID, claims.Subject, err)
	}
	if claims.Username != "admin" {
		t.Fatalf("unexpected username %q", claims.Username)
	}
	if len(claims.Audience) != 1 || claims.Audience[0] != AdminAudience {
		t.Fatalf("unexpected audience %v", claims.Audience)
	}
	if claims.ID == "" {
		t.Fatal("expected jti to be set")
	}
	if ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time); ttl != 7*24*time.Hour {
		t.Fatalf("expected 7 day token, got %v", ttl)
	}
}

func TestIssueKeepsExplicitJTI(t *testing.T) {
	issuer := newTestIssuer(t, testJWTConfig(5))
	now := time.Now()
	token, err := issuer.Issue(now, AccessTokenPayload{AdminID: uuid.New(), JTI: "fixed-jti"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := issuer.Verify(now, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.ID != "fixed-jti" {
		t.Fatalf("expected jti fixed-jti, got %s", claims.ID)
	}
}

func TestVerifyRejectsForeignTokens(t *testing.T) {
	cfg := testJWTConfig(10)
	issuer := newTestIssuer(t, cfg)
	now := time.Now()
	token, err := issuer.Issue(now, AccessTokenPayload{AdminID: uuid.New()})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuer.Verify(now, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}

	otherSecret := cfg
	otherSecret.Secret = "another-secret"
	if _, err := newTestIssuer(t, otherSecret).Verify(now, token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}

	otherIssuer := cfg
	otherIssuer.Issuer = "someone-else"
	if _, err := newTestIssuer(t, otherIssuer).Verify(now, token); !errors.Is(err, jwt.ErrTokenInvalidIssuer) {
		t.Fatalf("expected issuer mismatch, got %v", err)
	}
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	now := time.Now()
	claims := AccessTokenClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		Issuer:    "coilbill",
		Audience:  jwt.ClaimStrings{"storefront"},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := newTestIssuer(t, testJWTConfig(10)).Verify(now, token); !errors.Is(err, jwt.ErrTokenInvalidAudience) {
		t.Fatalf("expected audience error, got %v", err)
	}
}

func TestVerifyRequiresExpiry(t *testing.T) {
	now := time.Now()
	claims := AccessTokenClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:  uuid.NewString(),
		Issuer:   "coilbill",
		Audience: jwt.ClaimStrings{AdminAudience},
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := newTestIssuer(t, testJWTConfig(10)).Verify(now, token); !errors.Is(err, jwt.ErrTokenRequiredClaimMissing) {
		t.Fatalf("expected missing exp error, got %v", err)
	}
}

func TestVerifyExpiryHonoursClockSkew(t *testing.T) {
	issuer := newTestIssuer(t, testJWTConfig(15))
	issuedAt := time.Now().Add(-time.Hour)
	token, err := issuer.Issue(issuedAt, AccessTokenPayload{AdminID: uuid.New()})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	expiry := issuedAt.Add(15 * time.Minute)
	if _, err := issuer.Verify(expiry.Add(10*time.Second), token); err != nil {
		t.Fatalf("expected token within skew to verify, got %v", err)
	}
	if _, err := issuer.Verify(expiry.Add(time.Minute), token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expiration error, got %v", err)
	}
}

func TestNewIssuerValidatesConfig(t *testing.T) {
	if _, err := NewIssuer(config.JWTConfig{Issuer: "coilbill", ExpirationMinutes: 5}); err == nil {
		t.Fatal("expected missing secret error")
	}
	if _, err := NewIssuer(config.JWTConfig{Secret: "secret", Issuer: "  "}); err == nil {
		t.Fatal("expected missing issuer error")
	}
	if _, err := NewIssuer(config.JWTConfig{Secret: "secret", Issuer: "coilbill", ExpirationMinutes: -1}); err == nil {
		t.Fatal("expected negative expiry error")
	}
	if _, err := newTestIssuer(t, testJWTConfig(5)).Issue(time.Now(), AccessTokenPayload{}); err == nil {
		t.Fatal("expected missing admin id error")
	}
}
