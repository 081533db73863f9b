package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	pkgAuth "github.com/angelmondragon/coilbill-backend/pkg/auth"
	"github.com/angelmondragon/coilbill-backend/pkg/config"
	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/angelmondragon/coilbill-backend/pkg/security"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var testJWT = config.JWTConfig{
	Secret:            "secret",
	Issuer:            "coilbill",
	ExpirationMinutes: 10080,
}

func TestServiceLoginIssuesSevenDayToken(t *testing.T) {
	admin := newAdmin(t, "admin", "admin123")
	svc, _ := buildTestService(t, admin)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Admin == nil || resp.Admin.ID != admin.ID.String() || resp.Admin.Username != "admin" {
		t.Fatalf("unexpected admin payload: %+v", resp.Admin)
	}
	if !resp.Admin.PriceMultiplier.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("expected multiplier 1, got %s", resp.Admin.PriceMultiplier)
	}

	claims, err := testIssuer(t).Verify(time.Now(), resp.Token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Subject != admin.ID.String() {
		t.Fatalf("expected sub %s, got %s", admin.ID, claims.Subject)
	}
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != 7*24*time.Hour {
		t.Fatalf("expected 7 day token, got %v", ttl)
	}
}

func TestServiceLoginInvalidCredentialsAreIndistinguishable(t *testing.T) {
	admin := newAdmin(t, "admin", "admin123")
	svc, _ := buildTestService(t, admin)
	ctx := context.Background()

	_, wrongPassword := svc.Login(ctx, LoginRequest{Username: "admin", Password: "nope"})
	_, unknownUser := svc.Login(ctx, LoginRequest{Username: "ghost", Password: "admin123"})
	_, empty := svc.Login(ctx, LoginRequest{})

	for name, err := range map[string]error{"wrong password": wrongPassword, "unknown user": unknownUser, "empty": empty} {
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("%s: expected unauthorized, got %v", name, err)
		}
		if typed.Message() != invalidCredentialsMessage {
			t.Fatalf("%s: expected %q, got %q", name, invalidCredentialsMessage, typed.Message())
		}
	}
}

func TestServiceLoginUpgradesLegacyBcryptHash(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	admin := &models.Admin{ID: uuid.New(), Username: "admin", PasswordHash: string(legacy), PriceMultiplier: decimal.NewFromInt(1)}
	svc, repo := buildTestService(t, admin)

	if _, err := svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "admin123"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.HasPrefix(repo.updatedHash, "$argon2id$") {
		t.Fatalf("expected argon2id rehash, got %q", repo.updatedHash)
	}
}

func TestServiceLoginStoreFailureIsInternal(t *testing.T) {
	repo := &stubAdminRepo{err: errors.New("connection refused")}
	svc, err := NewService(ServiceParams{AdminRepo: repo, JWTConfig: testJWT})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "x"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestServiceVerify(t *testing.T) {
	admin := newAdmin(t, "admin", "admin123")
	svc, repo := buildTestService(t, admin)
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	me, err := svc.Verify(ctx, resp.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if me.ID != admin.ID.String() {
		t.Fatalf("expected admin %s, got %s", admin.ID, me.ID)
	}

	if _, err := svc.Verify(ctx, resp.Token+"x"); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for tampered token, got %v", err)
	}
	if _, err := svc.Verify(ctx, ""); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for empty token, got %v", err)
	}

	repo.admin = nil
	if _, err := svc.Verify(ctx, resp.Token); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized once admin is gone, got %v", err)
	}
}

func TestServiceVerifyExpiredToken(t *testing.T) {
	admin := newAdmin(t, "admin", "admin123")
	svc, _ := buildTestService(t, admin)

	token, err := testIssuer(t).Issue(time.Now().Add(-8*24*time.Hour), pkgAuth.AccessTokenPayload{AdminID: admin.ID})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := svc.Verify(context.Background(), token); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for expired token, got %v", err)
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(ServiceParams{JWTConfig: testJWT}); err == nil {
		t.Fatal("expected error without repository")
	}
	if _, err := NewService(ServiceParams{AdminRepo: &stubAdminRepo{}}); err == nil {
		t.Fatal("expected error without jwt secret")
	}
}

func testIssuer(t *testing.T) *pkgAuth.Issuer {
	t.Helper()
	issuer, err := pkgAuth.NewIssuer(testJWT)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	return issuer
}

func buildTestService(t *testing.T, admin *models.Admin) (Service, *stubAdminRepo) {
	t.Helper()
	repo := &stubAdminRepo{admin: admin}
	svc, err := NewService(ServiceParams{AdminRepo: repo, JWTConfig: testJWT})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo
}

func newAdmin(t *testing.T, username, password string) *models.Admin {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.Admin{
		ID:              uuid.New(),
		Username:        username,
		PasswordHash:    hash,
		DisplayName:     username,
		PriceMultiplier: decimal.NewFromInt(1),
	}
}

type stubAdminRepo struct {
	admin       *models.Admin
	err         error
	updatedHash string
}

func (s *stubAdminRepo) FindByUsername(_ context.Context, username string) (*models.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.admin == nil || !strings.EqualFold(s.admin.Username, strings.TrimSpace(username)) {
		return nil, gorm.ErrRecordNotFound
	}
	return s.admin, nil
}

func (s *stubAdminRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.admin == nil || s.admin.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.admin, nil
}

func (s *stubAdminRepo) UpdatePasswordHash(_ context.Context, _ uuid.UUID, hash string) error {
	s.updatedHash = hash
	return nil
}
