package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"colabatr_backend/internal/auth/repository"
	"colabatr_backend/internal/auth/token"
	"colabatr_backend/internal/events"
	"colabatr_backend/platform/apperr"
	"colabatr_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type fakeRepo struct {
	users       map[string]repository.User
	tokens      map[string]tokenRow
	setFlagsErr error
}

type tokenRow struct {
	email     string
	expiresAt time.Time
	used      bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:  make(map[string]repository.User),
		tokens: make(map[string]tokenRow),
	}
}

func (r *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return repository.User{}, repository.ErrNotFound
}

func (r *fakeRepo) UpsertUserByEmail(_ context.Context, email string, name *string) (repository.User, error) {
	if user, ok := r.users[email]; ok {
		if name != nil {
			user.Name = name
			r.users[email] = user
		}
		return r.users[email], nil
	}
	user := repository.User{ID: uuid.New(), Email: email, Name: name, CreatedAt: time.Now()}
	r.users[email] = user
	return user, nil
}

func (r *fakeRepo) SetEntitlements(_ context.Context, userID uuid.UUID, isAdmin, isSeller bool) error {
	if r.setFlagsErr != nil {
		return r.setFlagsErr
	}
	for email, user := range r.users {
		if user.ID == userID {
			user.IsAdmin = isAdmin
			user.IsSeller = isSeller
			r.users[email] = user
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeRepo) CreateMagicLinkToken(_ context.Context, email, tokenHash string, expiresAt time.Time) error {
	r.tokens[tokenHash] = tokenRow{email: email, expiresAt: expiresAt}
	return nil
}

func (r *fakeRepo) ConsumeMagicLinkToken(_ context.Context, tokenHash string) (string, time.Time, error) {
	row, ok := r.tokens[tokenHash]
	if !ok || row.used {
		return "", time.Time{}, repository.ErrNotFound
	}
	row.used = true
	r.tokens[tokenHash] = row
	return row.email, row.expiresAt, nil
}

type captureSender struct {
	to   string
	url  string
	fail error
}

func (c *captureSender) SendSignInLinkEmail(_ context.Context, toEmail, signInURL string) error {
	c.to = toEmail
	c.url = signInURL
	return c.fail
}

type fakeAuthConfig struct {
	magicLinkTTL time.Duration
}

func (fakeAuthConfig) GetJWTSecret() string              { return "test-secret" }
func (fakeAuthConfig) GetAppBaseURL() string             { return "http://localhost:3000/" }
func (fakeAuthConfig) GetSessionTokenTTL() time.Duration { return time.Hour }
func (c fakeAuthConfig) GetMagicLinkTokenTTL() time.Duration {
	if c.magicLinkTTL != 0 {
		return c.magicLinkTTL
	}
	return 15 * time.Minute
}

type fakeOAuthConfig struct{}

func (fakeOAuthConfig) GetGoogleClientID() string     { return "" }
func (fakeOAuthConfig) GetGoogleClientSecret() string { return "" }
func (fakeOAuthConfig) GetOAuthRedirectURL() string   { return "" }
func (fakeOAuthConfig) IsOAuthEnabled() bool          { return false }

func newTestService(repo *fakeRepo, mailer *captureSender, cfg fakeAuthConfig) *Service {
	log := logger.New("development")
	return New(repo, cfg, fakeOAuthConfig{}, mailer, events.NewInMemoryBus(log), log)
}

func rawTokenFromSignInURL(t *testing.T, signInURL string) string {
	t.Helper()
	parsed, err := url.Parse(signInURL)
	if err != nil {
		t.Fatalf("sign-in URL %q does not parse: %v", signInURL, err)
	}
	rawToken := parsed.Query().Get("token")
	if rawToken == "" {
		t.Fatalf("sign-in URL %q has no token parameter", signInURL)
	}
	return rawToken
}

func TestRequestMagicLinkStoresHashNotToken(t *testing.T) {
	repo := newFakeRepo()
	mailer := &captureSender{}
	svc := newTestService(repo, mailer, fakeAuthConfig{})

	if err := svc.RequestMagicLink(context.Background(), "  User@Example.COM "); err != nil {
		t.Fatalf("RequestMagicLink: %v", err)
	}

	if mailer.to != "user@example.com" {
		t.Errorf("mail sent to %q, want normalized address", mailer.to)
	}

	rawToken := rawTokenFromSignInURL(t, mailer.url)
	if _, ok := repo.tokens[rawToken]; ok {
		t.Error("raw token must never be stored")
	}
	if _, ok := repo.tokens[token.HashSHA256(rawToken)]; !ok {
		t.Error("token hash missing from the store")
	}
}

func TestRequestMagicLinkSwallowsDeliveryFailure(t *testing.T) {
	repo := newFakeRepo()
	mailer := &captureSender{fail: errors.New("provider down")}
	svc := newTestService(repo, mailer, fakeAuthConfig{})

	if err := svc.RequestMagicLink(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("delivery failure must not surface, got %v", err)
	}
	if len(repo.tokens) != 1 {
		t.Error("token must be stored even when the email fails")
	}
}

func TestVerifyMagicLinkIssuesSessionWithEntitlements(t *testing.T) {
	repo := newFakeRepo()
	// Pre-existing account with entitlements already granted.
	user, _ := repo.UpsertUserByEmail(context.Background(), "seller@example.com", nil)
	if err := repo.SetEntitlements(context.Background(), user.ID, false, true); err != nil {
		t.Fatalf("SetEntitlements: %v", err)
	}

	mailer := &captureSender{}
	svc := newTestService(repo, mailer, fakeAuthConfig{})

	if err := svc.RequestMagicLink(context.Background(), "seller@example.com"); err != nil {
		t.Fatalf("RequestMagicLink: %v", err)
	}
	rawToken := rawTokenFromSignInURL(t, mailer.url)

	sessionToken, sessionUser, err := svc.VerifyMagicLink(context.Background(), rawToken)
	if err != nil {
		t.Fatalf("VerifyMagicLink: %v", err)
	}
	if sessionUser.ID != user.ID {
		t.Errorf("session user = %v, want the existing account %v", sessionUser.ID, user.ID)
	}

	parsed, err := jwt.Parse(sessionToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("session token does not validate: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["type"] != "session" {
		t.Errorf("type claim = %v, want session", claims["type"])
	}
	if claims["sub"] != user.ID.String() {
		t.Errorf("sub claim = %v, want %v", claims["sub"], user.ID)
	}
	if claims["is_admin"] != false {
		t.Errorf("is_admin claim = %v, want false", claims["is_admin"])
	}
	if claims["is_seller"] != true {
		t.Errorf("is_seller claim = %v, want true", claims["is_seller"])
	}
}

func TestVerifyMagicLinkSingleUse(t *testing.T) {
	repo := newFakeRepo()
	mailer := &captureSender{}
	svc := newTestService(repo, mailer, fakeAuthConfig{})

	if err := svc.RequestMagicLink(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("RequestMagicLink: %v", err)
	}
	rawToken := rawTokenFromSignInURL(t, mailer.url)

	if _, _, err := svc.VerifyMagicLink(context.Background(), rawToken); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if _, _, err := svc.VerifyMagicLink(context.Background(), rawToken); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Errorf("second verify err = %v, want unauthorized", err)
	}
}

func TestVerifyMagicLinkExpired(t *testing.T) {
	repo := newFakeRepo()
	mailer := &captureSender{}
	svc := newTestService(repo, mailer, fakeAuthConfig{magicLinkTTL: -time.Minute})

	if err := svc.RequestMagicLink(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("RequestMagicLink: %v", err)
	}
	rawToken := rawTokenFromSignInURL(t, mailer.url)

	if _, _, err := svc.VerifyMagicLink(context.Background(), rawToken); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Errorf("err = %v, want unauthorized for an expired link", err)
	}
}

func TestVerifyMagicLinkUnknownToken(t *testing.T) {
	svc := newTestService(newFakeRepo(), &captureSender{}, fakeAuthConfig{})

	if _, _, err := svc.VerifyMagicLink(context.Background(), "forged"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Errorf("err = %v, want unauthorized for an unknown token", err)
	}
}

func TestGoogleAuthURLDisabled(t *testing.T) {
	svc := newTestService(newFakeRepo(), &captureSender{}, fakeAuthConfig{})

	if _, err := svc.GoogleAuthURL("state"); !apperr.Is(err, apperr.KindUnavailable) {
		t.Errorf("err = %v, want unavailable when OAuth is not configured", err)
	}
}
