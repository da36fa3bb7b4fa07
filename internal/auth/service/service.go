// Package service implements the sign-in flows: passwordless magic links and
// Google OAuth. Both converge on the same session issuance path.
package service

import (
	"context"
	"strings"
	"time"

	"colabatr_backend/internal/auth/repository"
	"colabatr_backend/internal/auth/token"
	"colabatr_backend/internal/email"
	"colabatr_backend/internal/events"
	"colabatr_backend/platform/apperr"
	"colabatr_backend/platform/config"
	"colabatr_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Repo is the persistence surface the service needs.
type Repo interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (repository.User, error)
	UpsertUserByEmail(ctx context.Context, email string, name *string) (repository.User, error)
	SetEntitlements(ctx context.Context, userID uuid.UUID, isAdmin, isSeller bool) error
	CreateMagicLinkToken(ctx context.Context, email, tokenHash string, expiresAt time.Time) error
	ConsumeMagicLinkToken(ctx context.Context, tokenHash string) (string, time.Time, error)
}

// Service implements authentication.
type Service struct {
	repo   Repo
	cfg    config.AuthServiceConfig
	mail   email.Sender
	google *googleOAuth
	bus    events.Bus
	log    *logger.Logger
}

// New creates the auth service. oauthCfg may describe a disabled provider.
func New(repo Repo, cfg config.AuthServiceConfig, oauthCfg config.OAuthConfig, mailer email.Sender, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		cfg:    cfg,
		mail:   mailer,
		google: newGoogleOAuth(oauthCfg),
		bus:    bus,
		log:    log,
	}
}

// RequestMagicLink creates a short-lived sign-in token for the email and
// mails the sign-in URL. Delivery failures are logged and swallowed: the
// caller always sees success, matching the "check your inbox" UX.
func (s *Service) RequestMagicLink(ctx context.Context, emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	rawToken, err := token.GenerateRandomToken(32)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to create sign-in token", err)
	}

	tokenHash := token.HashSHA256(rawToken)
	expiresAt := time.Now().Add(s.cfg.GetMagicLinkTokenTTL())
	if err := s.repo.CreateMagicLinkToken(ctx, emailAddr, tokenHash, expiresAt); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to store sign-in token", err)
	}

	signInURL := s.buildSignInURL(rawToken)
	if err := s.mail.SendSignInLinkEmail(ctx, emailAddr, signInURL); err != nil {
		s.log.EmailDeliveryFailed("signin_link", emailAddr, err)
	}

	s.log.AuthEvent("magic_link_requested", emailAddr, true, "")
	return nil
}

// VerifyMagicLink consumes a sign-in token and issues a session. The user
// record is created on first sign-in; entitlement flags are read from it at
// issuance time.
func (s *Service) VerifyMagicLink(ctx context.Context, rawToken string) (string, repository.User, error) {
	tokenHash := token.HashSHA256(rawToken)

	emailAddr, expiresAt, err := s.repo.ConsumeMagicLinkToken(ctx, tokenHash)
	if err != nil {
		s.log.AuthEvent("magic_link_verify", "", false, "token not found or already used")
		return "", repository.User{}, apperr.Unauthorized("invalid sign-in link")
	}

	if time.Now().After(expiresAt) {
		s.log.AuthEvent("magic_link_verify", emailAddr, false, "token expired")
		return "", repository.User{}, apperr.Unauthorized("sign-in link expired")
	}

	return s.issueSession(ctx, emailAddr, nil, "magic_link")
}

// GoogleAuthURL returns the provider consent URL for the given CSRF state.
func (s *Service) GoogleAuthURL(state string) (string, error) {
	if !s.google.enabled {
		return "", apperr.Unavailable("google sign-in is not configured")
	}
	return s.google.authCodeURL(state), nil
}

// HandleGoogleCallback exchanges the authorization code, reads the verified
// profile, and issues a session.
func (s *Service) HandleGoogleCallback(ctx context.Context, code string) (string, repository.User, error) {
	if !s.google.enabled {
		return "", repository.User{}, apperr.Unavailable("google sign-in is not configured")
	}

	profile, err := s.google.fetchProfile(ctx, code)
	if err != nil {
		s.log.AuthEvent("google_callback", "", false, err.Error())
		return "", repository.User{}, apperr.Unauthorized("google sign-in failed")
	}

	if !profile.VerifiedEmail {
		s.log.AuthEvent("google_callback", profile.Email, false, "email not verified by provider")
		return "", repository.User{}, apperr.Unauthorized("google account email is not verified")
	}

	var name *string
	if profile.Name != "" {
		name = &profile.Name
	}
	return s.issueSession(ctx, strings.ToLower(profile.Email), name, "google")
}

// Me returns the account for the authenticated user.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

// SetEntitlements updates the admin/seller flags. Existing sessions keep
// their old flags until re-issued; that is the JWT trade-off.
func (s *Service) SetEntitlements(ctx context.Context, userID uuid.UUID, isAdmin, isSeller bool) error {
	if err := s.repo.SetEntitlements(ctx, userID, isAdmin, isSeller); err != nil {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (s *Service) issueSession(ctx context.Context, emailAddr string, name *string, method string) (string, repository.User, error) {
	user, err := s.repo.UpsertUserByEmail(ctx, emailAddr, name)
	if err != nil {
		return "", repository.User{}, apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}

	sessionToken, err := s.signSessionJWT(user)
	if err != nil {
		return "", repository.User{}, apperr.Wrap(apperr.KindInternal, "failed to sign session token", err)
	}

	s.bus.Publish(ctx, events.UserSignedInEvent{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID.String(),
		Email:     user.Email,
		Method:    method,
	})
	s.log.AuthEvent("session_issued", user.Email, true, "")

	return sessionToken, user, nil
}

func (s *Service) signSessionJWT(user repository.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"type":      "session",
		"is_admin":  user.IsAdmin,
		"is_seller": user.IsSeller,
		"exp":       now.Add(s.cfg.GetSessionTokenTTL()).Unix(),
		"iat":       now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTSecret()))
}

func (s *Service) buildSignInURL(rawToken string) string {
	base := strings.TrimRight(s.cfg.GetAppBaseURL(), "/")
	return base + "/auth/verify?token=" + rawToken
}
