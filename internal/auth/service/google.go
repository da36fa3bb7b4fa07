package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"colabatr_backend/platform/config"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleOAuth wraps the authorization-code flow against Google.
type googleOAuth struct {
	enabled     bool
	oauthConfig *oauth2.Config
	userInfoURL string
}

type googleProfile struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func newGoogleOAuth(cfg config.OAuthConfig) *googleOAuth {
	if !cfg.IsOAuthEnabled() {
		return &googleOAuth{}
	}

	return &googleOAuth{
		enabled: true,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GetGoogleClientID(),
			ClientSecret: cfg.GetGoogleClientSecret(),
			RedirectURL:  cfg.GetOAuthRedirectURL(),
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     googleoauth.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (g *googleOAuth) authCodeURL(state string) string {
	return g.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// fetchProfile exchanges the authorization code and reads the user profile.
func (g *googleOAuth) fetchProfile(ctx context.Context, code string) (googleProfile, error) {
	exchangeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	oauthToken, err := g.oauthConfig.Exchange(exchangeCtx, code)
	if err != nil {
		return googleProfile{}, fmt.Errorf("oauth exchange: %w", err)
	}

	client := g.oauthConfig.Client(exchangeCtx, oauthToken)
	resp, err := client.Get(g.userInfoURL)
	if err != nil {
		return googleProfile{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return googleProfile{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return googleProfile{}, fmt.Errorf("decode userinfo: %w", err)
	}

	if profile.Email == "" {
		return googleProfile{}, fmt.Errorf("userinfo has no email")
	}

	return profile, nil
}
