// README: Identity-provider OAuth flow; exchanges the login code for an
// access token and rider profile.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"guardian/internal/config"
)

// Profile is the identity provider's view of the rider.
type Profile struct {
	UUID      string `json:"uuid"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Picture   string `json:"picture"`
	PromoCode string `json:"promo_code"`
	Email     string `json:"email"`
}

type Provider struct {
	oauth      *oauth2.Config
	profileURL string
}

func NewProvider(cfg config.Config) *Provider {
	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			RedirectURL:  cfg.HTTP.Hostname + "/auth/uber/callback",
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.OAuth.AuthURL,
				TokenURL: cfg.OAuth.TokenURL,
			},
			Scopes: []string{"profile", "request"},
		},
		profileURL: cfg.OAuth.ProfileURL,
	}
}

// AuthURL is the provider login URL carrying the anti-forgery state.
func (p *Provider) AuthURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// Exchange trades the callback code for an access token and fetches the
// rider profile with it.
func (p *Provider) Exchange(ctx context.Context, code string) (string, Profile, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return "", Profile{}, fmt.Errorf("oauth exchange: %w", err)
	}

	resp, err := p.oauth.Client(ctx, tok).Get(p.profileURL)
	if err != nil {
		return "", Profile{}, fmt.Errorf("profile fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", Profile{}, fmt.Errorf("profile fetch returned %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", Profile{}, fmt.Errorf("profile decode: %w", err)
	}
	if profile.UUID == "" {
		return "", Profile{}, fmt.Errorf("profile missing uuid")
	}
	return tok.AccessToken, profile, nil
}
