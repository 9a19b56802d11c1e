package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/domain"
)

const (
	oauthStateTTL      = 10 * time.Minute
	oauthStateAudience = "oauth-state"
)

// OAuthConfig describes an authorization-code provider such as Google.
type OAuthConfig struct {
	Name         string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	ClientID     string
	ClientSecret string
	CallbackURL  string
	Scopes       string
}

type stateClaims struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	jwt.RegisteredClaims
}

// OAuthRedirectProvider sends the browser to the provider's consent page and
// finishes the flow on the callback. The redirects travel in a signed state parameter.
type OAuthRedirectProvider struct {
	cfg    OAuthConfig
	oauth  *oauth2.Config
	secret []byte
	now    func() time.Time
}

func NewOAuthRedirectProvider(cfg OAuthConfig, stateSecret string) *OAuthRedirectProvider {
	if cfg.Scopes == "" {
		cfg.Scopes = "openid email profile"
	}
	return &OAuthRedirectProvider{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     oauth2.Endpoint{AuthURL: cfg.AuthURL, TokenURL: cfg.TokenURL},
			RedirectURL:  cfg.CallbackURL,
			Scopes:       strings.Fields(cfg.Scopes),
		},
		secret: []byte(stateSecret),
		now:    time.Now,
	}
}

func (p *OAuthRedirectProvider) Name() string { return p.cfg.Name }

func (p *OAuthRedirectProvider) StartFlow(_ context.Context, req domain.FlowRequest) (domain.FlowResult, error) {
	if p.cfg.ClientID == "" || p.cfg.AuthURL == "" {
		return domain.FlowResult{}, fmt.Errorf("oauth provider %q is not configured", p.cfg.Name)
	}

	now := p.now()
	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, stateClaims{
		Success: req.SuccessRedirect,
		Failure: req.FailureRedirect,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{oauthStateAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(oauthStateTTL)),
		},
	}).SignedString(p.secret)
	if err != nil {
		return domain.FlowResult{}, fmt.Errorf("sign oauth state: %w", err)
	}

	return domain.FlowResult{Provider: p.cfg.Name, RedirectURL: p.oauth.AuthCodeURL(state)}, nil
}

// VerifyState rejects states that were not signed here, were tampered with or have expired.
func (p *OAuthRedirectProvider) VerifyState(state string) (domain.Redirects, error) {
	claims := &stateClaims{}
	_, err := jwt.ParseWithClaims(state, claims, p.keyFunc,
		jwt.WithAudience(oauthStateAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return domain.Redirects{}, fmt.Errorf("%w: oauth state: %v", domain.ErrNotAuthenticated, err)
	}
	return domain.Redirects{Success: claims.Success, Failure: claims.Failure}, nil
}

func (p *OAuthRedirectProvider) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return p.secret, nil
}

type userInfo struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
	Name          string `json:"name"`
}

// Exchange trades the authorization code for an access token and reads the
// user's profile with it. Unverified addresses are refused.
func (p *OAuthRedirectProvider) Exchange(ctx context.Context, code string) (domain.ExternalIdentity, error) {
	if code == "" {
		return domain.ExternalIdentity{}, fmt.Errorf("%w: missing authorization code", domain.ErrNotAuthenticated)
	}
	if p.cfg.TokenURL == "" || p.cfg.UserInfoURL == "" {
		return domain.ExternalIdentity{}, fmt.Errorf("oauth provider %q has no token or userinfo url", p.cfg.Name)
	}

	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return domain.ExternalIdentity{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.UserInfoURL, nil)
	if err != nil {
		return domain.ExternalIdentity{}, fmt.Errorf("build userinfo request: %w", err)
	}
	resp, err := p.oauth.Client(ctx, tok).Do(req)
	if err != nil {
		return domain.ExternalIdentity{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.ExternalIdentity{}, fmt.Errorf("fetch userinfo: status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return domain.ExternalIdentity{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if info.Email == "" || (info.EmailVerified != nil && !*info.EmailVerified) {
		return domain.ExternalIdentity{}, fmt.Errorf("%w: provider returned no verified email", domain.ErrNotAuthenticated)
	}
	return domain.ExternalIdentity{Email: info.Email, Name: info.Name}, nil
}
