package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
)

func googleProvider() *OAuthRedirectProvider {
	return NewOAuthRedirectProvider(OAuthConfig{
		Name:        "google",
		AuthURL:     "https://accounts.google.com/o/oauth2/v2/auth",
		ClientID:    "client-123",
		CallbackURL: "http://localhost:8080/api/auth/google/callback",
	}, "state-secret")
}

func TestOAuthRedirectProvider_StartFlow(t *testing.T) {
	res, err := googleProvider().StartFlow(context.Background(), domain.FlowRequest{
		SuccessRedirect: "http://localhost:5173/",
		FailureRedirect: "http://localhost:5173/login",
	})
	require.NoError(t, err)
	assert.Equal(t, "google", res.Provider)
	assert.False(t, res.LinkSent)

	u, err := url.Parse(res.RedirectURL)
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", u.Host)

	q := u.Query()
	assert.Equal(t, "client-123", q.Get("client_id"))
	assert.Equal(t, "http://localhost:8080/api/auth/google/callback", q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "openid email profile", q.Get("scope"))

	state := &stateClaims{}
	_, err = jwt.ParseWithClaims(q.Get("state"), state, func(*jwt.Token) (interface{}, error) {
		return []byte("state-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173/", state.Success)
	assert.Equal(t, "http://localhost:5173/login", state.Failure)
}

func startState(t *testing.T, p *OAuthRedirectProvider) string {
	t.Helper()
	res, err := p.StartFlow(context.Background(), domain.FlowRequest{
		SuccessRedirect: "http://localhost:5173/",
		FailureRedirect: "http://localhost:5173/login",
	})
	require.NoError(t, err)
	u, err := url.Parse(res.RedirectURL)
	require.NoError(t, err)
	return u.Query().Get("state")
}

func TestOAuthRedirectProvider_VerifyState(t *testing.T) {
	p := googleProvider()
	redirects, err := p.VerifyState(startState(t, p))
	require.NoError(t, err)
	assert.Equal(t, domain.Redirects{Success: "http://localhost:5173/", Failure: "http://localhost:5173/login"}, redirects)
}

func TestOAuthRedirectProvider_VerifyState_Tampered(t *testing.T) {
	p := googleProvider()
	parts := strings.Split(startState(t, p), ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	forged := strings.Replace(string(payload), "http://localhost:5173/", "https://evil.example/", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = p.VerifyState(strings.Join(parts, "."))
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	other := NewOAuthRedirectProvider(OAuthConfig{Name: "google", AuthURL: "https://a.example", ClientID: "c"}, "other-secret")
	_, err = p.VerifyState(startState(t, other))
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = p.VerifyState("")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestOAuthRedirectProvider_VerifyState_Expired(t *testing.T) {
	p := googleProvider()
	state := startState(t, p)

	p.now = func() time.Time { return time.Now().Add(oauthStateTTL + time.Minute) }
	_, err := p.VerifyState(state)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestOAuthRedirectProvider_VerifyState_RejectsSessionToken(t *testing.T) {
	session, err := NewTokenManager("state-secret", time.Hour).Issue(&domain.User{ID: "u1", Role: domain.RoleCustomer})
	require.NoError(t, err)

	_, err = googleProvider().VerifyState(session)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

// identityServer plays the provider's token and userinfo endpoints.
func identityServer(t *testing.T, userinfo string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(userinfo))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func exchangeProvider(srv *httptest.Server) *OAuthRedirectProvider {
	return NewOAuthRedirectProvider(OAuthConfig{
		Name:         "google",
		AuthURL:      srv.URL + "/auth",
		TokenURL:     srv.URL + "/token",
		UserInfoURL:  srv.URL + "/userinfo",
		ClientID:     "client-123",
		ClientSecret: "shh",
		CallbackURL:  "http://localhost:8080/api/auth/google/callback",
	}, "state-secret")
}

func TestOAuthRedirectProvider_Exchange(t *testing.T) {
	srv := identityServer(t, `{"email":"meera@iitk.ac.in","email_verified":true,"name":"Meera"}`)
	p := exchangeProvider(srv)

	id, err := p.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, domain.ExternalIdentity{Email: "meera@iitk.ac.in", Name: "Meera"}, id)

	_, err = p.Exchange(context.Background(), "bad-code")
	assert.Error(t, err)

	_, err = p.Exchange(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestOAuthRedirectProvider_Exchange_UnverifiedEmail(t *testing.T) {
	srv := identityServer(t, `{"email":"meera@iitk.ac.in","email_verified":false}`)

	_, err := exchangeProvider(srv).Exchange(context.Background(), "good-code")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestOAuthRedirectProvider_NotConfigured(t *testing.T) {
	p := NewOAuthRedirectProvider(OAuthConfig{Name: "google", AuthURL: "https://example.com"}, "s")
	_, err := p.StartFlow(context.Background(), domain.FlowRequest{})
	assert.Error(t, err)
}

func newMagicProvider(users *MockUserRepository, secrets *MockSecretStore, mailer *MockLinkMailer) *MagicLinkProvider {
	return NewMagicLinkProvider(users, secrets, mailer, "http://localhost:5173/verify", 15*time.Minute, logger.NewNop())
}

func TestMagicLinkProvider_ExistingUser(t *testing.T) {
	users := new(MockUserRepository)
	secrets := new(MockSecretStore)
	mailer := new(MockLinkMailer)

	users.On("FindByEmail", mock.Anything, "asha@iitk.ac.in").Return(&domain.User{ID: "u1", Email: "asha@iitk.ac.in"}, nil)

	var saved string
	secrets.On("Save", mock.Anything, "u1", mock.AnythingOfType("string"), 15*time.Minute).
		Run(func(args mock.Arguments) { saved = args.String(2) }).
		Return(nil)

	var sentLink string
	mailer.On("SendMagicLink", mock.Anything, "asha@iitk.ac.in", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sentLink = args.String(2) }).
		Return(nil)

	res, err := newMagicProvider(users, secrets, mailer).StartFlow(context.Background(), domain.FlowRequest{Email: " Asha@IITK.ac.in "})
	require.NoError(t, err)
	assert.True(t, res.LinkSent)
	assert.Equal(t, MagicLinkProviderName, res.Provider)
	assert.Empty(t, res.RedirectURL)

	u, err := url.Parse(sentLink)
	require.NoError(t, err)
	assert.Equal(t, "/verify", u.Path)
	assert.Equal(t, "u1", u.Query().Get("userId"))
	assert.Equal(t, saved, u.Query().Get("secret"))
	assert.Empty(t, u.Query().Get("next"))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMagicLinkProvider_CreatesUnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	secrets := new(MockSecretStore)
	mailer := new(MockLinkMailer)

	users.On("FindByEmail", mock.Anything, "ravi@iitk.ac.in").Return(nil, domain.ErrUserNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ravi@iitk.ac.in" && u.Name == "ravi" && u.Role == domain.RoleCustomer
	})).Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = "u2" }).Return(nil)
	secrets.On("Save", mock.Anything, "u2", mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendMagicLink", mock.Anything, "ravi@iitk.ac.in", mock.Anything).Return(nil)

	_, err := newMagicProvider(users, secrets, mailer).StartFlow(context.Background(), domain.FlowRequest{Email: "ravi@iitk.ac.in"})
	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestMagicLinkProvider_RequiresEmail(t *testing.T) {
	_, err := newMagicProvider(new(MockUserRepository), new(MockSecretStore), new(MockLinkMailer)).
		StartFlow(context.Background(), domain.FlowRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMagicLinkProvider_MailFailure(t *testing.T) {
	users := new(MockUserRepository)
	secrets := new(MockSecretStore)
	mailer := new(MockLinkMailer)

	users.On("FindByEmail", mock.Anything, mock.Anything).Return(&domain.User{ID: "u1"}, nil)
	secrets.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendMagicLink", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp refused"))

	_, err := newMagicProvider(users, secrets, mailer).StartFlow(context.Background(), domain.FlowRequest{Email: "a@b.c"})
	assert.Error(t, err)
}

func TestMagicLinkProvider_CarriesSuccessRedirect(t *testing.T) {
	users := new(MockUserRepository)
	secrets := new(MockSecretStore)
	mailer := new(MockLinkMailer)

	users.On("FindByEmail", mock.Anything, "a@b.c").Return(&domain.User{ID: "u1"}, nil)
	secrets.On("Save", mock.Anything, "u1", mock.Anything, mock.Anything).Return(nil)
	var sentLink string
	mailer.On("SendMagicLink", mock.Anything, "a@b.c", mock.Anything).
		Run(func(args mock.Arguments) { sentLink = args.String(2) }).
		Return(nil)

	_, err := newMagicProvider(users, secrets, mailer).StartFlow(context.Background(), domain.FlowRequest{
		Email:           "a@b.c",
		SuccessRedirect: "http://localhost:5173/sell?draft=1",
	})
	require.NoError(t, err)

	u, err := url.Parse(sentLink)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173/sell?draft=1", u.Query().Get("next"))
}
