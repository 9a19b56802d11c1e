package usecase

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/domain"
)

// RedirectPolicy lists the client origins a sign-in may send the browser to.
// Tokens only ever travel to these origins.
type RedirectPolicy struct {
	origins map[string]struct{}
}

func NewRedirectPolicy(origins []string) RedirectPolicy {
	p := RedirectPolicy{origins: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			p.origins[strings.ToLower(o)] = struct{}{}
		}
	}
	return p
}

// Allowed reports whether raw is an absolute http(s) URL on a listed origin.
func (p RedirectPolicy) Allowed(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	_, ok := p.origins[strings.ToLower(u.Scheme+"://"+u.Host)]
	return ok
}

func (p RedirectPolicy) check(raw string) error {
	if raw == "" || p.Allowed(raw) {
		return nil
	}
	return fmt.Errorf("%w: redirect %q is not an allowed origin", domain.ErrInvalidInput, raw)
}

// withToken puts the session token in the URL fragment, which browsers never send
// to servers.
func withToken(target, token string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parse redirect: %w", err)
	}
	u.Fragment = "token=" + token
	return u.String(), nil
}

func withError(target, reason string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parse redirect: %w", err)
	}
	q := u.Query()
	q.Set("error", reason)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
