package domain

import "context"

// FlowRequest starts a sign-in. Email is only read by providers that mail the user.
type FlowRequest struct {
	Email           string
	SuccessRedirect string
	FailureRedirect string
}

// FlowResult tells the client what happens next: follow RedirectURL, or wait
// for the link that was mailed.
type FlowResult struct {
	Provider    string `json:"provider"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	LinkSent    bool   `json:"linkSent"`
}

// IdentityProvider is one way of proving who the user is.
type IdentityProvider interface {
	Name() string
	StartFlow(ctx context.Context, req FlowRequest) (FlowResult, error)
}

// Redirects are the client pages a browser lands on when a flow ends.
type Redirects struct {
	Success string
	Failure string
}

// Callback is the provider's redirect back to this service.
type Callback struct {
	State string
	Code  string
	// Error is set when the user denied consent or the provider failed.
	Error string
}

// ExternalIdentity is the user as the provider describes them.
type ExternalIdentity struct {
	Email string
	Name  string
}

// CallbackProvider finishes on a browser redirect to this service's callback URL.
type CallbackProvider interface {
	IdentityProvider
	// VerifyState checks the state round-tripped through the provider and
	// returns the redirects it carries.
	VerifyState(state string) (Redirects, error)
	Exchange(ctx context.Context, code string) (ExternalIdentity, error)
}

// SignIn is the end of a browser sign-in: either a page to redirect to, with the
// token in its fragment on success, or the token itself when no page was given.
type SignIn struct {
	RedirectURL string
	Token       string
}
