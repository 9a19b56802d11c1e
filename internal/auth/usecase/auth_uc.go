package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/metrics"
)

var tracer = otel.Tracer("hostlecart/auth-usecase")

// AuthUsecase is the single sign-in flow. The provider is picked by name at
// request time, so the same endpoints serve OAuth redirects and magic links.
type AuthUsecase struct {
	providers map[string]domain.IdentityProvider
	users     domain.UserRepository
	secrets   domain.SecretStore
	sessions  domain.SessionStore
	tokens    *TokenManager
	redirects RedirectPolicy
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

func NewAuthUsecase(
	users domain.UserRepository,
	secrets domain.SecretStore,
	sessions domain.SessionStore,
	tokens *TokenManager,
	redirects RedirectPolicy,
	mm *metrics.MetricsManager,
	log *logger.Logger,
	providers ...domain.IdentityProvider,
) *AuthUsecase {
	uc := &AuthUsecase{
		providers: make(map[string]domain.IdentityProvider, len(providers)),
		users:     users,
		secrets:   secrets,
		sessions:  sessions,
		tokens:    tokens,
		redirects: redirects,
		metrics:   mm,
		logger:    log.Named("AuthUsecase"),
	}
	for _, p := range providers {
		uc.providers[p.Name()] = p
	}
	return uc
}

func (uc *AuthUsecase) StartFlow(ctx context.Context, provider string, req domain.FlowRequest) (domain.FlowResult, error) {
	ctx, span := tracer.Start(ctx, "AuthUsecase.StartFlow")
	defer span.End()

	p, ok := uc.providers[provider]
	if !ok {
		return domain.FlowResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, provider)
	}
	if err := uc.redirects.check(req.SuccessRedirect); err != nil {
		return domain.FlowResult{}, err
	}
	if err := uc.redirects.check(req.FailureRedirect); err != nil {
		return domain.FlowResult{}, err
	}
	res, err := p.StartFlow(ctx, req)
	if err != nil {
		uc.logger.Warn("Sign-in flow failed to start", zap.String("provider", provider), zap.Error(err))
		return domain.FlowResult{}, err
	}
	return res, nil
}

// CompleteMagicLink trades a mailed secret for a session token. A secret works once.
// When next is set the result redirects there with the token attached.
func (uc *AuthUsecase) CompleteMagicLink(ctx context.Context, userID, secret, next string) (domain.SignIn, error) {
	ctx, span := tracer.Start(ctx, "AuthUsecase.CompleteMagicLink")
	defer span.End()

	if userID == "" || secret == "" {
		return domain.SignIn{}, domain.ErrNotAuthenticated
	}
	// next is checked before the secret is burned.
	if err := uc.redirects.check(next); err != nil {
		return domain.SignIn{}, err
	}
	ok, err := uc.secrets.Consume(ctx, userID, secret)
	if err != nil {
		return domain.SignIn{}, fmt.Errorf("consume magic link secret: %w", err)
	}
	if !ok {
		uc.logger.Info("Rejected magic link", zap.String("user_id", userID))
		return domain.SignIn{}, domain.ErrNotAuthenticated
	}

	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.SignIn{}, domain.ErrNotAuthenticated
		}
		return domain.SignIn{}, err
	}
	token, err := uc.tokens.Issue(user)
	if err != nil {
		return domain.SignIn{}, err
	}
	return signedIn(next, token)
}

// CompleteCallback finishes an OAuth flow. An invalid state is an error, since
// nothing in it can be trusted; any later failure goes to the flow's failure page.
func (uc *AuthUsecase) CompleteCallback(ctx context.Context, provider string, cb domain.Callback) (domain.SignIn, error) {
	ctx, span := tracer.Start(ctx, "AuthUsecase.CompleteCallback")
	defer span.End()

	p, ok := uc.providers[provider].(domain.CallbackProvider)
	if !ok {
		return domain.SignIn{}, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, provider)
	}
	redirects, err := p.VerifyState(cb.State)
	if err != nil {
		uc.logger.Warn("Rejected oauth callback", zap.String("provider", provider), zap.Error(err))
		return domain.SignIn{}, err
	}
	if cb.Error != "" {
		uc.logger.Info("OAuth flow ended by provider", zap.String("provider", provider), zap.String("reason", cb.Error))
		return signInFailed(redirects.Failure, cb.Error)
	}

	identity, err := p.Exchange(ctx, cb.Code)
	if err != nil {
		uc.logger.Warn("Failed to complete oauth flow", zap.String("provider", provider), zap.Error(err))
		uc.metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
		return signInFailed(redirects.Failure, "exchange_failed")
	}

	user, created, err := findOrCreateUser(ctx, uc.users, normalizeEmail(identity.Email), identity.Name)
	if err != nil {
		uc.metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return domain.SignIn{}, err
	}
	if created {
		uc.logger.Info("Created user on first oauth sign-in", zap.String("user_id", user.ID), zap.String("provider", provider))
	}
	token, err := uc.tokens.Issue(user)
	if err != nil {
		uc.metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return domain.SignIn{}, err
	}
	uc.metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return signedIn(redirects.Success, token)
}

func signedIn(next, token string) (domain.SignIn, error) {
	if next == "" {
		return domain.SignIn{Token: token}, nil
	}
	target, err := withToken(next, token)
	if err != nil {
		return domain.SignIn{}, err
	}
	return domain.SignIn{RedirectURL: target}, nil
}

func signInFailed(failure, reason string) (domain.SignIn, error) {
	if failure == "" {
		return domain.SignIn{}, fmt.Errorf("%w: %s", domain.ErrNotAuthenticated, reason)
	}
	target, err := withError(failure, reason)
	if err != nil {
		return domain.SignIn{}, err
	}
	return domain.SignIn{RedirectURL: target}, nil
}

// Login checks an email and password. Wrong email and wrong password look the same.
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	ctx, span := tracer.Start(ctx, "AuthUsecase.Login")
	defer span.End()

	user, err := uc.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			uc.metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
			return "", domain.ErrInvalidCredentials
		}
		uc.metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		uc.logger.Error("Failed to look up user for login", zap.Error(err))
		return "", err
	}

	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		uc.metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		uc.metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", err
	}
	uc.metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	uc.logger.Info("User logged in", zap.String("user_id", user.ID))
	return token, nil
}

// Authenticate verifies a token and checks it has not been revoked.
func (uc *AuthUsecase) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := uc.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: session ended", domain.ErrNotAuthenticated)
	}
	return claims, nil
}

func (uc *AuthUsecase) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := uc.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, err
	}
	return user, nil
}

// EndSession revokes the token until it would have expired anyway.
func (uc *AuthUsecase) EndSession(ctx context.Context, token string) error {
	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return err
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := uc.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	uc.logger.Info("Session ended", zap.String("user_id", claims.UserID))
	return nil
}

// CreateUser registers a password user. Used by the create-user command.
func (uc *AuthUsecase) CreateUser(ctx context.Context, email, name, password, role string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	if role == "" {
		role = domain.RoleCustomer
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.logger.Info("User created", zap.String("user_id", user.ID), zap.String("role", role))
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
