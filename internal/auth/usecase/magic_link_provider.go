package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
)

const MagicLinkProviderName = "magic-link"

// MagicLinkProvider mails a single-use sign-in link. Unknown addresses get an
// account on first use.
type MagicLinkProvider struct {
	users     domain.UserRepository
	secrets   domain.SecretStore
	mailer    domain.LinkMailer
	verifyURL string
	ttl       time.Duration
	logger    *logger.Logger
}

func NewMagicLinkProvider(users domain.UserRepository, secrets domain.SecretStore, mailer domain.LinkMailer, verifyURL string, ttl time.Duration, log *logger.Logger) *MagicLinkProvider {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &MagicLinkProvider{
		users:     users,
		secrets:   secrets,
		mailer:    mailer,
		verifyURL: verifyURL,
		ttl:       ttl,
		logger:    log.Named("MagicLinkProvider"),
	}
}

func (p *MagicLinkProvider) Name() string { return MagicLinkProviderName }

func (p *MagicLinkProvider) StartFlow(ctx context.Context, req domain.FlowRequest) (domain.FlowResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return domain.FlowResult{}, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	user, created, err := findOrCreateUser(ctx, p.users, email, "")
	if err != nil {
		return domain.FlowResult{}, err
	}
	if created {
		p.logger.Info("Created user on first magic link", zap.String("user_id", user.ID))
	}

	secret := uuid.NewString()
	if err := p.secrets.Save(ctx, user.ID, secret, p.ttl); err != nil {
		return domain.FlowResult{}, fmt.Errorf("save magic link secret: %w", err)
	}

	link, err := p.link(user.ID, secret, req.SuccessRedirect)
	if err != nil {
		return domain.FlowResult{}, err
	}
	if err := p.mailer.SendMagicLink(ctx, email, link); err != nil {
		p.logger.Error("Failed to send magic link", zap.String("user_id", user.ID), zap.Error(err))
		return domain.FlowResult{}, fmt.Errorf("send magic link: %w", err)
	}

	p.logger.Info("Magic link sent", zap.String("user_id", user.ID))
	return domain.FlowResult{Provider: MagicLinkProviderName, LinkSent: true}, nil
}

// findOrCreateUser gives a first-time address a customer account. The name
// defaults to the address's local part.
func findOrCreateUser(ctx context.Context, users domain.UserRepository, email, name string) (*domain.User, bool, error) {
	user, err := users.FindByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, fmt.Errorf("find user: %w", err)
	}

	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	user = &domain.User{
		Email:     email,
		Name:      name,
		Role:      domain.RoleCustomer,
		CreatedAt: time.Now().UTC(),
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	return user, true, nil
}

// link points at the client's verify page. next, when set, is where the client
// goes once the link has been redeemed.
func (p *MagicLinkProvider) link(userID, secret, next string) (string, error) {
	u, err := url.Parse(p.verifyURL)
	if err != nil {
		return "", fmt.Errorf("parse verify url: %w", err)
	}
	q := u.Query()
	q.Set("userId", userID)
	q.Set("secret", secret)
	if next != "" {
		q.Set("next", next)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
