package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/domain"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockSecretStore struct{ mock.Mock }

func (m *MockSecretStore) Save(ctx context.Context, userID, secret string, ttl time.Duration) error {
	args := m.Called(ctx, userID, secret, ttl)
	return args.Error(0)
}
func (m *MockSecretStore) Consume(ctx context.Context, userID, secret string) (bool, error) {
	args := m.Called(ctx, userID, secret)
	return args.Bool(0), args.Error(1)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}
func (m *MockSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

type MockLinkMailer struct{ mock.Mock }

func (m *MockLinkMailer) SendMagicLink(ctx context.Context, to, link string) error {
	args := m.Called(ctx, to, link)
	return args.Error(0)
}

type MockCallbackProvider struct{ mock.Mock }

func (m *MockCallbackProvider) Name() string { return m.Called().String(0) }

func (m *MockCallbackProvider) StartFlow(ctx context.Context, req domain.FlowRequest) (domain.FlowResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.FlowResult), args.Error(1)
}

func (m *MockCallbackProvider) VerifyState(state string) (domain.Redirects, error) {
	args := m.Called(state)
	return args.Get(0).(domain.Redirects), args.Error(1)
}

func (m *MockCallbackProvider) Exchange(ctx context.Context, code string) (domain.ExternalIdentity, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.ExternalIdentity), args.Error(1)
}
