package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/http/middleware"
	authdomain "github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/domain"
	authuc "github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/usecase"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/pipeline"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/validation"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/tips"
)

type MockListingService struct{ mock.Mock }

func (m *MockListingService) Browse(ctx context.Context, c pipeline.Criteria, page int) (pipeline.Page, error) {
	args := m.Called(ctx, c, page)
	return args.Get(0).(pipeline.Page), args.Error(1)
}

func (m *MockListingService) GetListing(ctx context.Context, id string, actor domain.Actor) (*domain.Product, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockListingService) MyListings(ctx context.Context, ownerID string) ([]*domain.Product, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

type MockUploadService struct{ mock.Mock }

func (m *MockUploadService) Submit(ctx context.Context, ownerID string, form validation.UploadForm, files []domain.UploadedFile) (*domain.Product, error) {
	args := m.Called(ctx, ownerID, form, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type MockModerationService struct{ mock.Mock }

func (m *MockModerationService) SetStatus(ctx context.Context, actor domain.Actor, id string, status domain.ListingStatus) error {
	return m.Called(ctx, actor, id, status).Error(0)
}

type MockFavoriteService struct{ mock.Mock }

func (m *MockFavoriteService) Toggle(ctx context.Context, actor domain.Actor, listingID string) (bool, error) {
	args := m.Called(ctx, actor, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) List(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) StartFlow(ctx context.Context, provider string, req authdomain.FlowRequest) (authdomain.FlowResult, error) {
	args := m.Called(ctx, provider, req)
	return args.Get(0).(authdomain.FlowResult), args.Error(1)
}

func (m *MockAuthService) CompleteMagicLink(ctx context.Context, userID, secret, next string) (authdomain.SignIn, error) {
	args := m.Called(ctx, userID, secret, next)
	return args.Get(0).(authdomain.SignIn), args.Error(1)
}

func (m *MockAuthService) CompleteCallback(ctx context.Context, provider string, cb authdomain.Callback) (authdomain.SignIn, error) {
	args := m.Called(ctx, provider, cb)
	return args.Get(0).(authdomain.SignIn), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, token string) (*authdomain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authdomain.User), args.Error(1)
}

func (m *MockAuthService) EndSession(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type staticTips map[string]tips.Tip

func (s staticTips) Current(deck string) (tips.Tip, bool) {
	tip, ok := s[deck]
	return tip, ok
}

// withURLParams attaches chi path parameters without going through a router.
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// asUser makes the request look like it passed JWTAuth.
func asUser(r *http.Request, userID, role string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.TokenCtxKey, "token-"+userID)
	ctx = context.WithValue(ctx, middleware.ClaimsCtxKey, &authuc.Claims{UserID: userID, Role: role})
	return r.WithContext(ctx)
}
