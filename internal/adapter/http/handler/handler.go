// Package handler adapts the use cases to JSON over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/http/response"
	authdomain "github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/pipeline"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/usecase"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/validation"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
)

type ListingService interface {
	Browse(ctx context.Context, c pipeline.Criteria, page int) (pipeline.Page, error)
	GetListing(ctx context.Context, id string, actor domain.Actor) (*domain.Product, error)
	MyListings(ctx context.Context, ownerID string) ([]*domain.Product, error)
}

type UploadService interface {
	Submit(ctx context.Context, ownerID string, form validation.UploadForm, files []domain.UploadedFile) (*domain.Product, error)
}

type ModerationService interface {
	SetStatus(ctx context.Context, actor domain.Actor, id string, status domain.ListingStatus) error
}

type FavoriteService interface {
	Toggle(ctx context.Context, actor domain.Actor, listingID string) (bool, error)
	List(ctx context.Context, userID string) ([]string, error)
}

// writeError maps domain errors onto status codes. Unexpected errors are logged
// and reported as a generic server error.
func writeError(w http.ResponseWriter, log *logger.Logger, op string, err error) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.JSON(w, http.StatusUnprocessableEntity, response.ErrorBody{
			Msg:    validationErr.Result.Message,
			Fields: validationErr.Result.Fields,
		})
	case errors.Is(err, authdomain.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, authdomain.ErrNotAuthenticated):
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, domain.ErrForbidden):
		response.Error(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, domain.ErrListingNotFound):
		response.Error(w, http.StatusNotFound, "Listing not found")
	case errors.Is(err, authdomain.ErrUserNotFound):
		response.Error(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, authdomain.ErrUnknownProvider),
		errors.Is(err, authdomain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUploadFailed):
		log.Error(op+" failed", zap.Error(err))
		response.Error(w, http.StatusBadGateway, "Failed to upload images. Please try again.")
	default:
		log.Error(op+" failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Server error")
	}
}
