package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
)

type FavoriteUsecase struct {
	repo     domain.FavoriteRepository
	listings domain.ProductRepository
	logger   *logger.Logger
}

func NewFavoriteUsecase(repo domain.FavoriteRepository, listings domain.ProductRepository, log *logger.Logger) *FavoriteUsecase {
	return &FavoriteUsecase{
		repo:     repo,
		listings: listings,
		logger:   log.Named("FavoriteUsecase"),
	}
}

// Toggle flips the favorite mark and reports whether the listing is now a favorite.
// Only listings the actor can see may be marked; removing an existing mark always works.
func (uc *FavoriteUsecase) Toggle(ctx context.Context, actor domain.Actor, listingID string) (bool, error) {
	userID := actor.UserID
	err := uc.repo.Remove(ctx, userID, listingID)
	if err == nil {
		uc.logger.Info("Favorite removed", zap.String("user_id", userID), zap.String("listing_id", listingID))
		return false, nil
	}
	if !errors.Is(err, domain.ErrFavoriteNotFound) {
		uc.logger.Error("Failed to remove favorite", zap.String("user_id", userID), zap.String("listing_id", listingID), zap.Error(err))
		return false, err
	}

	product, err := uc.listings.FindByID(ctx, listingID)
	if err != nil {
		return false, err
	}
	if !product.VisibleTo(actor) {
		return false, domain.ErrListingNotFound
	}

	favorite := &domain.Favorite{
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Add(ctx, favorite); err != nil {
		uc.logger.Error("Failed to add favorite", zap.String("user_id", userID), zap.String("listing_id", listingID), zap.Error(err))
		return false, err
	}
	uc.logger.Info("Favorite added", zap.String("user_id", userID), zap.String("listing_id", listingID))
	return true, nil
}

// List returns the ids of the user's favorite listings, newest first.
func (uc *FavoriteUsecase) List(ctx context.Context, userID string) ([]string, error) {
	favorites, err := uc.repo.FindByUserID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to fetch favorites", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.ListingID)
	}
	return ids, nil
}
