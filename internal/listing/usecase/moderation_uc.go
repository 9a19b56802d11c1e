package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/metrics"
)

type ModerationUsecase struct {
	repo      domain.ProductRepository
	cache     domain.ListingCache
	publisher domain.EventPublisher
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

func NewModerationUsecase(repo domain.ProductRepository, cache domain.ListingCache, publisher domain.EventPublisher, mm *metrics.MetricsManager, log *logger.Logger) *ModerationUsecase {
	return &ModerationUsecase{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		metrics:   mm,
		logger:    log.Named("ModerationUsecase"),
	}
}

// SetStatus moves a listing to status. Only admins may moderate.
func (uc *ModerationUsecase) SetStatus(ctx context.Context, actor domain.Actor, id string, status domain.ListingStatus) error {
	ctx, span := tracer.Start(ctx, "ModerationUsecase.SetStatus")
	defer span.End()

	if !actor.IsAdmin() {
		uc.logger.Warn("Non-admin attempted moderation", zap.String("user_id", actor.UserID), zap.String("listing_id", id))
		return domain.ErrForbidden
	}
	if !status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		if !errors.Is(err, domain.ErrListingNotFound) {
			uc.logger.Error("Failed to update listing status", zap.String("listing_id", id), zap.Error(err))
		}
		return err
	}
	uc.metrics.StatusChangesTotal.WithLabelValues(string(status)).Inc()

	if err := uc.cache.InvalidateApproved(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate approved snapshot", zap.Error(err))
	}
	event := domain.ListingStatusUpdatedEvent{ID: id, Status: status}
	if err := uc.publisher.Publish(ctx, domain.SubjectListingStatusUpdated, event); err != nil {
		uc.logger.Warn("Failed to publish listing.status.updated event", zap.String("listing_id", id), zap.Error(err))
	}

	uc.logger.Info("Listing status updated",
		zap.String("listing_id", id),
		zap.String("status", string(status)),
		zap.String("moderator_id", actor.UserID))
	return nil
}
