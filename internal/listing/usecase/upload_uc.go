package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/validation"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/metrics"
)

// ValidationError carries the fields a rejected submission got wrong.
type ValidationError struct {
	Result validation.Result
}

func (e *ValidationError) Error() string { return e.Result.Message }

type UploadUsecase struct {
	repo        domain.ProductRepository
	storage     domain.Storage
	cache       domain.ListingCache
	publisher   domain.EventPublisher
	metrics     *metrics.MetricsManager
	parallelism int
	logger      *logger.Logger
}

func NewUploadUsecase(
	repo domain.ProductRepository,
	storage domain.Storage,
	cache domain.ListingCache,
	publisher domain.EventPublisher,
	mm *metrics.MetricsManager,
	parallelism int,
	log *logger.Logger,
) *UploadUsecase {
	if parallelism <= 0 {
		parallelism = 1
	}
	return &UploadUsecase{
		repo:        repo,
		storage:     storage,
		cache:       cache,
		publisher:   publisher,
		metrics:     mm,
		parallelism: parallelism,
		logger:      log.Named("UploadUsecase"),
	}
}

// Submit validates the form, stores the images and creates a pending listing.
// Image URLs keep the order of files.
func (uc *UploadUsecase) Submit(ctx context.Context, ownerID string, form validation.UploadForm, files []domain.UploadedFile) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "UploadUsecase.Submit")
	defer span.End()

	if res := validation.Validate(form); !res.Valid() {
		uc.metrics.ValidationFailures.Inc()
		uc.logger.Info("Rejected listing submission",
			zap.String("owner_id", ownerID),
			zap.Strings("fields", res.Fields))
		return nil, &ValidationError{Result: res}
	}

	fileIDs, err := uc.uploadImages(ctx, files)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	product := form.Product(ownerID)
	for _, id := range fileIDs {
		product.Images = append(product.Images, uc.storage.FileViewURL(id))
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := uc.repo.Create(ctx, product); err != nil {
		uc.logger.Error("Failed to create listing", zap.String("owner_id", ownerID), zap.Error(err))
		uc.deleteFiles(ctx, fileIDs)
		return nil, fmt.Errorf("create listing: %w", err)
	}
	uc.metrics.ListingsCreatedTotal.Inc()

	event := domain.ListingCreatedEvent{ID: product.ID, OwnerID: ownerID, Category: product.Category}
	if err := uc.publisher.Publish(ctx, domain.SubjectListingCreated, event); err != nil {
		uc.logger.Warn("Failed to publish listing.created event", zap.String("listing_id", product.ID), zap.Error(err))
	}
	if err := uc.cache.InvalidateApproved(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate approved snapshot", zap.Error(err))
	}

	uc.logger.Info("Listing submitted for review",
		zap.String("listing_id", product.ID),
		zap.String("owner_id", ownerID),
		zap.Int("images", len(product.Images)))
	return product, nil
}

// uploadImages writes each file into its own slot so the result follows input order.
// If any upload fails, the files already written are removed.
func (uc *UploadUsecase) uploadImages(ctx context.Context, files []domain.UploadedFile) ([]string, error) {
	fileIDs := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.parallelism)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			id, err := uc.storage.CreateFile(gctx, f.Name, f.ContentType, f.Data)
			if err != nil {
				return fmt.Errorf("upload %q: %w", f.Name, err)
			}
			fileIDs[i] = id
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.logger.Error("Image upload failed", zap.Int("files", len(files)), zap.Error(err))
		uc.deleteFiles(ctx, fileIDs)
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	uc.metrics.ImagesUploadedTotal.Add(float64(len(files)))
	return fileIDs, nil
}

func (uc *UploadUsecase) deleteFiles(ctx context.Context, fileIDs []string) {
	ctx = context.WithoutCancel(ctx)
	for _, id := range fileIDs {
		if id == "" {
			continue
		}
		if err := uc.storage.DeleteFile(ctx, id); err != nil {
			uc.logger.Warn("Failed to delete orphaned image", zap.String("file_id", id), zap.Error(err))
		}
	}
}
