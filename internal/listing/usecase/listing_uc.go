package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/pipeline"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
)

var tracer = otel.Tracer("hostlecart/listing-usecase")

// ListingOptions bounds what Browse pulls from the store.
type ListingOptions struct {
	FetchLimit int
	PageSize   int
	CacheTTL   time.Duration
}

type ListingUsecase struct {
	repo   domain.ProductRepository
	cache  domain.ListingCache
	opts   ListingOptions
	logger *logger.Logger
}

func NewListingUsecase(repo domain.ProductRepository, cache domain.ListingCache, opts ListingOptions, log *logger.Logger) *ListingUsecase {
	if opts.FetchLimit <= 0 {
		opts.FetchLimit = 100
	}
	if opts.PageSize <= 0 {
		opts.PageSize = pipeline.DefaultPageSize
	}
	return &ListingUsecase{
		repo:   repo,
		cache:  cache,
		opts:   opts,
		logger: log.Named("ListingUsecase"),
	}
}

// Browse runs the pipeline over the approved snapshot and returns the requested page.
func (uc *ListingUsecase) Browse(ctx context.Context, c pipeline.Criteria, page int) (pipeline.Page, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Browse")
	defer span.End()

	records, err := uc.approvedSnapshot(ctx)
	if err != nil {
		span.RecordError(err)
		return pipeline.Page{}, err
	}

	view := pipeline.NewView(records, uc.opts.PageSize)
	view.SetCriteria(c)
	view.GoToPage(page)
	result := view.Page()

	span.SetAttributes(
		attribute.Int("listing.snapshot_size", len(records)),
		attribute.Int("listing.matched", result.Total),
		attribute.Int("listing.page", result.Number),
	)
	return result, nil
}

// approvedSnapshot serves from the cache and falls back to the store on a miss.
// Cache failures only cost a store round trip.
func (uc *ListingUsecase) approvedSnapshot(ctx context.Context) ([]*domain.Product, error) {
	snap, err := uc.cache.GetApproved(ctx)
	if err != nil {
		uc.logger.Warn("Failed to read approved snapshot from cache", zap.Error(err))
	}
	if snap.Found {
		return snap.Products, nil
	}

	products, err := uc.repo.FindByStatus(ctx, domain.StatusApproved, uc.opts.FetchLimit)
	if err != nil {
		uc.logger.Error("Failed to load approved listings", zap.Error(err))
		return nil, fmt.Errorf("load approved listings: %w", err)
	}

	if err := uc.cache.SetApproved(ctx, products, snap.Generation, uc.opts.CacheTTL); err != nil {
		uc.logger.Warn("Failed to store approved snapshot in cache", zap.Error(err))
	}
	return products, nil
}

// GetListing returns an approved listing. Pending and rejected listings are
// visible to their owner and to admins only.
func (uc *ListingUsecase) GetListing(ctx context.Context, id string, actor domain.Actor) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.GetListing")
	defer span.End()

	product, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrListingNotFound) {
			uc.logger.Error("Failed to find listing", zap.String("listing_id", id), zap.Error(err))
		}
		return nil, err
	}

	if !product.VisibleTo(actor) {
		return nil, domain.ErrListingNotFound
	}
	return product, nil
}

// MyListings returns every listing the owner submitted, whatever its status.
func (uc *ListingUsecase) MyListings(ctx context.Context, ownerID string) ([]*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.MyListings")
	defer span.End()

	products, err := uc.repo.FindByOwner(ctx, ownerID, uc.opts.FetchLimit)
	if err != nil {
		uc.logger.Error("Failed to load owner listings", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("load owner listings: %w", err)
	}
	return products, nil
}
