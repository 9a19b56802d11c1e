package domain

import (
	"context"
	"time"
)

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	// FindByStatus returns at most limit products with the given status, newest first.
	FindByStatus(ctx context.Context, status ListingStatus, limit int) ([]*Product, error)
	FindByOwner(ctx context.Context, ownerID string, limit int) ([]*Product, error)
	UpdateStatus(ctx context.Context, id string, status ListingStatus) error
}

type FavoriteRepository interface {
	Add(ctx context.Context, favorite *Favorite) error
	Remove(ctx context.Context, userID, listingID string) error
	FindByUserID(ctx context.Context, userID string) ([]*Favorite, error)
}

// Storage is the object store holding listing images.
type Storage interface {
	CreateFile(ctx context.Context, fileName, contentType string, data []byte) (fileID string, err error)
	FileViewURL(fileID string) string
	DeleteFile(ctx context.Context, fileID string) error
}

// ApprovedSnapshot is one read of the cached approved listings. Generation counts
// invalidations and is handed back to SetApproved after a miss.
type ApprovedSnapshot struct {
	Products   []*Product
	Found      bool
	Generation int64
}

// ListingCache holds the approved snapshot the pipeline runs over.
type ListingCache interface {
	GetApproved(ctx context.Context) (ApprovedSnapshot, error)
	// SetApproved stores products read at generation. It is a no-op when the
	// cache was invalidated since, so a stale store read never overwrites newer data.
	SetApproved(ctx context.Context, products []*Product, generation int64, ttl time.Duration) error
	InvalidateApproved(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}
