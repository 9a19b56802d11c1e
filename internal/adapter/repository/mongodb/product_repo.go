package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
)

const productCollectionName = "products"

// ProductRepository implements domain.ProductRepository on MongoDB.
type ProductRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewProductRepository(db *mongo.Database, log *logger.Logger) *ProductRepository {
	collection := db.Collection(productCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for products collection", zap.Error(err))
	}

	return &ProductRepository{
		collection: collection,
		logger:     log.Named("ProductRepository"),
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	doc, err := toProductDocument(product)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("InsertOne failed", zap.String("owner_id", product.OwnerID), zap.Error(err))
		return fmt.Errorf("insert product: %w", err)
	}
	product.ID = doc.ID.Hex()
	product.StoreCreatedAt = doc.ID.Timestamp().UTC()
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	var doc productDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		r.logger.Error("FindOne failed", zap.String("listing_id", id), zap.Error(err))
		return nil, fmt.Errorf("find product: %w", err)
	}
	return toDomainProduct(&doc), nil
}

func (r *ProductRepository) FindByStatus(ctx context.Context, status domain.ListingStatus, limit int) ([]*domain.Product, error) {
	return r.find(ctx, bson.M{"status": status}, limit)
}

func (r *ProductRepository) FindByOwner(ctx context.Context, ownerID string, limit int) ([]*domain.Product, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID}, limit)
}

// find returns at most limit documents, newest first.
func (r *ProductRepository) find(ctx context.Context, filter bson.M, limit int) ([]*domain.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Find failed", zap.Any("filter", filter), zap.Error(err))
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return toDomainProducts(docs), nil
}

func (r *ProductRepository) UpdateStatus(ctx context.Context, id string, status domain.ListingStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrListingNotFound
	}

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	res, err := r.collection.UpdateByID(ctx, oid, update)
	if err != nil {
		r.logger.Error("UpdateByID failed", zap.String("listing_id", id), zap.Error(err))
		return fmt.Errorf("update product status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}
