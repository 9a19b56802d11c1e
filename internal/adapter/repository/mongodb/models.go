package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	authdomain "github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
)

type productDocument struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	OwnerID       string               `bson:"owner_id"`
	ProductName   string               `bson:"product_name"`
	Category      domain.Category      `bson:"category"`
	Condition     domain.Condition     `bson:"condition"`
	Price         float64              `bson:"price"`
	Negotiable    bool                 `bson:"negotiable"`
	SellerName    string               `bson:"seller_name"`
	Address       string               `bson:"address"`
	ContactNumber string               `bson:"contact_number"`
	Images        []string             `bson:"images"`
	Status        domain.ListingStatus `bson:"status"`
	CreatedAt     time.Time            `bson:"created_at,omitempty"`
	UpdatedAt     time.Time            `bson:"updated_at,omitempty"`
}

type favoriteDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ListingID string             `bson:"listing_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name"`
	PasswordHash string             `bson:"password_hash,omitempty"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// objectID parses a hex id. An empty id yields NilObjectID so the insert generates one.
func objectID(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id %q: %w", id, err)
	}
	return oid, nil
}

func toProductDocument(p *domain.Product) (*productDocument, error) {
	oid, err := objectID(p.ID)
	if err != nil {
		return nil, err
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &productDocument{
		ID:            oid,
		OwnerID:       p.OwnerID,
		ProductName:   p.ProductName,
		Category:      p.Category,
		Condition:     p.Condition,
		Price:         p.Price,
		Negotiable:    p.Negotiable,
		SellerName:    p.SellerName,
		Address:       p.Address,
		ContactNumber: p.ContactNumber,
		Images:        images,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

// toDomainProduct fills StoreCreatedAt from the ObjectID so records without
// created_at still sort by age.
func toDomainProduct(d *productDocument) *domain.Product {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return &domain.Product{
		ID:             d.ID.Hex(),
		OwnerID:        d.OwnerID,
		ProductName:    d.ProductName,
		Category:       d.Category,
		Condition:      d.Condition,
		Price:          d.Price,
		Negotiable:     d.Negotiable,
		SellerName:     d.SellerName,
		Address:        d.Address,
		ContactNumber:  d.ContactNumber,
		Images:         images,
		Status:         d.Status,
		CreatedAt:      d.CreatedAt,
		StoreCreatedAt: d.ID.Timestamp().UTC(),
		UpdatedAt:      d.UpdatedAt,
	}
}

func toDomainProducts(docs []*productDocument) []*domain.Product {
	out := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDomainProduct(d))
	}
	return out
}

func toDomainFavorite(d *favoriteDocument) *domain.Favorite {
	return &domain.Favorite{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		ListingID: d.ListingID,
		CreatedAt: d.CreatedAt,
	}
}

func toUserDocument(u *authdomain.User) (*userDocument, error) {
	oid, err := objectID(u.ID)
	if err != nil {
		return nil, err
	}
	return &userDocument{
		ID:           oid,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}, nil
}

func toDomainUser(d *userDocument) *authdomain.User {
	return &authdomain.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
	}
}
