package domain

import "time"

type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"
	StatusApproved ListingStatus = "approved"
	StatusRejected ListingStatus = "rejected"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Category string

// Categories is the fixed set a listing can be filed under, in display order.
var Categories = []Category{
	"Electronics", "Clothing", "Home & Garden", "Sports", "Books",
	"Automotive", "Toys", "Health & Beauty", "Furniture", "Other",
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Condition string

var Conditions = []Condition{"New", "Like New", "Good", "Fair", "Poor"}

func (c Condition) Valid() bool {
	for _, known := range Conditions {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a listing as stored in the record store.
type Product struct {
	ID            string        `json:"id"`
	OwnerID       string        `json:"ownerId"`
	ProductName   string        `json:"productName"`
	Category      Category      `json:"category"`
	Condition     Condition     `json:"condition"`
	Price         float64       `json:"price"`
	Negotiable    bool          `json:"negotiable"`
	SellerName    string        `json:"sellerName"`
	Address       string        `json:"address"`
	ContactNumber string        `json:"contactNumber"`
	Images        []string      `json:"images"`
	Status        ListingStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	// StoreCreatedAt is the creation time assigned by the store itself.
	StoreCreatedAt time.Time `json:"storeCreatedAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreationTime is CreatedAt, or the store-assigned time when CreatedAt is missing.
func (p *Product) CreationTime() time.Time {
	if !p.CreatedAt.IsZero() {
		return p.CreatedAt
	}
	return p.StoreCreatedAt
}

// VisibleTo reports whether the actor may see the listing. Approved listings are
// public; any other status is visible only to the owner and to admins.
func (p *Product) VisibleTo(a Actor) bool {
	if p.Status == StatusApproved || a.IsAdmin() {
		return true
	}
	return a.UserID != "" && a.UserID == p.OwnerID
}

type Favorite struct {
	ID        string
	UserID    string
	ListingID string
	CreatedAt time.Time
}

// UploadedFile is one image attached to a submission.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Actor is the authenticated caller of a listing operation. A zero Actor is anonymous.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == "admin" }
