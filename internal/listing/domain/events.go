package domain

const (
	SubjectListingCreated       = "listing.created"
	SubjectListingStatusUpdated = "listing.status.updated"
)

type ListingCreatedEvent struct {
	ID       string   `json:"id"`
	OwnerID  string   `json:"owner_id"`
	Category Category `json:"category"`
}

type ListingStatusUpdatedEvent struct {
	ID     string        `json:"id"`
	Status ListingStatus `json:"status"`
}
