package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
)

// DefaultPageSize matches the twelve cards per page of the listing grid.
const DefaultPageSize = 12

// PriceBound is an optional inclusive price limit.
type PriceBound struct {
	Value float64
	Set   bool
}

func Bound(v float64) PriceBound {
	return PriceBound{Value: v, Set: true}
}

// ParsePriceBound treats empty or non-numeric input as no constraint.
func ParsePriceBound(raw string) PriceBound {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PriceBound{}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return PriceBound{}
	}
	return Bound(v)
}

// Criteria is comparable so callers can tell when a filter actually changed.
type Criteria struct {
	Search    string
	Category  domain.Category
	Condition domain.Condition
	PriceMin  PriceBound
	PriceMax  PriceBound
	Sort      SortKey
}

// Page is one page of the sorted, filtered listing.
type Page struct {
	Items      []*domain.Product `json:"items"`
	Number     int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
	Total      int               `json:"total"`
}
