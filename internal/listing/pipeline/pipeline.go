// Package pipeline filters, sorts and paginates an in-memory set of listings.
// Every stage returns a new slice; input slices are never reordered or modified.
package pipeline

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
)

// Run applies filters, then sort, then pagination.
func Run(records []*domain.Product, c Criteria, pageSize, pageNumber int) Page {
	return Paginate(ApplySort(ApplyFilters(records, c), c.Sort), pageSize, pageNumber)
}

// ApplyFilters keeps the records that satisfy every criterion that is set.
func ApplyFilters(records []*domain.Product, c Criteria) []*domain.Product {
	search := strings.ToLower(c.Search)
	out := make([]*domain.Product, 0, len(records))
	for _, p := range records {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if c.Category != "" && p.Category != c.Category {
			continue
		}
		if c.Condition != "" && p.Condition != c.Condition {
			continue
		}
		if c.PriceMin.Set && p.Price < c.PriceMin.Value {
			continue
		}
		if c.PriceMax.Set && p.Price > c.PriceMax.Value {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p *domain.Product, lowered string) bool {
	return strings.Contains(strings.ToLower(p.ProductName), lowered) ||
		strings.Contains(strings.ToLower(p.SellerName), lowered) ||
		strings.Contains(strings.ToLower(p.Address), lowered)
}

// ApplySort returns a stably sorted copy. Unknown keys sort newest first.
func ApplySort(records []*domain.Product, key SortKey) []*domain.Product {
	out := make([]*domain.Product, len(records))
	copy(out, records)

	var less func(a, b *domain.Product) bool
	switch key {
	case SortPriceLow:
		less = func(a, b *domain.Product) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b *domain.Product) bool { return a.Price > b.Price }
	case SortName:
		// A Collator keeps internal buffers, so each sort gets its own.
		col := collate.New(language.English)
		less = func(a, b *domain.Product) bool {
			return col.CompareString(a.ProductName, b.ProductName) < 0
		}
	default:
		less = func(a, b *domain.Product) bool { return a.CreationTime().After(b.CreationTime()) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Paginate cuts one page out of records. The page number is clamped into range.
func Paginate(records []*domain.Product, pageSize, pageNumber int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize
	pageNumber = clampPage(pageNumber, totalPages)

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]*domain.Product, end-start)
	copy(items, records[start:end])
	return Page{
		Items:      items,
		Number:     pageNumber,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Total:      total,
	}
}

func clampPage(n, totalPages int) int {
	if n > totalPages {
		n = totalPages
	}
	if n < 1 {
		n = 1
	}
	return n
}
