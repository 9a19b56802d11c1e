package pipeline

import "github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"

// View keeps the browsing state of one listing screen: the fetched records,
// the active criteria and the page being looked at. Every change recomputes
// the whole pipeline.
type View struct {
	records  []*domain.Product
	criteria Criteria
	pageSize int
	page     int
	sorted   []*domain.Product
}

func NewView(records []*domain.Product, pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	v := &View{records: records, pageSize: pageSize, page: 1}
	v.recompute()
	return v
}

// SetRecords replaces the record set and goes back to the first page.
func (v *View) SetRecords(records []*domain.Product) {
	v.records = records
	v.page = 1
	v.recompute()
}

// SetCriteria goes back to the first page when c differs from the active criteria.
func (v *View) SetCriteria(c Criteria) {
	if c == v.criteria {
		return
	}
	v.criteria = c
	v.page = 1
	v.recompute()
}

// GoToPage keeps the criteria and moves to page n, clamped into range.
func (v *View) GoToPage(n int) {
	v.page = clampPage(n, v.totalPages())
}

func (v *View) Criteria() Criteria { return v.criteria }

func (v *View) Page() Page {
	return Paginate(v.sorted, v.pageSize, v.page)
}

func (v *View) recompute() {
	v.sorted = ApplySort(ApplyFilters(v.records, v.criteria), v.criteria.Sort)
	v.page = clampPage(v.page, v.totalPages())
}

func (v *View) totalPages() int {
	return (len(v.sorted) + v.pageSize - 1) / v.pageSize
}
