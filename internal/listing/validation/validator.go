// Package validation checks a listing submission before anything is uploaded or stored.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
)

const (
	FieldProductName   = "productName"
	FieldCategory      = "category"
	FieldCondition     = "condition"
	FieldContactNumber = "contactNumber"
	FieldSellerName    = "sellerName"
	FieldAddress       = "address"
	FieldPrice         = "price"
)

const minContactDigits = 10

// UploadForm holds the raw values of the upload form.
type UploadForm struct {
	ProductName   string
	Category      string
	Condition     string
	Price         string
	Negotiable    bool
	SellerName    string
	Address       string
	ContactNumber string
}

// Result lists the fields that failed and the message shown to the seller.
type Result struct {
	Fields  []string `json:"fields,omitempty"`
	Message string   `json:"msg,omitempty"`
}

func (r Result) Valid() bool { return len(r.Fields) == 0 }

// Validate reports missing fields first. When nothing is missing it reports
// every malformed field, with the message of the first one.
func Validate(f UploadForm) Result {
	required := []struct {
		name  string
		value string
	}{
		{FieldProductName, f.ProductName},
		{FieldCategory, f.Category},
		{FieldCondition, f.Condition},
		{FieldContactNumber, f.ContactNumber},
		{FieldSellerName, f.SellerName},
		{FieldAddress, f.Address},
		{FieldPrice, f.Price},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return Result{
			Fields:  missing,
			Message: fmt.Sprintf("Please fill in required fields: %s", strings.Join(missing, ", ")),
		}
	}

	var res Result
	invalid := func(field, msg string) {
		res.Fields = append(res.Fields, field)
		if res.Message == "" {
			res.Message = msg
		}
	}

	if !validContact(strings.TrimSpace(f.ContactNumber)) {
		invalid(FieldContactNumber, "Please enter a valid contact number (at least 10 digits)")
	}
	if _, ok := ParsePrice(f.Price); !ok {
		invalid(FieldPrice, "Please enter a valid price")
	}
	if !domain.Category(strings.TrimSpace(f.Category)).Valid() {
		invalid(FieldCategory, "Please choose a category from the list")
	}
	if !domain.Condition(strings.TrimSpace(f.Condition)).Valid() {
		invalid(FieldCondition, "Please choose a condition from the list")
	}
	return res
}

// ParsePrice accepts finite numbers greater than zero.
func ParsePrice(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

func validContact(s string) bool {
	if len(s) < minContactDigits {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Product builds the pending record for a form that passed Validate.
func (f UploadForm) Product(ownerID string) *domain.Product {
	price, _ := ParsePrice(f.Price)
	return &domain.Product{
		OwnerID:       ownerID,
		ProductName:   strings.TrimSpace(f.ProductName),
		Category:      domain.Category(strings.TrimSpace(f.Category)),
		Condition:     domain.Condition(strings.TrimSpace(f.Condition)),
		Price:         price,
		Negotiable:    f.Negotiable,
		SellerName:    strings.TrimSpace(f.SellerName),
		Address:       strings.TrimSpace(f.Address),
		ContactNumber: strings.TrimSpace(f.ContactNumber),
		Images:        []string{},
		Status:        domain.StatusPending,
	}
}
