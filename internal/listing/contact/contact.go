// Package contact builds the deep links a buyer uses to reach a seller.
package contact

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
)

// Links are opened by the client in a new browsing context.
type Links struct {
	WhatsApp string `json:"whatsapp"`
	Tel      string `json:"tel"`
}

func For(countryCode string, p *domain.Product) Links {
	return Links{
		WhatsApp: WhatsAppURL(countryCode, p),
		Tel:      TelURL(p),
	}
}

// InterestMessage is the text pre-filled into the WhatsApp chat.
func InterestMessage(p *domain.Product) string {
	return fmt.Sprintf(
		"Hi👋! I'm interested in your product: %s - ₹%s, that listed on HostleCart Kanpur application. Could you please provide more details?",
		p.ProductName, formatPrice(p.Price))
}

func WhatsAppURL(countryCode string, p *domain.Product) string {
	return "https://wa.me/" + countryCode + digits(p.ContactNumber) + "?text=" + encodeURIComponent(InterestMessage(p))
}

func TelURL(p *domain.Product) string {
	return "tel:" + strings.TrimSpace(p.ContactNumber)
}

// formatPrice prints whole prices without a fractional part, as a JS number would.
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// encodeURIComponent leaves A-Z a-z 0-9 and -_.!~*'() unescaped.
func encodeURIComponent(s string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	return componentUnescaper.Replace(escaped)
}

var componentUnescaper = strings.NewReplacer(
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)
