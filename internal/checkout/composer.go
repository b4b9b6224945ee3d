package checkout

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/internal/store"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message is the composed checkout payload: the human-readable order text
// and the wa.me deep link that opens a pre-filled chat. Opening the link is
// the caller's side effect; composition itself is pure.
type Message struct {
	Text     string `json:"text"`
	DeepLink string `json:"url"`
}

// Composer turns cart contents into the WhatsApp order message.
type Composer struct {
	BusinessPhone string
	StoreName     string
}

func NewComposer(businessPhone, storeName string) *Composer {
	return &Composer{BusinessPhone: businessPhone, StoreName: storeName}
}

// Compose builds the itemized message and deep link for the given lines.
// An empty cart is rejected: the UI prevents checkout on empty carts, so
// reaching here without lines is a caller bug.
func (c *Composer) Compose(lines []domain.CartLine) (*Message, error) {
	if len(lines) == 0 {
		return nil, store.Validationf("cart is empty")
	}

	var b strings.Builder
	b.WriteString("Hi! I'm interested in purchasing the following items from ")
	b.WriteString(c.StoreName)
	b.WriteString(":\n\n")

	var total int64
	for _, line := range lines {
		subtotal := line.Subtotal()
		total += subtotal

		unit := "pcs"
		if line.Qty == 1 {
			unit = "pc"
		}
		b.WriteString("📱 " + line.ProductName + "\n")
		b.WriteString("   Quantity: " + strconv.Itoa(line.Qty) + " " + unit + "\n")
		b.WriteString("   Price: " + FormatUGX(subtotal) + "\n\n")
	}

	b.WriteString("💰 Total Amount: " + FormatUGX(total) + "\n\n")
	b.WriteString("Please confirm availability and delivery details. Thank you!")

	text := b.String()
	return &Message{
		Text:     text,
		DeepLink: DeepLink(c.BusinessPhone, text),
	}, nil
}

// Total sums qty times the add-time unit price over all lines, in minor
// units, with exact integer arithmetic.
func Total(lines []domain.CartLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}

// FormatUGX renders a minor-unit amount as a no-decimals grouped currency
// string, e.g. "UGX 9,850,000". UGX has no sub-unit, so the smallest
// displayed denomination is 1.
func FormatUGX(amount int64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("UGX %d", amount)
}

// DeepLink builds the wa.me URL with the percent-encoded UTF-8 message.
// Emoji and line breaks are permitted in the body. Spaces encode as %20,
// not +, matching what messaging clients expect in the text parameter.
func DeepLink(phone, text string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/" + normalizePhone(phone) + "?text=" + encoded
}

// normalizePhone strips everything but digits; wa.me expects the
// international number without plus sign or separators.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
