package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/internal/store"
)

func line(name string, qty int, priceAtAdd int64) domain.CartLine {
	return domain.CartLine{
		CartItem:    domain.CartItem{Qty: qty, PriceCentsAtAdd: priceAtAdd},
		ProductName: name,
	}
}

func TestComposeMessageText(t *testing.T) {
	c := NewComposer("+256789230136", "Vital Electronics")
	msg, err := c.Compose([]domain.CartLine{
		line("iPhone 15 Pro", 2, 4500000),
		line("AirPods Pro", 1, 850000),
	})
	require.NoError(t, err)

	want := "Hi! I'm interested in purchasing the following items from Vital Electronics:\n\n" +
		"📱 iPhone 15 Pro\n" +
		"   Quantity: 2 pcs\n" +
		"   Price: UGX 9,000,000\n\n" +
		"📱 AirPods Pro\n" +
		"   Quantity: 1 pc\n" +
		"   Price: UGX 850,000\n\n" +
		"💰 Total Amount: UGX 9,850,000\n\n" +
		"Please confirm availability and delivery details. Thank you!"
	assert.Equal(t, want, msg.Text)
}

func TestComposeSingularUnit(t *testing.T) {
	c := NewComposer("+256789230136", "Vital Electronics")
	msg, err := c.Compose([]domain.CartLine{line("Power Bank", 1, 180000)})
	require.NoError(t, err)
	assert.Contains(t, msg.Text, "Quantity: 1 pc\n")
	assert.NotContains(t, msg.Text, "1 pcs")
}

func TestComposeEmptyCartRejected(t *testing.T) {
	c := NewComposer("+256789230136", "Vital Electronics")
	_, err := c.Compose(nil)
	require.Error(t, err)
	assert.True(t, store.IsValidation(err))
}

func TestDeepLinkEncoding(t *testing.T) {
	link := DeepLink("+256 789 230-136", "Hi! 2 pcs 📱\nnext line")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/256789230136?text="), link)
	// Spaces must be %20, never +
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "%20")

	// The text parameter must decode back to the original message
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hi! 2 pcs 📱\nnext line", u.Query().Get("text"))
}

func TestTotalExactIntegerArithmetic(t *testing.T) {
	lines := []domain.CartLine{
		line("a", 3, 333333),
		line("b", 2, 1),
	}
	assert.EqualValues(t, 999999+2, Total(lines))
	assert.EqualValues(t, 0, Total(nil))
}

func TestFormatUGXGrouping(t *testing.T) {
	assert.Equal(t, "UGX 9,850,000", FormatUGX(9850000))
	assert.Equal(t, "UGX 0", FormatUGX(0))
	assert.Equal(t, "UGX 999", FormatUGX(999))
	assert.Equal(t, "UGX 1,000", FormatUGX(1000))
}
