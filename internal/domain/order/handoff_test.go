package order

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turkmasale/backend/internal/domain/cart"
)

func testHandoffConfig() HandoffConfig {
	return HandoffConfig{
		StoreName:   "Turk Masale",
		StorePhone:  "919634749230",
		CountryCode: "91",
	}
}

func TestBuildHandoffMessage(t *testing.T) {
	contact := testContact()
	contact.AlternatePhone = "9123456780"
	contact.Landmark = "Near clock tower"

	o, err := NewOrder(contact, testItems())
	require.NoError(t, err)

	msg, err := BuildHandoffMessage(testHandoffConfig(), o)
	require.NoError(t, err)

	t.Run("header and footer name the store", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(msg, "*🧂 Turk Masale - New Order 🧂*\n\n"))
		assert.True(t, strings.HasSuffix(msg, "Thank you for choosing *Turk Masale*! 🌶️"))
	})

	t.Run("each line shows title, size, quantity and line total", func(t *testing.T) {
		assert.Contains(t, msg, "• Garam Masala (100g) x 2 — ₹160\n")
		assert.Contains(t, msg, "• Turmeric Powder (50g) x 1 — ₹45\n")
	})

	t.Run("total and contact details are present", func(t *testing.T) {
		assert.Contains(t, msg, "*Total Amount:* ₹205\n")
		assert.Contains(t, msg, "👤 Name: Asha Verma\n")
		assert.Contains(t, msg, "📞 Phone: 9876543210\n")
		assert.Contains(t, msg, "📞 Alternate Phone: 9123456780\n")
		assert.Contains(t, msg, "📍 Landmark: Near clock tower\n")
		assert.Contains(t, msg, "🏷️ Address Type: Home\n")
	})

	t.Run("total is recomputed from the snapshot", func(t *testing.T) {
		o2, err := NewOrder(testContact(), testItems())
		require.NoError(t, err)

		// a total edited outside the aggregate never reaches the message
		o2.Total = decimal.NewFromInt(9999)

		msg2, err := BuildHandoffMessage(testHandoffConfig(), o2)
		require.NoError(t, err)
		assert.Contains(t, msg2, "*Total Amount:* ₹205\n")
	})

	t.Run("optional lines are omitted when empty", func(t *testing.T) {
		o2, err := NewOrder(testContact(), testItems())
		require.NoError(t, err)

		msg2, err := BuildHandoffMessage(testHandoffConfig(), o2)
		require.NoError(t, err)
		assert.NotContains(t, msg2, "Alternate Phone")
		assert.NotContains(t, msg2, "Landmark")
	})
}

func TestHandoffLink(t *testing.T) {
	cfg := testHandoffConfig()
	link := HandoffLink(cfg, "hello *world* ₹45")

	require.True(t, strings.HasPrefix(link, "https://wa.me/919634749230?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "hello *world* ₹45", parsed.Query().Get("text"))
}

func TestCompletionMessage(t *testing.T) {
	o, err := NewOrder(testContact(), []cart.Item{
		{Slug: "turmeric", Title: "Turmeric Powder", Size: "50g", Price: decimal.NewFromInt(45), Quantity: 1},
	})
	require.NoError(t, err)
	o.ID = 42

	cfg := testHandoffConfig()
	msg := BuildCompletionMessage(cfg, o)
	assert.Contains(t, msg, "Your order #42 has been marked as *Completed*.")
	assert.Contains(t, msg, "Thank you for shopping with Turk Masale! 🌶️")
	assert.True(t, strings.HasSuffix(msg, "Regards,\nTurk Masale Team"))

	link := CustomerLink(cfg, o, msg)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="))
}
