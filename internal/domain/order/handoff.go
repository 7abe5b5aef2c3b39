package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// HandoffConfig identifies the store account that receives order
// hand-offs on WhatsApp.
type HandoffConfig struct {
	StoreName   string // e.g. "Turk Masale"
	StorePhone  string // full international number without '+', e.g. "919634749230"
	CountryCode string // prefix for customer numbers, e.g. "91"
}

// BuildHandoffMessage renders the order into the WhatsApp text the
// customer forwards to the store. The layout is fixed; the storefront
// relies on it when parsing forwarded orders manually.
func BuildHandoffMessage(cfg HandoffConfig, o *Order) (string, error) {
	items, err := o.Items()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*🧂 %s - New Order 🧂*\n\n", cfg.StoreName)

	// Recomputed from the snapshot rather than read off the row, so the
	// printed total always matches the itemized lines above it.
	total := decimal.Zero
	b.WriteString("*Order Summary:*\n")
	for _, it := range items {
		lineTotal := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(lineTotal)
		fmt.Fprintf(&b, "• %s (%s) x %d — ₹%s\n", it.Title, it.Size, it.Quantity, lineTotal.String())
	}
	fmt.Fprintf(&b, "\n*Total Amount:* ₹%s\n\n", total.String())

	b.WriteString("*Customer Details:*\n")
	fmt.Fprintf(&b, "👤 Name: %s\n", o.FullName)
	fmt.Fprintf(&b, "📞 Phone: %s\n", o.Phone)
	if o.AlternatePhone != "" {
		fmt.Fprintf(&b, "📞 Alternate Phone: %s\n", o.AlternatePhone)
	}
	fmt.Fprintf(&b, "📮 Pincode: %s\n", o.Pincode)
	fmt.Fprintf(&b, "🏙️ City: %s\n", o.City)
	if o.Landmark != "" {
		fmt.Fprintf(&b, "📍 Landmark: %s\n", o.Landmark)
	}
	fmt.Fprintf(&b, "🏡 Address: %s\n", o.FullAddress)
	fmt.Fprintf(&b, "🏷️ Address Type: %s\n\n", o.AddressType)

	b.WriteString("💡 *Note:* Please attach your UPI screenshot after completing the payment. \n\n")
	fmt.Fprintf(&b, "Thank you for choosing *%s*! 🌶️", cfg.StoreName)

	return b.String(), nil
}

// HandoffLink wraps a message into a wa.me deep link to the store account
func HandoffLink(cfg HandoffConfig, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", cfg.StorePhone, url.QueryEscape(message))
}

// BuildCompletionMessage renders the notification sent to the customer
// when their order is marked completed.
func BuildCompletionMessage(cfg HandoffConfig, o *Order) string {
	var b strings.Builder
	b.WriteString("Hello! 👋\n\n")
	fmt.Fprintf(&b, "Your order #%d has been marked as *Completed*. Thank you for shopping with %s! 🌶️\n\n", o.ID, cfg.StoreName)
	b.WriteString("If you have any questions, feel free to reply here.\n\n")
	fmt.Fprintf(&b, "Regards,\n%s Team", cfg.StoreName)
	return b.String()
}

// CustomerLink builds a wa.me deep link to the customer's number
func CustomerLink(cfg HandoffConfig, o *Order, message string) string {
	return fmt.Sprintf("https://wa.me/%s%s?text=%s", cfg.CountryCode, o.Phone, url.QueryEscape(message))
}
