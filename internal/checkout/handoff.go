package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/delegance/storefront-backend/internal/cart"
	"github.com/delegance/storefront-backend/pkg/config"
	"github.com/delegance/storefront-backend/pkg/money"
)

// Handoff is the outbound order confirmation payload: a pre-filled WhatsApp
// message and the external payment link the shopper pays through first.
type Handoff struct {
	Message         string `json:"message"`
	WhatsAppURL     string `json:"whatsapp_url"`
	PaymentLinkURL  string `json:"payment_link_url,omitempty"`
	DeliveryAllowed bool   `json:"delivery_allowed"`
}

// Builder renders handoffs from the shop's contact and threshold settings.
type Builder struct {
	whatsappNumber string
	paymentLink    string
	deliveryMin    float64
}

// NewBuilder wires the builder from config.
func NewBuilder(handoff config.HandoffConfig, shop config.ShopConfig) (*Builder, error) {
	if handoff.WhatsAppNumber == "" {
		return nil, fmt.Errorf("whatsapp number is required")
	}
	return &Builder{
		whatsappNumber: handoff.WhatsAppNumber,
		paymentLink:    handoff.PaymentLinkURL,
		deliveryMin:    shop.DeliveryMinSubtotal,
	}, nil
}

// DeliveryAllowed reports whether the subtotal unlocks delivery.
func (b *Builder) DeliveryAllowed(subtotal float64) bool {
	return subtotal >= b.deliveryMin
}

// Build renders the confirmation message and wa.me link for the given cart
// contents. A nil draft renders with placeholder name/notes and pickup.
func (b *Builder) Build(items []cart.LineItem, subtotal float64, draft *Draft) Handoff {
	name := "(add name)"
	notes := "(none)"
	method := "pickup"
	if draft != nil {
		if draft.Name != "" {
			name = draft.Name
		}
		if draft.Notes != "" {
			notes = draft.Notes
		}
		if draft.Method != "" {
			method = draft.Method.String()
		}
	}

	var lines []string
	for _, item := range items {
		line := fmt.Sprintf("- %s x%d (%s)", item.Title, item.Qty, money.Format(item.Price*float64(item.Qty)))
		var extras []string
		if item.VariantLabel != nil && *item.VariantLabel != "" {
			extras = append(extras, fmt.Sprintf("Variant: %s", *item.VariantLabel))
		}
		if item.Personalization != nil && *item.Personalization != "" {
			extras = append(extras, fmt.Sprintf("Personalization: %s", *item.Personalization))
		}
		if len(extras) > 0 {
			line += fmt.Sprintf("\n  %s", strings.Join(extras, " | "))
		}
		lines = append(lines, line)
	}

	message := fmt.Sprintf(
		"Hi D'Elegance! I have paid and would like to confirm my order:\n\nName: %s\nMethod: %s\nSubtotal: %s\n\nItems:\n%s\n\nNotes: %s",
		name, method, money.Format(subtotal), strings.Join(lines, "\n"), notes,
	)

	return Handoff{
		Message:         message,
		WhatsAppURL:     fmt.Sprintf("https://wa.me/%s?text=%s", b.whatsappNumber, url.QueryEscape(message)),
		PaymentLinkURL:  b.paymentLink,
		DeliveryAllowed: b.DeliveryAllowed(subtotal),
	}
}
