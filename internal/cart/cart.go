// Package cart holds the session-scoped shopping cart: an in-memory line
// item list hydrated once from the state store and written back in full on
// every mutation.
package cart

import "fmt"

const keyPrefix = "delegance:cart:v1:"

// Key returns the persisted-record key for a session.
func Key(sessionID string) string {
	return fmt.Sprintf("%s%s", keyPrefix, sessionID)
}

// LineItem is one cart line. Price, Title, Image, VariantLabel and
// Personalization are snapshots taken when the item first entered the cart;
// later adds of the same ID only bump the quantity.
type LineItem struct {
	ID              string  `json:"id"`
	Slug            string  `json:"slug"`
	Title           string  `json:"title"`
	Price           float64 `json:"price"`
	Qty             int     `json:"qty"`
	Image           *string `json:"image,omitempty"`
	VariantLabel    *string `json:"variantLabel,omitempty"`
	Personalization *string `json:"personalization,omitempty"`
}

// State is the persisted cart record.
type State struct {
	Items []LineItem `json:"items"`
}

// Valid reports whether a loaded record has a usable shape. A record that
// fails this check is treated as if nothing was stored.
func (s State) Valid() bool {
	for _, item := range s.Items {
		if item.ID == "" || item.Qty < 1 {
			return false
		}
	}
	return true
}
