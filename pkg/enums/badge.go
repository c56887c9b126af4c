package enums

// Badge is the promotional label attached to a projected catalog item.
type Badge string

const (
	BadgeSale       Badge = "Sale"
	BadgeNew        Badge = "New"
	BadgeBestSeller Badge = "Best Seller"
	BadgeSeasonal   Badge = "Seasonal"
)

// String implements fmt.Stringer.
func (b Badge) String() string {
	return string(b)
}
