package models

// Tier is a customer's loyalty rank, a pure function of points.
type Tier string

const (
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// Tier thresholds. One canonical table shared by the customer and admin
// surfaces.
const (
	silverThreshold = 500
	goldThreshold   = 1000
)

// TierForPoints maps a point balance to its tier.
func TierForPoints(points int) Tier {
	switch {
	case points >= goldThreshold:
		return TierGold
	case points >= silverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

type AddressType string

const (
	AddressHome  AddressType = "home"
	AddressWork  AddressType = "work"
	AddressOther AddressType = "other"
)

type Address struct {
	ID         string      `json:"id"`
	Type       AddressType `json:"type"`
	Address    string      `json:"address"`
	PostalCode string      `json:"postal_code"`
	IsDefault  bool        `json:"is_default"`
}

type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Points        int       `json:"points"`
	FavoriteItems []string  `json:"favorite_items"`
	Addresses     []Address `json:"addresses,omitempty"`
}

// PointCard is the customer-facing loyalty card view.
type PointCard struct {
	UserID string `json:"user_id"`
	Points int    `json:"points"`
	Tier   Tier   `json:"tier"`
	QRCode string `json:"qr_code"`
}
