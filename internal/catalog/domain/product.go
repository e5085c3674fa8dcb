package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Defaults applied when a product is created or replaced without these fields.
const (
	DefaultProductImage = "https://via.placeholder.com/150"
	DefaultProductType  = "General"
)

type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     Price     `json:"price"`
	Image     string    `json:"image"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Price is a money amount. It embeds decimal.Decimal so arithmetic and
// comparisons come for free, but serializes as a bare JSON number, which is
// what API clients expect for price fields.
type Price struct {
	decimal.Decimal
}

// ParsePrice parses a decimal string like "9.99".
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, err
	}
	return Price{d}, nil
}

// MustPrice parses or panics. For fixtures and tests.
func MustPrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

// MarshalJSON emits the amount unquoted. decimal.Decimal's String form is
// already valid JSON number syntax.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}
