package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/storeops/storefront-backend/pkg/db/models"
)

// FinalPrice applies the product's fractional discount to its list price.
// Raw floats flow through storage untouched; rounding happens only at
// display boundaries via RoundDisplay.
func FinalPrice(p *models.Product) float64 {
	if p == nil {
		return 0
	}
	return p.Price * (1 - p.Discount)
}

// RoundDisplay rounds a monetary value to two decimal places for
// presentation. Stored prices and totals keep full float precision.
func RoundDisplay(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return rounded
}
