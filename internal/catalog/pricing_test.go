package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storeops/storefront-backend/pkg/db/models"
)

func TestFinalPriceAppliesDiscountFraction(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"no discount", 10, 0, 10},
		{"ten percent", 10, 0.1, 9},
		{"half off", 19.99, 0.5, 9.995},
	}
	for _, tc := range cases {
		p := &models.Product{Price: tc.price, Discount: tc.discount}
		assert.InDelta(t, tc.want, FinalPrice(p), 1e-9, tc.name)
	}
}

func TestFinalPriceNilProduct(t *testing.T) {
	assert.Zero(t, FinalPrice(nil))
}

func TestRoundDisplayTwoDecimals(t *testing.T) {
	assert.InDelta(t, 10.0, RoundDisplay(9.995), 1e-9)
	assert.InDelta(t, 9.99, RoundDisplay(9.994), 1e-9)
	assert.InDelta(t, 0.0, RoundDisplay(0), 1e-9)
}
