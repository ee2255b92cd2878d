package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/storeops/storefront-backend/internal/cart"
	"github.com/storeops/storefront-backend/internal/catalog"
	"github.com/storeops/storefront-backend/pkg/db/models"
	"github.com/storeops/storefront-backend/pkg/enums"
	pkgerrors "github.com/storeops/storefront-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB, *cart.Repository) {
	t.Helper()
	gdb := setupOrdersTestDB(t)
	cartRepo := cart.NewRepository(gdb)
	svc, err := NewService(gormTxRunner{db: gdb}, NewRepository(gdb), cartRepo, catalog.NewRepository(gdb), nil)
	require.NoError(t, err)
	return svc, gdb, cartRepo
}

func TestCheckoutCreatesOrderWithServerPrices(t *testing.T) {
	svc, gdb, _ := newTestService(t)
	ctx := context.Background()

	coffee := mustCreateTestProduct(t, gdb, "Coffee", 12.5, 0)
	mug := mustCreateTestProduct(t, gdb, "Mug", 8, 0)

	result, err := svc.Checkout(ctx, CheckoutInput{
		BranchID: 3,
		Items: []CheckoutItem{
			{ProductID: coffee.ProductID, Quantity: 2},
			{ProductID: mug.ProductID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Order)
	assert.Equal(t, int64(3), result.Order.BranchID)
	assert.Equal(t, enums.OrderStatusPending, result.Order.Status)
	assert.NotEmpty(t, result.Order.Name)
	assert.NotEmpty(t, result.Order.Description)

	require.Len(t, result.Details, 2)
	assert.Equal(t, coffee.ProductID, result.Details[0].ProductID)
	assert.InDelta(t, 12.5, result.Details[0].UnitPrice, 1e-9)
	assert.Equal(t, mug.ProductID, result.Details[1].ProductID)
	assert.InDelta(t, 8, result.Details[1].UnitPrice, 1e-9)
}

func TestCheckoutMissingProductRollsBackEverything(t *testing.T) {
	svc, gdb, _ := newTestService(t)
	ctx := context.Background()

	coffee := mustCreateTestProduct(t, gdb, "Coffee", 12.5, 0)

	_, err := svc.Checkout(ctx, CheckoutInput{
		BranchID: 1,
		Items: []CheckoutItem{
			{ProductID: coffee.ProductID, Quantity: 1},
			{ProductID: 9999, Quantity: 1},
		},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Product 9999 not found", typed.Message())

	// Nothing persisted: neither the order header nor the valid line.
	var orderCount, detailCount int64
	require.NoError(t, gdb.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, gdb.Model(&models.OrderDetail{}).Count(&detailCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, detailCount)
}

func TestCheckoutValidatesInput(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CheckoutInput
	}{
		{"missing branch", CheckoutInput{Items: []CheckoutItem{{ProductID: 1, Quantity: 1}}}},
		{"no items", CheckoutInput{BranchID: 1}},
		{"zero quantity", CheckoutInput{BranchID: 1, Items: []CheckoutItem{{ProductID: 1, Quantity: 0}}}},
	}
	for _, tc := range cases {
		_, err := svc.Checkout(ctx, tc.input)
		require.Error(t, err, tc.name)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, tc.name)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code(), tc.name)
	}
}

func TestCheckoutAppliesDiscountToServerPricedLines(t *testing.T) {
	svc, gdb, _ := newTestService(t)
	ctx := context.Background()

	// price 100, 20% off: unit 80.00, subtotal 160.00 for quantity 2
	product := mustCreateTestProduct(t, gdb, "Grinder", 100, 0.2)

	result, err := svc.Checkout(ctx, CheckoutInput{
		BranchID: 1,
		Items:    []CheckoutItem{{ProductID: product.ProductID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Len(t, result.Details, 1)
	assert.InDelta(t, 80.0, result.Details[0].UnitPrice, 1e-9)
	assert.InDelta(t, 160.0, result.Details[0].Subtotal(), 1e-9)
}

func TestOrderPricesSurviveCatalogChanges(t *testing.T) {
	svc, gdb, _ := newTestService(t)
	ctx := context.Background()

	coffee := mustCreateTestProduct(t, gdb, "Coffee", 12.5, 0)
	result, err := svc.Checkout(ctx, CheckoutInput{
		BranchID: 1,
		Items:    []CheckoutItem{{ProductID: coffee.ProductID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Reprice the catalog after checkout.
	require.NoError(t, gdb.Model(&models.Product{}).
		Where("product_id = ?", coffee.ProductID).
		Update("price", 99.99).Error)

	stored, err := svc.Get(ctx, result.Order.OrderID)
	require.NoError(t, err)
	require.Len(t, stored.Details, 1)
	assert.InDelta(t, 12.5, stored.Details[0].UnitPrice, 1e-9)
}

func TestCheckoutFromCartUsesSnapshotsAndClearsCart(t *testing.T) {
	svc, gdb, cartRepo := newTestService(t)
	ctx := context.Background()
	session := uuid.NewString()

	coffee := mustCreateTestProduct(t, gdb, "Coffee", 12.5, 0)
	record, err := cartRepo.GetOrCreate(ctx, session)
	require.NoError(t, err)
	// Snapshot price differs from the current catalog price.
	_, err = cartRepo.AddItem(ctx, record.CartID, coffee.ProductID, 2, 10)
	require.NoError(t, err)

	result, err := svc.CheckoutFromCart(ctx, session, CheckoutInput{BranchID: 2})
	require.NoError(t, err)
	assert.Equal(t, "Order from Cart", result.Order.Name)
	require.Len(t, result.Details, 1)
	assert.InDelta(t, 10, result.Details[0].UnitPrice, 1e-9)

	items, err := cartRepo.Items(ctx, record.CartID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckoutFromCartEmptyCart(t *testing.T) {
	svc, _, cartRepo := newTestService(t)
	ctx := context.Background()
	session := uuid.NewString()

	_, err := cartRepo.GetOrCreate(ctx, session)
	require.NoError(t, err)

	_, err = svc.CheckoutFromCart(ctx, session, CheckoutInput{BranchID: 1})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateRequiresNameAndPrices(t *testing.T) {
	svc, gdb, _ := newTestService(t)
	ctx := context.Background()

	coffee := mustCreateTestProduct(t, gdb, "Coffee", 12.5, 0)

	_, err := svc.Create(ctx, CheckoutInput{
		BranchID: 1,
		Items:    []CheckoutItem{{ProductID: coffee.ProductID, Quantity: 1}},
	})
	require.Error(t, err, "missing name")

	_, err = svc.Create(ctx, CheckoutInput{
		BranchID: 1,
		Name:     "Manual Order",
		Items:    []CheckoutItem{{ProductID: coffee.ProductID, Quantity: 1}},
	})
	require.Error(t, err, "missing unit price")

	price := 11.0
	result, err := svc.Create(ctx, CheckoutInput{
		BranchID: 1,
		Name:     "Manual Order",
		Items:    []CheckoutItem{{ProductID: coffee.ProductID, Quantity: 1, UnitPrice: &price}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Manual Order", result.Order.Name)
	assert.InDelta(t, 11, result.Details[0].UnitPrice, 1e-9)
}

func TestUpdateOrderFields(t *testing.T) {
	svc, gdb, _ := newTestService(t)
	ctx := context.Background()

	coffee := mustCreateTestProduct(t, gdb, "Coffee", 12.5, 0)
	result, err := svc.Checkout(ctx, CheckoutInput{
		BranchID: 1,
		Items:    []CheckoutItem{{ProductID: coffee.ProductID, Quantity: 1}},
	})
	require.NoError(t, err)

	name := "Renamed"
	status := "completed"
	updated, err := svc.Update(ctx, result.Order.OrderID, UpdateOrderInput{
		Name:   &name,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, enums.OrderStatusCompleted, updated.Status)

	bad := "shipped-to-mars"
	_, err = svc.Update(ctx, result.Order.OrderID, UpdateOrderInput{Status: &bad})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
