package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeops/storefront-backend/pkg/db/models"
	"github.com/storeops/storefront-backend/pkg/enums"
	pkgerrors "github.com/storeops/storefront-backend/pkg/errors"
	"github.com/storeops/storefront-backend/pkg/pagination"
)

func mustCreateTestOrder(t *testing.T, repo Repository, branchID int64, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		BranchID:  branchID,
		OrderDate: createdAt,
		Name:      "Test Order",
		Status:    enums.OrderStatusPending,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	created, err := repo.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	return created
}

func TestFindByIDPreloadsDetailsInOrder(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	order := mustCreateTestOrder(t, repo, 1, time.Now().UTC())
	details := []models.OrderDetail{
		{OrderID: order.OrderID, ProductID: 10, Quantity: 2, UnitPrice: 5},
		{OrderID: order.OrderID, ProductID: 20, Quantity: 1, UnitPrice: 9.5},
	}
	require.NoError(t, repo.CreateDetails(ctx, details))

	found, err := repo.FindByID(ctx, order.OrderID)
	require.NoError(t, err)
	require.Len(t, found.Details, 2)
	assert.Equal(t, int64(10), found.Details[0].ProductID)
	assert.Equal(t, int64(20), found.Details[1].ProductID)
}

func TestFindByIDMissingOrder(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	repo := NewRepository(gdb)

	_, err := repo.FindByID(context.Background(), 999)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListPaginatesNewestFirst(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		mustCreateTestOrder(t, repo, int64(i+1), base.Add(time.Duration(i)*time.Minute))
	}

	first, next, err := repo.List(ctx, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotEmpty(t, next)
	assert.Equal(t, int64(5), first[0].BranchID)
	assert.Equal(t, int64(4), first[1].BranchID)

	second, _, err := repo.List(ctx, pagination.Params{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, int64(3), second[0].BranchID)
	assert.Equal(t, int64(2), second[1].BranchID)
}

func TestDeleteRemovesOrderAndDetails(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	order := mustCreateTestOrder(t, repo, 1, time.Now().UTC())
	require.NoError(t, repo.CreateDetails(ctx, []models.OrderDetail{
		{OrderID: order.OrderID, ProductID: 1, Quantity: 1, UnitPrice: 2},
	}))

	require.NoError(t, repo.Delete(ctx, order.OrderID))

	_, err := repo.FindByID(ctx, order.OrderID)
	require.Error(t, err)

	var count int64
	require.NoError(t, gdb.Model(&models.OrderDetail{}).Where("order_id = ?", order.OrderID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteMissingOrder(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	repo := NewRepository(gdb)

	err := repo.Delete(context.Background(), 424242)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
