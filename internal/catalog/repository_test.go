package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/storeops/storefront-backend/pkg/errors"
)

func TestFindByIDReturnsProduct(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	created := mustCreateTestProduct(t, gdb, "Espresso Beans", 12.5, 0.1)

	found, err := repo.FindByID(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, created.ProductID, found.ProductID)
	assert.Equal(t, "Espresso Beans", found.Name)
	assert.InDelta(t, 12.5, found.Price, 1e-9)
}

func TestFindByIDMissingProductNamesEntity(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	repo := NewRepository(gdb)

	_, err := repo.FindByID(context.Background(), 999)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Product 999 not found", typed.Message())
}

func TestListOrdersByID(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	mustCreateTestProduct(t, gdb, "First", 1, 0)
	mustCreateTestProduct(t, gdb, "Second", 2, 0)

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "First", rows[0].Name)
	assert.Equal(t, "Second", rows[1].Name)
}
