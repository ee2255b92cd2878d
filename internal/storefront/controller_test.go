package storefront

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/storeops/storefront-backend/pkg/errors"
)

type stubClient struct {
	err          error
	confirmation *CheckoutConfirmation
	submitted    []Item
	onSubmit     func()
}

func (s *stubClient) SubmitCheckout(_ context.Context, _ int64, items []Item) (*CheckoutConfirmation, error) {
	s.submitted = items
	if s.onSubmit != nil {
		s.onSubmit()
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.confirmation, nil
}

func newTestController(t *testing.T, client CheckoutClient) *Controller {
	t.Helper()
	ctrl, err := NewController(NewMemoryStore(), client)
	require.NoError(t, err)
	return ctrl
}

func TestAddMergesDuplicateProduct(t *testing.T) {
	ctrl := newTestController(t, nil)

	require.NoError(t, ctrl.Add(Item{ProductID: 1, Name: "Coffee", Quantity: 2, UnitPrice: 4.5}))
	require.NoError(t, ctrl.Add(Item{ProductID: 1, Name: "Coffee", Quantity: 3, UnitPrice: 9.99}))

	items := ctrl.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.InDelta(t, 4.5, items[0].UnitPrice, 1e-9)
}

func TestSetQuantityZeroRejected(t *testing.T) {
	ctrl := newTestController(t, nil)
	require.NoError(t, ctrl.Add(Item{ProductID: 1, Quantity: 2, UnitPrice: 1}))

	err := ctrl.SetQuantity(1, 0)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, 2, ctrl.Items()[0].Quantity)
}

func TestTotalAndCount(t *testing.T) {
	ctrl := newTestController(t, nil)
	assert.Zero(t, ctrl.Total())
	assert.Zero(t, ctrl.Count())

	require.NoError(t, ctrl.Add(Item{ProductID: 1, Quantity: 2, UnitPrice: 3.25}))
	require.NoError(t, ctrl.Add(Item{ProductID: 2, Quantity: 1, UnitPrice: 10}))

	assert.InDelta(t, 16.5, ctrl.Total(), 1e-9)
	assert.Equal(t, 3, ctrl.Count())
}

func TestCheckoutFailureLeavesCartUntouched(t *testing.T) {
	client := &stubClient{err: errors.New("server exploded")}
	ctrl := newTestController(t, client)

	require.NoError(t, ctrl.Add(Item{ProductID: 1, Quantity: 2, UnitPrice: 5}))
	require.NoError(t, ctrl.Add(Item{ProductID: 2, Quantity: 1, UnitPrice: 8}))
	before := ctrl.Items()

	_, err := ctrl.Checkout(context.Background(), 1)
	require.Error(t, err)

	after := ctrl.Items()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ProductID, after[i].ProductID)
		assert.Equal(t, before[i].Quantity, after[i].Quantity)
	}
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	client := &stubClient{confirmation: &CheckoutConfirmation{OrderID: 42, Status: "pending", Total: 18}}
	ctrl := newTestController(t, client)

	require.NoError(t, ctrl.Add(Item{ProductID: 1, Quantity: 2, UnitPrice: 5}))
	require.NoError(t, ctrl.Add(Item{ProductID: 2, Quantity: 1, UnitPrice: 8}))

	confirmation, err := ctrl.Checkout(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(42), confirmation.OrderID)
	assert.Len(t, client.submitted, 2)
	assert.Empty(t, ctrl.Items())
}

func TestCheckoutKeepsLinesAddedDuringSubmit(t *testing.T) {
	client := &stubClient{confirmation: &CheckoutConfirmation{OrderID: 7, Status: "pending"}}
	ctrl := newTestController(t, client)

	require.NoError(t, ctrl.Add(Item{ProductID: 1, Quantity: 2, UnitPrice: 5}))
	client.onSubmit = func() {
		// Shopper keeps clicking while the request is in flight.
		require.NoError(t, ctrl.Add(Item{ProductID: 1, Quantity: 3, UnitPrice: 5}))
		require.NoError(t, ctrl.Add(Item{ProductID: 2, Quantity: 1, UnitPrice: 8}))
	}

	_, err := ctrl.Checkout(context.Background(), 1)
	require.NoError(t, err)

	// Only the submitted quantities are gone.
	require.Len(t, client.submitted, 1)
	items := ctrl.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, int64(2), items[1].ProductID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestCheckoutEmptyCart(t *testing.T) {
	ctrl := newTestController(t, &stubClient{})

	_, err := ctrl.Checkout(context.Background(), 1)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	// A missing file is an empty cart.
	items, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, items)

	saved := []Item{{ProductID: 1, Name: "Coffee", Quantity: 2, UnitPrice: 4.5}}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, saved[0], loaded[0])
}

func TestControllerRestoresPersistedState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	first, err := NewController(store, nil)
	require.NoError(t, err)
	require.NoError(t, first.Add(Item{ProductID: 7, Quantity: 3, UnitPrice: 2}))

	second, err := NewController(store, nil)
	require.NoError(t, err)
	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
}
