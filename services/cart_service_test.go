package services

import (
	"context"
	"testing"

	"ecommerce-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) LookupProduct(ctx context.Context, productID int64) (*models.ProductSnapshot, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(*models.ProductSnapshot)
	return p, args.Error(1)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func snapshot(id int64, name, price string) *models.ProductSnapshot {
	return &models.ProductSnapshot{ID: id, Name: name, Price: money(price)}
}

func newCartFixture(t *testing.T) (*CartService, *fakeStore, *mockCatalog) {
	t.Helper()
	store := newFakeStore()
	catalog := &mockCatalog{}
	t.Cleanup(func() { catalog.AssertExpectations(t) })
	return NewCartService(store, catalog), store, catalog
}

func TestAddItemCreatesCartWithSnapshot(t *testing.T) {
	svc, _, catalog := newCartFixture(t)
	ctx := context.Background()
	catalog.On("LookupProduct", mock.Anything, int64(10)).Return(snapshot(10, "Laptop", "9.99"), nil).Once()

	cart, err := svc.AddItem(ctx, 1, 10, 2)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, 1, cart.UserID)
	assert.Equal(t, "Laptop", cart.Items[0].ProductName)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, money("19.98").Equal(cart.TotalAmount))
	assert.Equal(t, 2, cart.TotalItems)
}

func TestAddItemMergesSameProductAndKeepsOriginalPrice(t *testing.T) {
	svc, _, catalog := newCartFixture(t)
	ctx := context.Background()
	catalog.On("LookupProduct", mock.Anything, int64(10)).Return(snapshot(10, "Laptop", "9.99"), nil).Once()
	catalog.On("LookupProduct", mock.Anything, int64(10)).Return(snapshot(10, "Laptop v2", "12.00"), nil).Once()

	_, err := svc.AddItem(ctx, 1, 10, 2)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, 1, 10, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, "Laptop", cart.Items[0].ProductName)
	assert.True(t, money("9.99").Equal(cart.Items[0].Price))
	assert.True(t, money("49.95").Equal(cart.TotalAmount))
}

func TestAddItemDistinctProducts(t *testing.T) {
	svc, _, catalog := newCartFixture(t)
	ctx := context.Background()
	catalog.On("LookupProduct", mock.Anything, int64(10)).Return(snapshot(10, "Laptop", "9.99"), nil)
	catalog.On("LookupProduct", mock.Anything, int64(11)).Return(snapshot(11, "Mouse", "0.10"), nil)

	_, err := svc.AddItem(ctx, 1, 10, 2)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, 1, 11, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.True(t, money("20.28").Equal(cart.TotalAmount))
	assert.Equal(t, 5, cart.TotalItems)
}

func TestAddItemUnknownProductLeavesNoCart(t *testing.T) {
	svc, store, catalog := newCartFixture(t)
	catalog.On("LookupProduct", mock.Anything, int64(99)).
		Return(nil, models.NewError(models.ErrProductNotFound, "product 99 not found")).Once()

	_, err := svc.AddItem(context.Background(), 1, 99, 1)
	require.ErrorIs(t, err, models.ErrProductNotFound)
	assert.Empty(t, store.state.carts)
}

func TestAddItemUpstreamFailure(t *testing.T) {
	svc, _, catalog := newCartFixture(t)
	catalog.On("LookupProduct", mock.Anything, int64(10)).
		Return(nil, models.NewError(models.ErrUpstream, "catalog unreachable")).Once()

	_, err := svc.AddItem(context.Background(), 1, 10, 1)
	require.ErrorIs(t, err, models.ErrUpstream)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _ := newCartFixture(t)

	_, err := svc.AddItem(context.Background(), 1, 10, 0)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestAddItemBoundsQuantity(t *testing.T) {
	svc, _, catalog := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 10, models.MaxItemQuantity+1)
	require.ErrorIs(t, err, models.ErrValidation)

	catalog.On("LookupProduct", mock.Anything, int64(10)).Return(snapshot(10, "Laptop", "9.99"), nil)
	_, err = svc.AddItem(ctx, 1, 10, models.MaxItemQuantity-1)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, 1, 10, 2)
	require.ErrorIs(t, err, models.ErrValidation)

	cart, err := svc.AddItem(ctx, 1, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, models.MaxItemQuantity, cart.Items[0].Quantity)

	_, err = svc.UpdateItemQuantity(ctx, 1, cart.Items[0].ID, models.MaxItemQuantity+1)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestUpdateItemQuantity(t *testing.T) {
	svc, _, catalog := newCartFixture(t)
	ctx := context.Background()
	catalog.On("LookupProduct", mock.Anything, int64(10)).Return(snapshot(10, "Laptop", "9.99"), nil)

	cart, err := svc.AddItem(ctx, 1, 10, 2)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateItemQuantity(ctx, 1, itemID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.True(t, money("49.95").Equal(cart.TotalAmount))

	cart, err = svc.UpdateItemQuantity(ctx, 1, itemID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalAmount.IsZero())
}

func TestUpdateItemQuantityErrors(t *testing.T) {
	svc, _, catalog := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.UpdateItemQuantity(ctx, 1, 1, 3)
	require.ErrorIs(t, err, models.ErrCartNotFound)

	catalog.On("LookupProduct", mock.Anything, int64(10)).Return(snapshot(10, "Laptop", "9.99"), nil)
	_, err = svc.AddItem(ctx, 1, 10, 1)
	require.NoError(t, err)

	_, err = svc.UpdateItemQuantity(ctx, 1, 12345, 3)
	require.ErrorIs(t, err, models.ErrItemNotFound)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	svc, _, catalog := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.RemoveItem(ctx, 1, 1)
	require.ErrorIs(t, err, models.ErrCartNotFound)

	catalog.On("LookupProduct", mock.Anything, int64(10)).Return(snapshot(10, "Laptop", "9.99"), nil)
	catalog.On("LookupProduct", mock.Anything, int64(11)).Return(snapshot(11, "Mouse", "5.00"), nil)
	_, err = svc.AddItem(ctx, 1, 10, 1)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, 1, 11, 1)
	require.NoError(t, err)
	laptopID := cart.Items[0].ID

	cart, err = svc.RemoveItem(ctx, 1, laptopID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, 11, cart.Items[0].ProductID)

	again, err := svc.RemoveItem(ctx, 1, laptopID)
	require.NoError(t, err)
	assert.Equal(t, cart.Items, again.Items)
}

func TestClearCart(t *testing.T) {
	svc, _, catalog := newCartFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.ClearCart(ctx, 1), models.ErrCartNotFound)

	catalog.On("LookupProduct", mock.Anything, int64(10)).Return(snapshot(10, "Laptop", "9.99"), nil)
	_, err := svc.AddItem(ctx, 1, 10, 4)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, 1))

	cart, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
}

func TestGetCartCreatesOnFirstAccess(t *testing.T) {
	svc, store, _ := newCartFixture(t)
	ctx := context.Background()

	first, err := svc.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 7, first.UserID)
	assert.Empty(t, first.Items)
	assert.True(t, first.TotalAmount.IsZero())

	second, err := svc.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.state.carts, 1)
}
