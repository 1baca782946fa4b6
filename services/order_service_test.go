package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"ecommerce-backend/models"
	"ecommerce-backend/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	carts   *CartService
	orders  *OrderService
	store   *fakeStore
	catalog *mockCatalog
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	store := newFakeStore()
	catalog := &mockCatalog{}
	catalog.On("LookupProduct", mock.Anything, int64(10)).Return(snapshot(10, "Laptop", "9.99"), nil).Maybe()
	catalog.On("LookupProduct", mock.Anything, int64(11)).Return(snapshot(11, "Mouse", "0.10"), nil).Maybe()
	return &orderFixture{
		carts:   NewCartService(store, catalog),
		orders:  NewOrderService(store),
		store:   store,
		catalog: catalog,
	}
}

func (f *orderFixture) placeOrder(t *testing.T, userID int64) models.OrderResponse {
	t.Helper()
	ctx := context.Background()
	_, err := f.carts.AddItem(ctx, userID, 10, 2)
	require.NoError(t, err)
	order, err := f.orders.CreateOrder(ctx, userID, "1 Main St", "")
	require.NoError(t, err)
	return order
}

func TestCreateOrderSnapshotsAndClearsCart(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.carts.AddItem(ctx, 1, 10, 2)
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, 1, 11, 3)
	require.NoError(t, err)

	order, err := f.orders.CreateOrder(ctx, 1, "1 Main St", "leave at door")
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, "1 Main St", order.ShippingAddress)
	assert.Equal(t, "leave at door", order.Notes)
	require.Len(t, order.OrderItems, 2)
	assert.True(t, money("19.98").Equal(order.OrderItems[0].Subtotal))
	assert.True(t, money("0.30").Equal(order.OrderItems[1].Subtotal))
	assert.True(t, money("20.28").Equal(order.TotalAmount))

	cart, err := f.carts.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	stored, err := f.orders.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderItems, stored.OrderItems)
}

func TestCreateOrderErrors(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.orders.CreateOrder(ctx, 1, "1 Main St", "")
	require.ErrorIs(t, err, models.ErrCartNotFound)

	_, err = f.carts.GetCart(ctx, 1)
	require.NoError(t, err)
	_, err = f.orders.CreateOrder(ctx, 1, "1 Main St", "")
	require.ErrorIs(t, err, models.ErrEmptyCart)

	_, err = f.orders.CreateOrder(ctx, 1, "   ", "")
	require.ErrorIs(t, err, models.ErrValidation)

	assert.Empty(t, f.store.state.orders)
}

func TestCreateOrderRollsBackWhenPersistFails(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.carts.AddItem(ctx, 1, 10, 2)
	require.NoError(t, err)

	boom := errors.New("disk full")
	f.store.failOrderCreate = boom

	_, err = f.orders.CreateOrder(ctx, 1, "1 Main St", "")
	require.ErrorIs(t, err, boom)

	assert.Empty(t, f.store.state.orders)
	cart, err := f.carts.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestGetOrderByIDNotFound(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.orders.GetOrderByID(context.Background(), 42)
	require.ErrorIs(t, err, models.ErrOrderNotFound)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestGetUserOrdersPaginates(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		ids = append(ids, f.placeOrder(t, 1).ID)
	}
	f.placeOrder(t, 2)

	page, err := f.orders.GetUserOrders(ctx, 1, models.PageRequest{Page: 0, Size: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages())
	require.Len(t, page.Items, 2)
	assert.Equal(t, ids[2], page.Items[0].ID)

	page, err = f.orders.GetUserOrders(ctx, 1, models.PageRequest{Page: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, ids[0], page.Items[0].ID)

	all, err := f.orders.GetAllOrders(ctx, models.PageRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, all.TotalItems)
	assert.Equal(t, models.DefaultPageSize, all.Size)

	none, err := f.orders.GetUserOrders(ctx, 99, models.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
	assert.Zero(t, none.TotalPages())
}

func TestUpdateOrderStatusOverwrites(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.placeOrder(t, 1)

	updated, err := f.orders.UpdateOrderStatus(ctx, order.ID, "delivered")
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, updated.Status)

	updated, err = f.orders.UpdateOrderStatus(ctx, order.ID, "PENDING")
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, updated.Status)

	_, err = f.orders.UpdateOrderStatus(ctx, order.ID, "LOST")
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = f.orders.UpdateOrderStatus(ctx, 999, "SHIPPED")
	require.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestCancelOrder(t *testing.T) {
	tests := []struct {
		from    models.OrderStatus
		wantErr error
	}{
		{models.OrderPending, nil},
		{models.OrderProcessing, nil},
		{models.OrderShipped, nil},
		{models.OrderDelivered, models.ErrInvalidTransition},
		{models.OrderCancelled, models.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			f := newOrderFixture(t)
			ctx := context.Background()
			order := f.placeOrder(t, 1)
			_, err := f.orders.UpdateOrderStatus(ctx, order.ID, string(tt.from))
			require.NoError(t, err)

			cancelled, err := f.orders.CancelOrder(ctx, order.ID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				stored, err := f.orders.GetOrderByID(ctx, order.ID)
				require.NoError(t, err)
				assert.Equal(t, tt.from, stored.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.OrderCancelled, cancelled.Status)
		})
	}
}

func TestCancelOrderNotFound(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.orders.CancelOrder(context.Background(), 5)
	require.ErrorIs(t, err, models.ErrOrderNotFound)
}

// interleavedStore moves the order to next right after the first read of it,
// standing in for an updateOrderStatus that lands mid-cancel.
type interleavedStore struct {
	*fakeStore
	next models.OrderStatus
	once *sync.Once
}

func (s interleavedStore) Orders() repositories.OrderStore {
	return interleavedOrders{OrderStore: s.fakeStore.Orders(), next: s.next, once: s.once}
}

type interleavedOrders struct {
	repositories.OrderStore
	next models.OrderStatus
	once *sync.Once
}

func (o interleavedOrders) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	order, err := o.OrderStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var updateErr error
	o.once.Do(func() { updateErr = o.OrderStore.UpdateStatus(ctx, id, o.next) })
	return order, updateErr
}

func TestCancelOrderAfterConcurrentStatusChange(t *testing.T) {
	tests := []struct {
		next    models.OrderStatus
		wantErr error
	}{
		{models.OrderProcessing, nil},
		{models.OrderShipped, nil},
		{models.OrderDelivered, models.ErrInvalidTransition},
		{models.OrderCancelled, models.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(string(tt.next), func(t *testing.T) {
			f := newOrderFixture(t)
			ctx := context.Background()
			order := f.placeOrder(t, 3)

			orders := NewOrderService(interleavedStore{fakeStore: f.store, next: tt.next, once: &sync.Once{}})
			cancelled, err := orders.CancelOrder(ctx, order.ID)

			stored, getErr := f.orders.GetOrderByID(ctx, order.ID)
			require.NoError(t, getErr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.next, stored.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.OrderCancelled, cancelled.Status)
			assert.Equal(t, models.OrderCancelled, stored.Status)
		})
	}
}

func TestConcurrentCancelHasOneWinner(t *testing.T) {
	f := newOrderFixture(t)
	order := f.placeOrder(t, 1)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		rejected  atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.orders.CancelOrder(context.Background(), order.ID)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, models.ErrInvalidTransition):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, succeeded.Load())
	assert.EqualValues(t, 19, rejected.Load())
}

func TestConcurrentAddItemSerializes(t *testing.T) {
	f := newOrderFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.carts.AddItem(context.Background(), 1, 10, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cart, err := f.carts.GetCart(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 25, cart.Items[0].Quantity)
}
