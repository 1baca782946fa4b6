package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"ecommerce-backend/models"
	"ecommerce-backend/repositories"
)

// memState is the data behind fakeStore. Transactions work on a deep copy
// that replaces the original only on commit.
type memState struct {
	nextID int64
	carts  map[int64]*models.Cart // by user id
	orders map[int64]*models.Order
}

func newMemState() *memState {
	return &memState{carts: map[int64]*models.Cart{}, orders: map[int64]*models.Order{}}
}

func (st *memState) id() int64 {
	st.nextID++
	return st.nextID
}

func cloneCart(c *models.Cart) *models.Cart {
	cp := *c
	cp.Items = append([]models.CartItem{}, c.Items...)
	return &cp
}

func cloneOrder(o *models.Order) *models.Order {
	cp := *o
	cp.Items = append([]models.OrderItem{}, o.Items...)
	return &cp
}

func (st *memState) clone() *memState {
	cp := &memState{nextID: st.nextID, carts: map[int64]*models.Cart{}, orders: map[int64]*models.Order{}}
	for k, c := range st.carts {
		cp.carts[k] = cloneCart(c)
	}
	for k, o := range st.orders {
		cp.orders[k] = cloneOrder(o)
	}
	return cp
}

func (st *memState) cartByID(cartID int64) *models.Cart {
	for _, c := range st.carts {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

type fakeStore struct {
	mu    *sync.Mutex
	state *memState
	inTx  bool

	// failOrderCreate makes Orders().Create fail after the order row would be written.
	failOrderCreate error
}

func newFakeStore() *fakeStore {
	return &fakeStore{mu: &sync.Mutex{}, state: newMemState()}
}

func (s *fakeStore) do(fn func(st *memState) error) error {
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.state)
}

func (s *fakeStore) Carts() repositories.CartStore   { return fakeCarts{s} }
func (s *fakeStore) Orders() repositories.OrderStore { return fakeOrders{s} }

// WithinTx holds the store lock for the whole transaction, like a row lock would.
func (s *fakeStore) WithinTx(ctx context.Context, fn func(repositories.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &fakeStore{mu: s.mu, state: s.state.clone(), inTx: true, failOrderCreate: s.failOrderCreate}
	if err := fn(tx); err != nil {
		return err
	}
	*s.state = *tx.state
	return nil
}

type fakeCarts struct{ s *fakeStore }

func (f fakeCarts) FindByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	var out *models.Cart
	err := f.s.do(func(st *memState) error {
		c, ok := st.carts[userID]
		if !ok {
			return models.NewError(models.ErrCartNotFound, "cart not found for user %d", userID)
		}
		out = cloneCart(c)
		return nil
	})
	return out, err
}

func (f fakeCarts) FindByUserIDForUpdate(ctx context.Context, userID int64) (*models.Cart, error) {
	return f.FindByUserID(ctx, userID)
}

func (f fakeCarts) GetOrCreate(ctx context.Context, userID int64) (*models.Cart, error) {
	var out *models.Cart
	err := f.s.do(func(st *memState) error {
		c, ok := st.carts[userID]
		if !ok {
			now := time.Now()
			c = &models.Cart{ID: st.id(), UserID: userID, Items: []models.CartItem{}, CreatedAt: now, UpdatedAt: now}
			st.carts[userID] = c
		}
		out = cloneCart(c)
		return nil
	})
	return out, err
}

func (f fakeCarts) InsertItem(ctx context.Context, item *models.CartItem) error {
	return f.s.do(func(st *memState) error {
		c := st.cartByID(item.CartID)
		if c == nil {
			return models.NewError(models.ErrCartNotFound, "cart %d not found", item.CartID)
		}
		if c.FindItemByProduct(item.ProductID) != nil {
			return models.NewError(models.ErrBusinessRule, "duplicate product %d in cart", item.ProductID)
		}
		item.ID = st.id()
		item.CreatedAt = time.Now()
		c.Items = append(c.Items, *item)
		return nil
	})
}

func (f fakeCarts) UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error {
	return f.s.do(func(st *memState) error {
		c := st.cartByID(cartID)
		if c == nil || c.FindItem(itemID) == nil {
			return models.NewError(models.ErrItemNotFound, "item %d not found in cart", itemID)
		}
		c.FindItem(itemID).Quantity = quantity
		return nil
	})
}

func (f fakeCarts) DeleteItem(ctx context.Context, cartID, itemID int64) error {
	return f.s.do(func(st *memState) error {
		c := st.cartByID(cartID)
		if c == nil {
			return nil
		}
		kept := c.Items[:0]
		for _, item := range c.Items {
			if item.ID != itemID {
				kept = append(kept, item)
			}
		}
		c.Items = kept
		return nil
	})
}

func (f fakeCarts) ClearItems(ctx context.Context, cartID int64) error {
	return f.s.do(func(st *memState) error {
		if c := st.cartByID(cartID); c != nil {
			c.Items = []models.CartItem{}
		}
		return nil
	})
}

func (f fakeCarts) Touch(ctx context.Context, cartID int64) error {
	return f.s.do(func(st *memState) error {
		if c := st.cartByID(cartID); c != nil {
			c.UpdatedAt = time.Now()
		}
		return nil
	})
}

type fakeOrders struct{ s *fakeStore }

func (f fakeOrders) Create(ctx context.Context, order *models.Order) error {
	return f.s.do(func(st *memState) error {
		order.ID = st.id()
		order.CreatedAt = time.Now()
		order.UpdatedAt = order.CreatedAt
		for i := range order.Items {
			order.Items[i].ID = st.id()
			order.Items[i].OrderID = order.ID
		}
		st.orders[order.ID] = cloneOrder(order)
		if f.s.failOrderCreate != nil {
			return f.s.failOrderCreate
		}
		return nil
	})
}

func (f fakeOrders) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	var out *models.Order
	err := f.s.do(func(st *memState) error {
		o, ok := st.orders[id]
		if !ok {
			return models.NewError(models.ErrOrderNotFound, "order %d not found", id)
		}
		out = cloneOrder(o)
		return nil
	})
	return out, err
}

func (f fakeOrders) FindByUserID(ctx context.Context, userID int64, page models.PageRequest) ([]models.Order, int64, error) {
	return f.page(page, func(o *models.Order) bool { return o.UserID == userID })
}

func (f fakeOrders) FindAll(ctx context.Context, page models.PageRequest) ([]models.Order, int64, error) {
	return f.page(page, func(*models.Order) bool { return true })
}

// page orders newest first, which is what the default sort yields.
func (f fakeOrders) page(page models.PageRequest, keep func(*models.Order) bool) ([]models.Order, int64, error) {
	var out []models.Order
	var total int64
	err := f.s.do(func(st *memState) error {
		var all []models.Order
		for _, o := range st.orders {
			if keep(o) {
				all = append(all, *cloneOrder(o))
			}
		}
		sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
		total = int64(len(all))

		start := page.Offset()
		if start > len(all) {
			start = len(all)
		}
		end := start + page.Size
		if end > len(all) {
			end = len(all)
		}
		out = all[start:end]
		return nil
	})
	return out, total, err
}

func (f fakeOrders) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	return f.s.do(func(st *memState) error {
		o, ok := st.orders[id]
		if !ok {
			return models.NewError(models.ErrOrderNotFound, "order %d not found", id)
		}
		o.Status = status
		o.UpdatedAt = time.Now()
		return nil
	})
}

func (f fakeOrders) CancelIfCancellable(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := f.s.do(func(st *memState) error {
		o, found := st.orders[id]
		if found && o.Status.Cancellable() {
			o.Status = models.OrderCancelled
			o.UpdatedAt = time.Now()
			ok = true
		}
		return nil
	})
	return ok, err
}

var _ repositories.Store = (*fakeStore)(nil)
