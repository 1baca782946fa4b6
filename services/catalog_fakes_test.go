package services

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"strings"
	"sync"

	"ecommerce-backend/models"

	"github.com/stretchr/testify/mock"
)

// memCache is a JSON-backed cache.Cache that counts invalidations.
type memCache struct {
	mu            sync.Mutex
	data          map[string][]byte
	gets, hits    int
	invalidations int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) Put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *memCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = map[string][]byte{}
	c.invalidations++
	return nil
}

type fakeCategoryStore struct {
	nextID int64
	rows   map[int64]*models.Category
	reads  int
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{rows: map[int64]*models.Category{}}
}

func (s *fakeCategoryStore) Create(ctx context.Context, c *models.Category) error {
	for _, existing := range s.rows {
		if strings.EqualFold(existing.Name, c.Name) {
			return models.NewError(models.ErrDuplicateCategory, "category %q already exists", c.Name)
		}
	}
	s.nextID++
	c.ID = s.nextID
	cp := *c
	s.rows[c.ID] = &cp
	return nil
}

func (s *fakeCategoryStore) Update(ctx context.Context, c *models.Category) error {
	if _, ok := s.rows[c.ID]; !ok {
		return models.NewError(models.ErrCategoryNotFound, "category %d not found", c.ID)
	}
	for _, existing := range s.rows {
		if existing.ID != c.ID && strings.EqualFold(existing.Name, c.Name) {
			return models.NewError(models.ErrDuplicateCategory, "category %q already exists", c.Name)
		}
	}
	cp := *c
	s.rows[c.ID] = &cp
	return nil
}

func (s *fakeCategoryStore) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	s.reads++
	c, ok := s.rows[id]
	if !ok {
		return nil, models.NewError(models.ErrCategoryNotFound, "category %d not found", id)
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCategoryStore) FindAll(ctx context.Context) ([]models.Category, error) {
	return s.list(func(*models.Category) bool { return true }), nil
}

func (s *fakeCategoryStore) FindActive(ctx context.Context) ([]models.Category, error) {
	return s.list(func(c *models.Category) bool { return c.Active }), nil
}

func (s *fakeCategoryStore) list(keep func(*models.Category) bool) []models.Category {
	s.reads++
	out := []models.Category{}
	for _, c := range s.rows {
		if keep(c) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *fakeCategoryStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.rows[id]; !ok {
		return models.NewError(models.ErrCategoryNotFound, "category %d not found", id)
	}
	delete(s.rows, id)
	return nil
}

type fakeProductStore struct {
	nextID int64
	rows   map[int64]*models.Product
	reads  int
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{rows: map[int64]*models.Product{}}
}

func (s *fakeProductStore) Create(ctx context.Context, p *models.Product) error {
	s.nextID++
	p.ID = s.nextID
	cp := *p
	s.rows[p.ID] = &cp
	return nil
}

func (s *fakeProductStore) Update(ctx context.Context, p *models.Product) error {
	if _, ok := s.rows[p.ID]; !ok {
		return models.NewError(models.ErrProductNotFound, "product %d not found", p.ID)
	}
	cp := *p
	s.rows[p.ID] = &cp
	return nil
}

func (s *fakeProductStore) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	s.reads++
	p, ok := s.rows[id]
	if !ok {
		return nil, models.NewError(models.ErrProductNotFound, "product %d not found", id)
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProductStore) page(keep func(*models.Product) bool, page models.PageRequest) ([]models.Product, int64, error) {
	all := []models.Product{}
	for _, p := range s.rows {
		if p.Active && keep(p) {
			all = append(all, *p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	start := min(page.Offset(), len(all))
	end := min(start+page.Size, len(all))
	return all[start:end], total, nil
}

func (s *fakeProductStore) FindActive(ctx context.Context, page models.PageRequest) ([]models.Product, int64, error) {
	return s.page(func(*models.Product) bool { return true }, page)
}

func (s *fakeProductStore) Search(ctx context.Context, f models.ProductFilter, page models.PageRequest) ([]models.Product, int64, error) {
	return s.page(func(p *models.Product) bool {
		if f.Name != nil && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(*f.Name)) {
			return false
		}
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			return false
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			return false
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			return false
		}
		return true
	}, page)
}

func (s *fakeProductStore) FindByCategory(ctx context.Context, categoryID int64, page models.PageRequest) ([]models.Product, int64, error) {
	return s.page(func(p *models.Product) bool { return p.CategoryID == categoryID }, page)
}

func (s *fakeProductStore) AdjustStock(ctx context.Context, id int64, delta int) (*models.Product, error) {
	p, ok := s.rows[id]
	if !ok {
		return nil, models.NewError(models.ErrProductNotFound, "product %d not found", id)
	}
	if p.Stock+delta < 0 {
		return nil, models.NewError(models.ErrInsufficientStock, "insufficient stock for product %d", id)
	}
	p.Stock += delta
	cp := *p
	return &cp, nil
}

func (s *fakeProductStore) UpdateImage(ctx context.Context, id int64, url, publicID string) error {
	p, ok := s.rows[id]
	if !ok {
		return models.NewError(models.ErrProductNotFound, "product %d not found", id)
	}
	p.ImageURL, p.ImagePublicID = url, publicID
	return nil
}

func (s *fakeProductStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.rows[id]; !ok {
		return models.NewError(models.ErrProductNotFound, "product %d not found", id)
	}
	delete(s.rows, id)
	return nil
}

type mockImages struct {
	mock.Mock
}

func (m *mockImages) UploadImage(ctx context.Context, file io.Reader, name string) (string, string, error) {
	args := m.Called(ctx, file, name)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockImages) DeleteImage(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}
