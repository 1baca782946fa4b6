package services

import (
	"context"
	"fmt"
	"strings"

	"ecommerce-backend/cache"
	"ecommerce-backend/models"
	"ecommerce-backend/repositories"

	"github.com/rs/zerolog"
)

const (
	categoriesAllKey    = "all"
	categoriesActiveKey = "active"
)

type CategoryService struct {
	categories repositories.CategoryStore
	cache      cache.Cache
	// dependents embed category data and are invalidated with it.
	dependents []cache.Cache
}

func NewCategoryService(categories repositories.CategoryStore, c cache.Cache, dependents ...cache.Cache) *CategoryService {
	return &CategoryService{categories: categories, cache: c, dependents: dependents}
}

func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (models.CategoryResponse, error) {
	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Active:      true,
	}
	if req.Active != nil {
		category.Active = *req.Active
	}
	if category.Name == "" {
		return models.CategoryResponse{}, models.ValidationError("category name is required")
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return models.CategoryResponse{}, err
	}
	s.invalidate(ctx)

	zerolog.Ctx(ctx).Info().Int64("category_id", category.ID).Str("name", category.Name).Msg("category created")
	return models.ToCategoryResponse(*category), nil
}

func (s *CategoryService) GetByID(ctx context.Context, id int64) (models.CategoryResponse, error) {
	key := fmt.Sprintf("id:%d", id)
	var cached models.CategoryResponse
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return models.CategoryResponse{}, err
	}
	resp := models.ToCategoryResponse(*category)
	s.cachePut(ctx, key, resp)
	return resp, nil
}

func (s *CategoryService) GetAll(ctx context.Context) ([]models.CategoryResponse, error) {
	return s.list(ctx, categoriesAllKey, s.categories.FindAll)
}

func (s *CategoryService) GetActive(ctx context.Context) ([]models.CategoryResponse, error) {
	return s.list(ctx, categoriesActiveKey, s.categories.FindActive)
}

func (s *CategoryService) list(ctx context.Context, key string, load func(context.Context) ([]models.Category, error)) ([]models.CategoryResponse, error) {
	var cached []models.CategoryResponse
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	categories, err := load(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]models.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, models.ToCategoryResponse(c))
	}
	s.cachePut(ctx, key, resp)
	return resp, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, req models.CategoryRequest) (models.CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return models.CategoryResponse{}, err
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Description = req.Description
	if req.Active != nil {
		category.Active = *req.Active
	}
	if category.Name == "" {
		return models.CategoryResponse{}, models.ValidationError("category name is required")
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return models.CategoryResponse{}, err
	}
	s.invalidate(ctx)
	return models.ToCategoryResponse(*category), nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	zerolog.Ctx(ctx).Info().Int64("category_id", id).Msg("category deleted")
	return nil
}

// Cache failures degrade to a database read; they never fail the request.
func (s *CategoryService) cacheGet(ctx context.Context, key string, dest any) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("category cache read failed")
		return false
	}
	return hit
}

func (s *CategoryService) cachePut(ctx context.Context, key string, value any) {
	if err := s.cache.Put(ctx, key, value); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("category cache write failed")
	}
}

func (s *CategoryService) invalidate(ctx context.Context) {
	for _, c := range append([]cache.Cache{s.cache}, s.dependents...) {
		if err := c.InvalidateAll(ctx); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("category cache invalidation failed")
		}
	}
}
