package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"ecommerce-backend/cache"
	"ecommerce-backend/models"
	"ecommerce-backend/repositories"
	"ecommerce-backend/utils"

	"github.com/rs/zerolog"
)

type ProductService struct {
	products   repositories.ProductStore
	categories repositories.CategoryStore
	cache      cache.Cache
	images     ImageStorage
}

// NewProductService accepts a nil images when no image storage is configured.
func NewProductService(products repositories.ProductStore, categories repositories.CategoryStore, c cache.Cache, images ImageStorage) *ProductService {
	return &ProductService{products: products, categories: categories, cache: c, images: images}
}

func (s *ProductService) Create(ctx context.Context, req models.ProductRequest) (models.ProductResponse, error) {
	product := &models.Product{Active: true}
	if err := s.apply(ctx, product, req); err != nil {
		return models.ProductResponse{}, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return models.ProductResponse{}, err
	}
	s.invalidate(ctx)

	zerolog.Ctx(ctx).Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("product created")
	return models.ToProductResponse(*product), nil
}

func (s *ProductService) Update(ctx context.Context, id int64, req models.ProductRequest) (models.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return models.ProductResponse{}, err
	}
	if err := s.apply(ctx, product, req); err != nil {
		return models.ProductResponse{}, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return models.ProductResponse{}, err
	}
	s.invalidate(ctx)
	return models.ToProductResponse(*product), nil
}

// apply copies req onto p after checking price and category.
func (s *ProductService) apply(ctx context.Context, p *models.Product, req models.ProductRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return models.ValidationError("product name is required")
	}
	if !req.Price.IsPositive() {
		return models.ValidationError("price must be greater than 0")
	}
	if req.Stock < 0 {
		return models.ValidationError("stock cannot be negative")
	}

	category, err := s.categories.FindByID(ctx, req.CategoryID)
	if err != nil {
		return err
	}

	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.Price = req.Price.Round(2)
	p.Stock = req.Stock
	p.CategoryID = category.ID
	p.CategoryName = category.Name
	if req.ImageURL != "" {
		p.ImageURL = req.ImageURL
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	return nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (models.ProductResponse, error) {
	key := fmt.Sprintf("id:%d", id)
	var cached models.ProductResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("product cache read failed")
	} else if hit {
		return cached, nil
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return models.ProductResponse{}, err
	}
	resp := models.ToProductResponse(*product)
	if err := s.cache.Put(ctx, key, resp); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("product cache write failed")
	}
	return resp, nil
}

func (s *ProductService) GetAll(ctx context.Context, page models.PageRequest) (models.Page[models.ProductResponse], error) {
	page = page.Normalize()
	products, total, err := s.products.FindActive(ctx, page)
	return toProductPage(products, total, page), err
}

func (s *ProductService) Search(ctx context.Context, filter models.ProductFilter, page models.PageRequest) (models.Page[models.ProductResponse], error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return models.Page[models.ProductResponse]{}, models.ValidationError("minPrice cannot exceed maxPrice")
	}
	page = page.Normalize()
	products, total, err := s.products.Search(ctx, filter, page)
	return toProductPage(products, total, page), err
}

func (s *ProductService) GetByCategory(ctx context.Context, categoryID int64, page models.PageRequest) (models.Page[models.ProductResponse], error) {
	page = page.Normalize()
	products, total, err := s.products.FindByCategory(ctx, categoryID, page)
	return toProductPage(products, total, page), err
}

func toProductPage(products []models.Product, total int64, page models.PageRequest) models.Page[models.ProductResponse] {
	p := models.Page[models.Product]{Items: products, Page: page.Page, Size: page.Size, TotalItems: total}
	return models.MapPage(p, models.ToProductResponse)
}

// UpdateStock adds delta to the stock. The stock never goes below zero.
func (s *ProductService) UpdateStock(ctx context.Context, id int64, delta int) (models.ProductResponse, error) {
	product, err := s.products.AdjustStock(ctx, id, delta)
	if err != nil {
		return models.ProductResponse{}, err
	}
	s.invalidate(ctx)

	zerolog.Ctx(ctx).Info().Int64("product_id", id).Int("delta", delta).Int("stock", product.Stock).Msg("stock updated")
	return models.ToProductResponse(*product), nil
}

// UploadImage replaces the product image. The previous image is removed
// from storage on a best-effort basis.
func (s *ProductService) UploadImage(ctx context.Context, id int64, fileHeader *multipart.FileHeader) (models.ProductResponse, error) {
	if s.images == nil {
		return models.ProductResponse{}, models.NewError(models.ErrUpstream, "image storage is not configured")
	}
	if err := utils.ValidateImage(fileHeader); err != nil {
		return models.ProductResponse{}, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return models.ProductResponse{}, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.ProductResponse{}, models.WrapError(models.ErrValidation, err, "cannot read uploaded file")
	}
	defer file.Close()

	url, publicID, err := s.images.UploadImage(ctx, file, utils.ImageBaseName(fileHeader.Filename))
	if err != nil {
		return models.ProductResponse{}, models.WrapError(models.ErrUpstream, err, "image upload failed")
	}

	if err := s.products.UpdateImage(ctx, id, url, publicID); err != nil {
		_ = s.images.DeleteImage(ctx, publicID)
		return models.ProductResponse{}, err
	}

	if product.ImagePublicID != "" {
		if err := s.images.DeleteImage(ctx, product.ImagePublicID); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("public_id", product.ImagePublicID).Msg("old product image not deleted")
		}
	}
	s.invalidate(ctx)

	product.ImageURL = url
	product.ImagePublicID = publicID
	return models.ToProductResponse(*product), nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	if s.images != nil && product.ImagePublicID != "" {
		if err := s.images.DeleteImage(ctx, product.ImagePublicID); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("public_id", product.ImagePublicID).Msg("product image not deleted")
		}
	}

	zerolog.Ctx(ctx).Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("product cache invalidation failed")
	}
}
