package controllers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	"ecommerce-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductManager interface {
	Create(ctx context.Context, req models.ProductRequest) (models.ProductResponse, error)
	Update(ctx context.Context, id int64, req models.ProductRequest) (models.ProductResponse, error)
	GetByID(ctx context.Context, id int64) (models.ProductResponse, error)
	GetAll(ctx context.Context, page models.PageRequest) (models.Page[models.ProductResponse], error)
	Search(ctx context.Context, filter models.ProductFilter, page models.PageRequest) (models.Page[models.ProductResponse], error)
	GetByCategory(ctx context.Context, categoryID int64, page models.PageRequest) (models.Page[models.ProductResponse], error)
	UpdateStock(ctx context.Context, id int64, delta int) (models.ProductResponse, error)
	UploadImage(ctx context.Context, id int64, file *multipart.FileHeader) (models.ProductResponse, error)
	Delete(ctx context.Context, id int64) error
}

type ProductController struct {
	products ProductManager
}

func NewProductController(products ProductManager) *ProductController {
	return &ProductController{products: products}
}

// @Summary Get all products
// @Description Get paginated list of active products
// @Tags Products
// @Produce json
// @Param page query int false "Page number, 0-based" default(0)
// @Param size query int false "Items per page" default(10)
// @Param sortBy query string false "Sort field" default(id)
// @Param sortDir query string false "ASC or DESC" default(ASC)
// @Success 200 {object} models.PaginationResponse{data=[]models.ProductResponse}
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	page, err := parsePageRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	products, err := ctrl.products.GetAll(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Products retrieved", products)
}

// @Summary Search products
// @Tags Products
// @Produce json
// @Param name query string false "Name contains (case-insensitive)"
// @Param categoryId query int false "Category ID"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param page query int false "Page number, 0-based" default(0)
// @Param size query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse{data=[]models.ProductResponse}
// @Failure 400 {object} models.ErrorResponse
// @Router /products/search [get]
func (ctrl *ProductController) SearchProducts(c *gin.Context) {
	page, err := parsePageRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}
	filter, err := parseProductFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	products, err := ctrl.products.Search(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Products retrieved", products)
}

func parseProductFilter(c *gin.Context) (models.ProductFilter, error) {
	var filter models.ProductFilter
	if name, ok := c.GetQuery("name"); ok && name != "" {
		filter.Name = &name
	}
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, models.ValidationError("categoryId must be an integer")
		}
		filter.CategoryID = &id
	}
	for param, dest := range map[string]**decimal.Decimal{"minPrice": &filter.MinPrice, "maxPrice": &filter.MaxPrice} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, models.ValidationError("%s must be a number", param)
		}
		*dest = &v
	}
	return filter, nil
}

// @Summary Get products by category
// @Tags Products
// @Produce json
// @Param categoryId path int true "Category ID"
// @Param page query int false "Page number, 0-based" default(0)
// @Param size query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse{data=[]models.ProductResponse}
// @Router /products/category/{categoryId} [get]
func (ctrl *ProductController) GetProductsByCategory(c *gin.Context) {
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := parsePageRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	products, err := ctrl.products.GetByCategory(c.Request.Context(), categoryID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Products retrieved", products)
}

// @Summary Get product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response{data=models.ProductResponse}
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	product, err := ctrl.products.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product retrieved", product)
}

// @Summary Create product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ProductRequest true "Product"
// @Success 201 {object} models.Response{data=models.ProductResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := ctrl.products.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Product created", product)
}

// @Summary Update product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.ProductRequest true "Product"
// @Success 200 {object} models.Response{data=models.ProductResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := ctrl.products.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product updated", product)
}

// @Summary Update product stock
// @Description Add quantity (may be negative) to the stock
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Param quantity query int true "Stock change"
// @Success 200 {object} models.Response{data=models.ProductResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/stock [patch]
func (ctrl *ProductController) UpdateStock(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("quantity") == "" {
		respondError(c, models.ValidationError("quantity is required"))
		return
	}
	delta, err := queryInt(c, "quantity", 0)
	if err != nil {
		respondError(c, err)
		return
	}

	product, err := ctrl.products.UpdateStock(c.Request.Context(), id, delta)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Stock updated", product)
}

// @Summary Upload product image
// @Tags Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param image formData file true "Image file (jpg, jpeg, png, gif, webp, max 5MB)"
// @Success 200 {object} models.Response{data=models.ProductResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products/{id}/image [post]
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, models.ValidationError("image file is required"))
		return
	}

	product, err := ctrl.products.UploadImage(c.Request.Context(), id, file)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product image uploaded", product)
}

// @Summary Delete product
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := ctrl.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product deleted", nil)
}
