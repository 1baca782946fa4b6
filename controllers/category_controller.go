package controllers

import (
	"context"
	"net/http"

	"ecommerce-backend/models"

	"github.com/gin-gonic/gin"
)

type CategoryManager interface {
	Create(ctx context.Context, req models.CategoryRequest) (models.CategoryResponse, error)
	Update(ctx context.Context, id int64, req models.CategoryRequest) (models.CategoryResponse, error)
	GetByID(ctx context.Context, id int64) (models.CategoryResponse, error)
	GetAll(ctx context.Context) ([]models.CategoryResponse, error)
	GetActive(ctx context.Context) ([]models.CategoryResponse, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryController struct {
	categories CategoryManager
}

func NewCategoryController(categories CategoryManager) *CategoryController {
	return &CategoryController{categories: categories}
}

// @Summary Get all categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response{data=[]models.CategoryResponse}
// @Router /categories [get]
func (ctrl *CategoryController) GetAllCategories(c *gin.Context) {
	categories, err := ctrl.categories.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Categories retrieved", categories)
}

// @Summary Get active categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response{data=[]models.CategoryResponse}
// @Router /categories/active [get]
func (ctrl *CategoryController) GetActiveCategories(c *gin.Context) {
	categories, err := ctrl.categories.GetActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Categories retrieved", categories)
}

// @Summary Get category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response{data=models.CategoryResponse}
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [get]
func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	category, err := ctrl.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Category retrieved", category)
}

// @Summary Create category
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CategoryRequest true "Category"
// @Success 201 {object} models.Response{data=models.CategoryResponse}
// @Failure 400 {object} models.ErrorResponse
// @Router /categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	category, err := ctrl.categories.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Category created", category)
}

// @Summary Update category
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body models.CategoryRequest true "Category"
// @Success 200 {object} models.Response{data=models.CategoryResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [put]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	category, err := ctrl.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Category updated", category)
}

// @Summary Delete category
// @Tags Categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := ctrl.categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Category deleted", nil)
}
