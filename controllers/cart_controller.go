package controllers

import (
	"context"
	"net/http"

	"ecommerce-backend/models"

	"github.com/gin-gonic/gin"
)

type CartManager interface {
	AddItem(ctx context.Context, userID, productID int64, quantity int) (models.CartResponse, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) (models.CartResponse, error)
	RemoveItem(ctx context.Context, userID, itemID int64) (models.CartResponse, error)
	ClearCart(ctx context.Context, userID int64) error
	GetCart(ctx context.Context, userID int64) (models.CartResponse, error)
}

type CartController struct {
	carts CartManager
}

func NewCartController(carts CartManager) *CartController {
	return &CartController{carts: carts}
}

// @Summary Add item to cart
// @Description Add a product to the user's cart, merging with an existing line for the same product
// @Tags Cart
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Param request body models.CartItemRequest true "Cart item"
// @Success 201 {object} models.Response{data=models.CartResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /cart/{userId}/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	var req models.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cart, err := ctrl.carts.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Item added to cart", cart)
}

// @Summary Get cart
// @Description Get the user's cart, creating an empty one if none exists
// @Tags Cart
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.Response{data=models.CartResponse}
// @Router /cart/{userId} [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	cart, err := ctrl.carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart retrieved", cart)
}

// @Summary Update cart item quantity
// @Description Set the quantity of a cart line. Zero or less removes the line
// @Tags Cart
// @Produce json
// @Param userId path int true "User ID"
// @Param itemId path int true "Cart item ID"
// @Param quantity query int true "New quantity"
// @Success 200 {object} models.Response{data=models.CartResponse}
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{userId}/items/{itemId} [put]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("quantity") == "" {
		respondError(c, models.ValidationError("quantity is required"))
		return
	}
	quantity, err := queryInt(c, "quantity", 0)
	if err != nil {
		respondError(c, err)
		return
	}

	cart, err := ctrl.carts.UpdateItemQuantity(c.Request.Context(), userID, itemID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart item updated", cart)
}

// @Summary Remove cart item
// @Tags Cart
// @Produce json
// @Param userId path int true "User ID"
// @Param itemId path int true "Cart item ID"
// @Success 200 {object} models.Response{data=models.CartResponse}
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{userId}/items/{itemId} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		respondError(c, err)
		return
	}

	cart, err := ctrl.carts.RemoveItem(c.Request.Context(), userID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Item removed from cart", cart)
}

// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{userId} [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := ctrl.carts.ClearCart(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart cleared", nil)
}
