package controllers

import (
	"context"
	"net/http"

	"ecommerce-backend/models"

	"github.com/gin-gonic/gin"
)

type OrderManager interface {
	CreateOrder(ctx context.Context, userID int64, shippingAddress, notes string) (models.OrderResponse, error)
	GetOrderByID(ctx context.Context, orderID int64) (models.OrderResponse, error)
	GetUserOrders(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.OrderResponse], error)
	GetAllOrders(ctx context.Context, page models.PageRequest) (models.Page[models.OrderResponse], error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (models.OrderResponse, error)
	CancelOrder(ctx context.Context, orderID int64) (models.OrderResponse, error)
}

type OrderController struct {
	orders OrderManager
}

func NewOrderController(orders OrderManager) *OrderController {
	return &OrderController{orders: orders}
}

// @Summary Create order
// @Description Turn the user's cart into a PENDING order and empty the cart
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body models.OrderRequest true "Order request"
// @Success 201 {object} models.Response{data=models.OrderResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := ctrl.orders.CreateOrder(c.Request.Context(), req.UserID, req.ShippingAddress, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Order created", order)
}

// @Summary Get order
// @Tags Orders
// @Produce json
// @Param orderId path int true "Order ID"
// @Success 200 {object} models.Response{data=models.OrderResponse}
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{orderId} [get]
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := ctrl.orders.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order retrieved", order)
}

// @Summary Get user orders
// @Tags Orders
// @Produce json
// @Param userId path int true "User ID"
// @Param page query int false "Page number, 0-based" default(0)
// @Param size query int false "Page size" default(10)
// @Param sortBy query string false "Sort field" default(createdAt)
// @Param sortDir query string false "ASC or DESC" default(DESC)
// @Success 200 {object} models.PaginationResponse{data=[]models.OrderResponse}
// @Router /orders/user/{userId} [get]
func (ctrl *OrderController) GetUserOrders(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := parsePageRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	orders, err := ctrl.orders.GetUserOrders(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Orders retrieved", orders)
}

// @Summary Get all orders
// @Tags Orders
// @Produce json
// @Param page query int false "Page number, 0-based" default(0)
// @Param size query int false "Page size" default(10)
// @Param sortBy query string false "Sort field" default(createdAt)
// @Param sortDir query string false "ASC or DESC" default(DESC)
// @Success 200 {object} models.PaginationResponse{data=[]models.OrderResponse}
// @Router /orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, err := parsePageRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	orders, err := ctrl.orders.GetAllOrders(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Orders retrieved", orders)
}

// @Summary Update order status
// @Tags Orders
// @Produce json
// @Param orderId path int true "Order ID"
// @Param status query string true "PENDING, PROCESSING, SHIPPED, DELIVERED or CANCELLED"
// @Success 200 {object} models.Response{data=models.OrderResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{orderId}/status [patch]
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := ctrl.orders.UpdateOrderStatus(c.Request.Context(), orderID, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order status updated", order)
}

// @Summary Cancel order
// @Description Cancel an order unless it is DELIVERED or already CANCELLED
// @Tags Orders
// @Produce json
// @Param orderId path int true "Order ID"
// @Success 200 {object} models.Response{data=models.OrderResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{orderId} [delete]
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := ctrl.orders.CancelOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order cancelled", order)
}
