package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/v1/order.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Malformed request body")
		return
	}
	input, err := req.ToModel()
	if err != nil {
		failWith(c, err)
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentActor(c).UserID, input)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderResponse{Success: true, Order: dto.NewOrder(*order)})
}

// Get handles GET /api/v1/order/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := orderID(c)
	if err != nil {
		failWith(c, err)
		return
	}
	order, err := h.facade.Order(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderResponse{Success: true, Order: dto.NewOrder(*order)})
}

// Mine handles GET /api/v1/myorders.
func (h *OrderHandler) Mine(c *gin.Context) {
	orders, err := h.facade.MyOrders(c.Request.Context(), CurrentActor(c).UserID)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrdersResponse{Success: true, Orders: dto.NewOrders(orders)})
}

// All handles GET /api/v1/orders.
func (h *OrderHandler) All(c *gin.Context) {
	orders, total, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AllOrdersResponse{Success: true, TotalAmount: total, Orders: dto.NewOrders(orders)})
}

// UpdateStatus handles PUT /api/v1/order/:id.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := orderID(c)
	if err != nil {
		failWith(c, err)
		return
	}
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	if _, err := h.facade.UpdateOrderStatus(c.Request.Context(), id, model.OrderStatus(req.OrderStatus)); err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Success: true})
}

// Delete handles DELETE /api/v1/order/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := orderID(c)
	if err != nil {
		failWith(c, err)
		return
	}
	if err := h.facade.DeleteOrder(c.Request.Context(), id); err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Success: true})
}
