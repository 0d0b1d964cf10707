package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sethu9398/e-commerce/internal/domain"
)

type placeOrderReq struct {
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
}

// @Summary Place an order from the caller's cart
// @Tags orders
// @Accept json
// @Produce json
// @Param input body placeOrderReq true "Shipping address"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /orders [post]
func (s *Server) placeOrder(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	order, err := s.orders.Place(c, currentUserID(c), req.ShippingAddress)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "order placed successfully",
		"order":   order,
	})
}

// @Summary The caller's orders, newest first
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Failure 401 {object} map[string]string
// @Router /orders/my-orders [get]
func (s *Server) myOrders(c *gin.Context) {
	list, err := s.orders.ListByUser(c, currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Orders containing the calling admin's products
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /orders [get]
func (s *Server) adminOrders(c *gin.Context) {
	list, err := s.orders.ListForAdmin(c, currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// @Summary Overwrite an order's status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body updateStatusReq true "Target status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/status [put]
func (s *Server) updateOrderStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	order, err := s.orders.SetStatus(c, id, domain.OrderStatus(req.Status))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// @Summary Remove one line item from a pending order
// @Tags orders
// @Produce json
// @Param orderId path string true "Order ID"
// @Param productId path string true "Product ID of the line item"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{orderId}/item/{productId} [delete]
func (s *Server) removeOrderItem(c *gin.Context) {
	orderID, err := parseID(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	productID, err := parseID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	order, deleted, err := s.orders.RemoveItem(c, orderID, currentUserID(c), productID)
	if err != nil {
		s.fail(c, err)
		return
	}
	if deleted {
		c.JSON(http.StatusOK, gin.H{"message": "order deleted as no products left"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "product removed from order",
		"order":   order,
	})
}
