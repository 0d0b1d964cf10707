package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Get the caller's cart with product details
// @Tags cart
// @Produce json
// @Success 200 {object} service.CartView
// @Failure 401 {object} map[string]string
// @Router /cart [get]
func (s *Server) getCart(c *gin.Context) {
	view, err := s.carts.Get(c, currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type cartItemReq struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// @Summary Add a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param input body cartItemReq true "Product and quantity"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/add [post]
func (s *Server) addToCart(c *gin.Context) {
	var req cartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	productID, err := parseID(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	cart, err := s.carts.Add(c, currentUserID(c), productID, req.Quantity)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// @Summary Set the quantity of a cart line
// @Tags cart
// @Accept json
// @Produce json
// @Param input body cartItemReq true "Product and new quantity"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/update [put]
func (s *Server) updateCartItem(c *gin.Context) {
	var req cartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	productID, err := parseID(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	cart, err := s.carts.UpdateQuantity(c, currentUserID(c), productID, req.Quantity)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// @Summary Remove a product from the cart
// @Tags cart
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/remove/{productId} [delete]
func (s *Server) removeFromCart(c *gin.Context) {
	productID, err := parseID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	cart, err := s.carts.Remove(c, currentUserID(c), productID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}
