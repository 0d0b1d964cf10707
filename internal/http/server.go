package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sethu9398/e-commerce/internal/repository"
	"github.com/Sethu9398/e-commerce/internal/service"
)

type Server struct {
	engine       *gin.Engine
	auth         *service.AuthService
	products     *service.ProductService
	carts        *service.CartService
	orders       *service.OrderService
	log          *slog.Logger
	cookieSecure bool
}

func NewServer(auth *service.AuthService, products *service.ProductService, carts *service.CartService, orders *service.OrderService, log *slog.Logger, cookieSecure bool) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{
		engine:       r,
		auth:         auth,
		products:     products,
		carts:        carts,
		orders:       orders,
		log:          log,
		cookieSecure: cookieSecure,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := s.engine.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
		auth.POST("/logout", s.logout)
		auth.GET("/me", s.requireAuth, s.me)

		products := api.Group("/products")
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)
		products.POST("", s.requireAuth, s.requireAdmin, s.createProduct)
		products.PUT(":id", s.requireAuth, s.requireAdmin, s.updateProduct)
		products.DELETE(":id", s.requireAuth, s.requireAdmin, s.deleteProduct)
		products.GET("admin/my-products", s.requireAuth, s.requireAdmin, s.myProducts)

		cart := api.Group("/cart", s.requireAuth)
		cart.GET("", s.getCart)
		cart.POST("/add", s.addToCart)
		cart.PUT("/update", s.updateCartItem)
		cart.DELETE("/remove/:productId", s.removeFromCart)

		orders := api.Group("/orders", s.requireAuth)
		orders.POST("", s.placeOrder)
		orders.GET("/my-orders", s.myOrders)
		orders.GET("", s.requireAdmin, s.adminOrders)
		orders.PUT(":id/status", s.requireAdmin, s.updateOrderStatus)
		orders.DELETE(":orderId/item/:productId", s.removeOrderItem)
	}
}

// fail maps a service error onto a status code. Unexpected errors are
// logged in full and reported with a generic message.
func (s *Server) fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(s)
}

func mapErrorToStatus(err error) int {
	var oos *service.OutOfStockError
	switch {
	case errors.As(err, &oos):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidShipping),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrOrderNotModifiable),
		errors.Is(err, service.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrItemNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
