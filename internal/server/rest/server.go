// Package rest exposes the storefront over HTTP. It is a thin layer: handlers
// bind and validate payloads, delegate to services and translate errors; no
// business rules live here.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/RaivoMihlenovs/capstone-project/internal/logging"
	sc "github.com/RaivoMihlenovs/capstone-project/internal/server/config"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/services"
	"github.com/RaivoMihlenovs/capstone-project/internal/validate"
)

// UserService is the slice of the user service the handlers need.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	BecomeAdmin(ctx context.Context, userID int64) (*services.AuthResult, error)
}

type CatalogService interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	Create(ctx context.Context, in validate.ProductData) (*models.Product, error)
	Update(ctx context.Context, id int64, in validate.ProductData) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	GetPresignedPutUrl(ctx context.Context) (string, string, error)
	GetPresignedGetUrl(ctx context.Context, key string) (string, error)
}

type CartService interface {
	Lines(ctx context.Context, userID int64) ([]models.CartLine, error)
	Add(ctx context.Context, userID int64, in validate.CartItemData) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID, quantity int64) (*models.CartItem, error)
	Remove(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

type OrderService interface {
	Place(ctx context.Context, userID int64) (*models.Order, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Order, error)
	GetForUser(ctx context.Context, userID, orderID int64) (*models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) (*models.Order, error)
}

type StatsService interface {
	Get(ctx context.Context) (*models.Stats, error)
}

// Server is the HTTP front of the storefront.
type Server struct {
	echo   *echo.Echo
	config *sc.Config
	logger logging.Logger

	users   UserService
	catalog CatalogService
	cart    CartService
	orders  OrderService
	stats   StatsService
}

func NewServer(config *sc.Config, logger logging.Logger,
	users UserService, catalog CatalogService, cart CartService,
	orders OrderService, stats StatsService) *Server {

	s := &Server{
		config:  config,
		logger:  logger,
		users:   users,
		catalog: catalog,
		cart:    cart,
		orders:  orders,
		stats:   stats,
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     60,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusTooManyRequests, errorBody{Error: "Rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, errorBody{Error: "Rate limit exceeded"})
		},
	}))

	s.echo = e
	s.routes()

	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")
	authed := s.jwtMiddleware()

	api.GET("/health", s.health)

	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)
	api.POST("/auth/become-admin", s.becomeAdmin, authed)

	api.GET("/products", s.listProducts)
	api.GET("/products/search/:q", s.searchProducts)
	api.GET("/products/:id", s.getProduct)

	cart := api.Group("/cart", authed)
	cart.GET("", s.getCart)
	cart.POST("", s.addToCart)
	cart.PUT("/:id", s.updateCartItem)
	cart.DELETE("/:id", s.removeCartItem)
	cart.DELETE("", s.clearCart)

	orders := api.Group("/orders", authed)
	orders.POST("", s.placeOrder)
	orders.GET("", s.listOrders)
	orders.GET("/:id", s.getOrder)

	admin := api.Group("/admin", authed, s.requireAdmin)
	admin.GET("/stats", s.getStats)
	admin.GET("/orders", s.listAllOrders)
	admin.PUT("/orders/:id/status", s.updateOrderStatus)
	admin.POST("/products", s.createProduct)
	admin.PUT("/products/:id", s.updateProduct)
	admin.DELETE("/products/:id", s.deleteProduct)
	admin.POST("/products/image-upload", s.imageUploadURL)
	admin.GET("/products/image-url", s.imageDownloadURL)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "OK",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.echo.Start(s.config.EndpointAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.echo.Shutdown(shutdownCtx)
}
