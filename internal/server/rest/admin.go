package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/RaivoMihlenovs/capstone-project/internal/validate"
)

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (r *productRequest) data() validate.ProductData {
	return validate.ProductData{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
	}
}

func (s *Server) createProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request payload"})
	}

	in, err := validate.Product(req.data())
	if err != nil {
		return s.writeError(c, err, "Product")
	}

	product, err := s.catalog.Create(c.Request().Context(), in)
	if err != nil {
		return s.writeError(c, err, "Product")
	}
	return c.JSON(http.StatusCreated, product)
}

func (s *Server) updateProduct(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid product ID"})
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request payload"})
	}

	in, err := validate.Product(req.data())
	if err != nil {
		return s.writeError(c, err, "Product")
	}

	product, err := s.catalog.Update(c.Request().Context(), id, in)
	if err != nil {
		return s.writeError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid product ID"})
	}

	if err := s.catalog.Delete(c.Request().Context(), id); err != nil {
		return s.writeError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted"})
}

func (s *Server) listAllOrders(c echo.Context) error {
	orders, err := s.orders.ListAll(c.Request().Context())
	if err != nil {
		return s.writeError(c, err, "Order")
	}
	return c.JSON(http.StatusOK, orders)
}

func (s *Server) updateOrderStatus(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid order ID"})
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request payload"})
	}

	order, err := s.orders.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return s.writeError(c, err, "Order")
	}
	return c.JSON(http.StatusOK, order)
}

func (s *Server) getStats(c echo.Context) error {
	stats, err := s.stats.Get(c.Request().Context())
	if err != nil {
		return s.writeError(c, err, "Stats")
	}
	return c.JSON(http.StatusOK, stats)
}

// imageUploadURL hands the admin client a presigned PUT URL so image bytes
// go straight to object storage, never through this API.
func (s *Server) imageUploadURL(c echo.Context) error {
	key, url, err := s.catalog.GetPresignedPutUrl(c.Request().Context())
	if err != nil {
		return s.writeError(c, err, "Image")
	}
	return c.JSON(http.StatusOK, map[string]string{"key": key, "upload_url": url})
}

func (s *Server) imageDownloadURL(c echo.Context) error {
	key := c.QueryParam("key")
	if key == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Image key is required"})
	}

	url, err := s.catalog.GetPresignedGetUrl(c.Request().Context(), key)
	if err != nil {
		return s.writeError(c, err, "Image")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
