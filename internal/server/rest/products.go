package rest

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *Server) listProducts(c echo.Context) error {
	products, err := s.catalog.List(c.Request().Context())
	if err != nil {
		return s.writeError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid product ID"})
	}

	product, err := s.catalog.Get(c.Request().Context(), id)
	if err != nil {
		return s.writeError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, product)
}

func (s *Server) searchProducts(c echo.Context) error {
	query := c.Param("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Search query is required"})
	}

	products, err := s.catalog.Search(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, products)
}
