package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) placeOrder(c echo.Context) error {
	claims := claimsFrom(c)

	order, err := s.orders.Place(c.Request().Context(), claims.UserID)
	if err != nil {
		return s.writeError(c, err, "Order")
	}
	return c.JSON(http.StatusCreated, order)
}

func (s *Server) listOrders(c echo.Context) error {
	claims := claimsFrom(c)

	orders, err := s.orders.ListForUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return s.writeError(c, err, "Order")
	}
	return c.JSON(http.StatusOK, orders)
}

func (s *Server) getOrder(c echo.Context) error {
	claims := claimsFrom(c)

	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid order ID"})
	}

	order, err := s.orders.GetForUser(c.Request().Context(), claims.UserID, id)
	if err != nil {
		return s.writeError(c, err, "Order")
	}
	return c.JSON(http.StatusOK, order)
}
