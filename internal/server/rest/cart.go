package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RaivoMihlenovs/capstone-project/internal/validate"
)

type cartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type quantityRequest struct {
	Quantity int64 `json:"quantity"`
}

func (s *Server) getCart(c echo.Context) error {
	claims := claimsFrom(c)

	lines, err := s.cart.Lines(c.Request().Context(), claims.UserID)
	if err != nil {
		return s.writeError(c, err, "Cart")
	}
	return c.JSON(http.StatusOK, lines)
}

func (s *Server) addToCart(c echo.Context) error {
	claims := claimsFrom(c)

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request payload"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	in, err := validate.CartItem(validate.CartItemData{ProductID: req.ProductID, Quantity: req.Quantity})
	if err != nil {
		return s.writeError(c, err, "Cart item")
	}

	item, err := s.cart.Add(c.Request().Context(), claims.UserID, in)
	if err != nil {
		return s.writeError(c, err, "Product")
	}
	return c.JSON(http.StatusCreated, item)
}

func (s *Server) updateCartItem(c echo.Context) error {
	claims := claimsFrom(c)

	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid cart item ID"})
	}

	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request payload"})
	}
	if _, err := validate.PositiveInt("Quantity", req.Quantity); err != nil {
		return s.writeError(c, err, "Cart item")
	}

	item, err := s.cart.UpdateQuantity(c.Request().Context(), claims.UserID, id, req.Quantity)
	if err != nil {
		return s.writeError(c, err, "Cart item")
	}
	return c.JSON(http.StatusOK, item)
}

func (s *Server) removeCartItem(c echo.Context) error {
	claims := claimsFrom(c)

	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid cart item ID"})
	}

	if err := s.cart.Remove(c.Request().Context(), claims.UserID, id); err != nil {
		return s.writeError(c, err, "Cart item")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Item removed from cart"})
}

func (s *Server) clearCart(c echo.Context) error {
	claims := claimsFrom(c)

	if err := s.cart.Clear(c.Request().Context(), claims.UserID); err != nil {
		return s.writeError(c, err, "Cart")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Cart cleared"})
}
