package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RaivoMihlenovs/capstone-project/internal/common"
)

// errorBody is the uniform error envelope. Every non-2xx response carries
// exactly one of these.
type errorBody struct {
	Error string `json:"error"`
}

// writeError maps a service error onto the HTTP taxonomy. resource names the
// thing the handler was operating on and is only used for not-found wording.
// Anything unrecognized is an internal failure: it is logged server-side and
// the client gets a generic message, never the error text.
func (s *Server) writeError(c echo.Context, err error, resource string) error {
	var vErr *common.ValidationError
	var stockErr *common.InsufficientStockError
	var statusErr *common.InvalidStatusError

	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, errorBody{Error: vErr.Message})
	case errors.As(err, &stockErr):
		return c.JSON(http.StatusBadRequest, errorBody{
			Error: fmt.Sprintf("Insufficient stock for product %d", stockErr.ProductID),
		})
	case errors.As(err, &statusErr):
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid status"})
	case errors.Is(err, common.ErrEmptyCart):
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Cart is empty"})
	case errors.Is(err, common.ErrAlreadyExists):
		return c.JSON(http.StatusBadRequest, errorBody{Error: resource + " already exists"})
	case errors.Is(err, common.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorBody{Error: resource + " not found"})
	case errors.Is(err, common.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorBody{Error: "Invalid credentials"})
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return c.JSON(http.StatusUnauthorized, errorBody{Error: "Invalid token"})
	case errors.Is(err, common.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorBody{Error: "Admin access required"})
	default:
		s.logger.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Server error"})
	}
}
