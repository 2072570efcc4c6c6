package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
	"github.com/RaivoMihlenovs/capstone-project/internal/validate"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request payload"})
	}

	in, err := validate.Registration(validate.RegistrationData{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return s.writeError(c, err, "User")
	}

	res, err := s.users.Register(c.Request().Context(), in.Name, in.Email, in.Password)
	if err != nil {
		return s.writeError(c, err, "User")
	}

	return c.JSON(http.StatusCreated, authResponse{Token: res.Token, User: res.User})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request payload"})
	}

	in, err := validate.Login(validate.LoginData{Email: req.Email, Password: req.Password})
	if err != nil {
		return s.writeError(c, err, "User")
	}

	res, err := s.users.Login(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		return s.writeError(c, err, "User")
	}

	return c.JSON(http.StatusOK, authResponse{Token: res.Token, User: res.User})
}

// becomeAdmin promotes the calling account and hands back a token carrying
// the admin role, since the presented one still says customer.
func (s *Server) becomeAdmin(c echo.Context) error {
	claims := claimsFrom(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, errorBody{Error: "Invalid token"})
	}

	res, err := s.users.BecomeAdmin(c.Request().Context(), claims.UserID)
	if err != nil {
		return s.writeError(c, err, "User")
	}

	return c.JSON(http.StatusOK, authResponse{Token: res.Token, User: res.User})
}
