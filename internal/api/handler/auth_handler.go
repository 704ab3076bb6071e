package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-management-api/internal/api/metrics"
	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

// AuthHandler handles registration, login, and email verification. These are
// the only routes reachable without a bearer token.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Status        domain.Status `json:"status"`
	LastLoginTime *time.Time    `json:"lastLoginTime"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Register creates a new unverified account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailExists):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "email already exists"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid input"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "registration failed"})
	}

	metrics.RegistrationsTotal.Inc()

	return c.JSON(http.StatusOK, registerResponse{
		Message: "Registration successful. Please check your email for verification instructions.",
		UserID:  user.ID,
	})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": domain.ErrInvalidCredentials.Error()})
	}

	signed, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		// Every failure shape collapses to the same message so account
		// existence never leaks.
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": domain.ErrInvalidCredentials.Error()})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Token: signed,
		User: userResponse{
			ID:            user.ID,
			Name:          user.Name,
			Email:         user.Email,
			Status:        user.Status,
			LastLoginTime: user.LastLoginTime,
		},
	})
}

// VerifyEmail consumes a verification token from the emailed link.
//
// @Summary      Verify email address
// @Tags         auth
// @Produce      plain
// @Param        token  query     string  true  "Verification token"
// @Success      200    {string}  string
// @Failure      400    {string}  string
// @Router       /api/auth/verify-email [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	verificationToken := c.QueryParam("token")

	if err := h.authService.VerifyEmail(c.Request().Context(), verificationToken); err != nil {
		metrics.EmailVerificationsTotal.WithLabelValues("invalid_token").Inc()
		return c.String(http.StatusBadRequest, "Invalid verification token.")
	}

	metrics.EmailVerificationsTotal.WithLabelValues("success").Inc()
	return c.String(http.StatusOK, "Email verified successfully. You can now login.")
}
