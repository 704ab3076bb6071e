package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

// UserHandler handles the admin operations on accounts. All routes sit behind
// the auth middleware and the status gate.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type adminUserResponse struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Email            string        `json:"email"`
	Status           domain.Status `json:"status"`
	LastLoginTime    *time.Time    `json:"lastLoginTime"`
	RegistrationTime time.Time     `json:"registrationTime"`
	LastActivityTime *time.Time    `json:"lastActivityTime"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// List returns every account, most recently logged in first.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   adminUserResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]adminUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, adminUserResponse{
			ID:               u.ID,
			Name:             u.Name,
			Email:            u.Email,
			Status:           u.Status,
			LastLoginTime:    u.LastLoginTime,
			RegistrationTime: u.RegistrationTime,
			LastActivityTime: u.LastActivityTime,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Block blocks every account in the request body.
//
// @Summary      Block users
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []string  true  "Account ids"
// @Success      200   {object}  messageResponse
// @Router       /api/users/block [post]
func (h *UserHandler) Block(c echo.Context) error {
	ids, err := bindIDs(c)
	if err != nil {
		return err
	}
	if err := h.userService.BlockMany(c.Request().Context(), ids); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Users blocked successfully"})
}

// Unblock reactivates every blocked account in the request body.
//
// @Summary      Unblock users
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []string  true  "Account ids"
// @Success      200   {object}  messageResponse
// @Router       /api/users/unblock [post]
func (h *UserHandler) Unblock(c echo.Context) error {
	ids, err := bindIDs(c)
	if err != nil {
		return err
	}
	if err := h.userService.UnblockMany(c.Request().Context(), ids); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Users unblocked successfully"})
}

// Delete hard-deletes every account in the request body.
//
// @Summary      Delete users
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []string  true  "Account ids"
// @Success      200   {object}  messageResponse
// @Router       /api/users [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	ids, err := bindIDs(c)
	if err != nil {
		return err
	}
	if err := h.userService.DeleteMany(c.Request().Context(), ids); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Users deleted successfully"})
}

// DeleteUnverified hard-deletes every unverified account.
//
// @Summary      Delete all unverified users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Router       /api/users/unverified [delete]
func (h *UserHandler) DeleteUnverified(c echo.Context) error {
	if _, err := h.userService.DeleteAllUnverified(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Unverified users deleted successfully"})
}

func bindIDs(c echo.Context) ([]string, error) {
	var ids []string
	if err := c.Bind(&ids); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return ids, nil
}
