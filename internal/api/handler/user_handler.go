package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gvn/lending-platform/internal/api/response"
	"github.com/gvn/lending-platform/internal/core/ports"
)

// UserHandler handles HTTP requests for user CRUD.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Username string   `json:"username" validate:"required,min=3"`
	Email    string   `json:"email"    validate:"omitempty,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Active   *bool    `json:"isActive"`
	Roles    []string `json:"roles"`
}

type updateUserRequest struct {
	Username *string  `json:"username" validate:"omitempty,min=3"`
	Email    *string  `json:"email"    validate:"omitempty,email"`
	Password *string  `json:"password" validate:"omitempty,min=6"`
	Active   *bool    `json:"isActive"`
	Roles    []string `json:"roles"`
}

// List returns all users with their roles.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, users, "Users retrieved successfully")
}

// Create creates a new user.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	roles := req.Roles
	if roles == nil {
		roles = []string{}
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Active:   active,
		Roles:    roles,
	})
	if err != nil {
		return err
	}
	return response.Created(c, user, "User created successfully")
}

// GetByID returns a single user.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, user, "User retrieved successfully")
}

// Update applies a partial update to a user.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Update(c.Request().Context(), id, ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Active:   req.Active,
		Roles:    req.Roles,
	})
	if err != nil {
		return err
	}
	return response.OK(c, user, "User updated successfully")
}

// Delete removes a user.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return response.OK(c, nil, "User deleted successfully")
}
