package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gvn/lending-platform/internal/api/response"
	"github.com/gvn/lending-platform/internal/core/ports"
)

// RoleHandler handles HTTP requests for role CRUD.
type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

type createRoleRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

type updateRoleRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2"`
}

// List returns all roles.
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, roles, "Roles retrieved successfully")
}

// Create creates a new role.
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return response.Created(c, role, "Role created successfully")
}

// GetByID returns a single role.
func (h *RoleHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	role, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, role, "Role retrieved successfully")
}

// Update renames a role.
func (h *RoleHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.service.Update(c.Request().Context(), id, ports.UpdateRoleInput{Name: req.Name})
	if err != nil {
		return err
	}
	return response.OK(c, role, "Role updated successfully")
}

// Delete removes a role and its user assignments.
func (h *RoleHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return response.OK(c, nil, "Role deleted successfully")
}
