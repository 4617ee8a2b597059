package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gvn/lending-platform/internal/api/response"
	"github.com/gvn/lending-platform/internal/core/ports"
)

// ProductHandler handles HTTP requests for lending product CRUD.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type createProductRequest struct {
	Name         string  `json:"name"         validate:"required"`
	Tenor        int     `json:"tenor"        validate:"required,gt=0"`
	InterestRate float64 `json:"interestRate" validate:"required,gt=0"`
}

type updateProductRequest struct {
	Name         *string  `json:"name"`
	Tenor        *int     `json:"tenor"        validate:"omitempty,gt=0"`
	InterestRate *float64 `json:"interestRate" validate:"omitempty,gt=0"`
}

// List returns all products.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, products, "Products retrieved successfully")
}

// Create creates a new product.
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Name:         req.Name,
		Tenor:        req.Tenor,
		InterestRate: req.InterestRate,
	})
	if err != nil {
		return err
	}
	return response.Created(c, product, "Product created successfully")
}

// GetByID returns a single product.
func (h *ProductHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, product, "Product retrieved successfully")
}

// Update applies a partial update: omitted fields keep their stored value.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Update(c.Request().Context(), id, ports.UpdateProductInput{
		Name:         req.Name,
		Tenor:        req.Tenor,
		InterestRate: req.InterestRate,
	})
	if err != nil {
		return err
	}
	return response.OK(c, product, "Product updated successfully")
}

// Delete removes a product.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return response.OK(c, nil, "Product deleted successfully")
}
