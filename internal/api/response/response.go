// Package response defines the uniform envelope applied to every API result.
package response

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Envelope is the canonical wrapper for all API responses.
type Envelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Code      int       `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// OK renders a 200 envelope around data.
func OK(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Code:      http.StatusOK,
		Timestamp: time.Now().UTC(),
	})
}

// Created renders a 201 envelope around data.
func Created(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusCreated, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Code:      http.StatusCreated,
		Timestamp: time.Now().UTC(),
	})
}

// Error renders a failure envelope with a nil data field.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{
		Success:   false,
		Message:   message,
		Data:      nil,
		Code:      status,
		Timestamp: time.Now().UTC(),
	})
}
