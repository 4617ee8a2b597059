package handler_test

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gvn/lending-platform/internal/api"
	"github.com/gvn/lending-platform/internal/api/handler"
)

// newTestEcho wires the validator and error handler the router installs, so
// handler tests exercise the same envelope rendering as production.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}
