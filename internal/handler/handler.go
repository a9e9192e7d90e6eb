package handler

import (
	"github.com/labstack/echo/v4"

	apperrors "lcenhub/internal/errors"
)

// httpError translates a domain error into the standardized error response.
func httpError(err error) error {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
