package auth

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "lcenhub/internal/errors"
	"lcenhub/internal/model"
)

// Session is the authenticated identity of the current request. A nil
// *Session means no session.
type Session struct {
	AccountID uuid.UUID
	Username  string
	Role      model.Role
}

// IsAdmin reports whether the session holds the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == model.RoleAdmin
}

// SessionFromContext extracts the session the echo-jwt middleware stored on
// the request context.
func SessionFromContext(c echo.Context) (*Session, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, apperrors.ErrNotAuthenticated
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apperrors.ErrNotAuthenticated
	}
	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	return &Session{
		AccountID: accountID,
		Username:  claims.Username,
		Role:      claims.Role,
	}, nil
}

// RequireAdmin rejects requests whose session is not an admin. Services
// re-check the role themselves; this keeps the rejection at the edge.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := SessionFromContext(c)
		if err != nil {
			he := apperrors.MapErrorToHTTP(err)
			return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
		}
		if !sess.IsAdmin() {
			he := apperrors.MapErrorToHTTP(apperrors.ErrForbidden)
			return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
		}
		return next(c)
	}
}
