package middleware

import (
	"strings"

	"edgeserver/internal/domain/entity"
	domainerrors "edgeserver/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

const (
	// HeaderXUserID carries the caller identity asserted by the upstream gateway.
	HeaderXUserID = "X-User-Id"
	// QueryUserID is the query-string fallback for the caller identity.
	QueryUserID = "userId"

	userIDKey = "userID"
)

// RequireUserID resolves the caller identity: the X-User-Id header wins over the userId
// query parameter. A request naming neither, or only blanks, fails with USER_ID_REQUIRED.
func RequireUserID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := strings.TrimSpace(c.Request().Header.Get(HeaderXUserID))
		if userID == "" {
			userID = strings.TrimSpace(c.QueryParam(QueryUserID))
		}
		if userID == "" {
			return domainerrors.ErrMissingUserID
		}
		if !entity.ValidIdentifier(userID) {
			return domainerrors.ErrValidationFailed.WithDetails("userId must be at most 64 characters")
		}

		c.Set(userIDKey, userID)

		return next(c)
	}
}

// GetUserID returns the identity stored by RequireUserID.
func GetUserID(c echo.Context) (string, bool) {
	userID, ok := c.Get(userIDKey).(string)

	return userID, ok && userID != ""
}
