// Package handler defines the HTTP handlers. Handlers perform
// request parsing and authorization, delegate to the domain services
// or repositories, and translate sentinel errors into HTTP statuses.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/service"
)

// getUserID extracts the user_id set by the JWT middleware and
// converts it to uint64. JWT numeric claims decode as float64, so
// several representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole extracts the role claim set by the JWT middleware.
func getRole(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return s
	}
	return ""
}

// isStaff reports whether the caller holds a staff role (admin or
// gate guard).
func isStaff(c echo.Context) bool {
	r := getRole(c)
	return r == model.RoleAdmin || r == model.RoleGuard
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id != 0
}

// badRequestIfInvalid maps service validation failures to a 400
// response and reports whether it wrote one.
func badRequestIfInvalid(c echo.Context, err error) (bool, error) {
	if service.ErrInvalidArgument(err) {
		return true, c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return false, nil
}
