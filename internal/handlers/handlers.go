package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ESPSA/El-Wataneya/internal/services"
)

// pagination reads page/limit query params with sane bounds.
func pagination(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// listResponse is the shared paginated envelope.
func listResponse(c echo.Context, items interface{}, total int64, page, limit int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":  items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// serviceError maps service sentinel errors onto HTTP responses.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	case errors.Is(err, services.ErrNotOwner):
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden"})
	case errors.Is(err, services.ErrSameStatus), errors.Is(err, services.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrNotApproved):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
