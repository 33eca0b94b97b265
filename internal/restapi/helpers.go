package restapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/restokit/restopos/internal/app"
	"github.com/restokit/restopos/internal/webserver"
	"gorm.io/gorm"
)

// apiError is the uniform error envelope for all endpoints.
type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ok writes a 200 response with the given payload.
func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// created writes a 201 response with the given payload.
func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

// fail writes an error envelope with the given status.
func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, apiError{Code: code, Message: message, Details: details})
}

// paged writes a standard paginated listing payload.
func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":      rows,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// parsePagination reads page and per_page query params, defaulting to
// page 1 with 15 rows and capping page size at 100.
func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize = 15
	if ps, err := strconv.Atoi(c.QueryParam("per_page")); err == nil && ps > 0 && ps <= 100 {
		pageSize = ps
	}
	return page, pageSize
}

// parseIDParam parses the :id path segment.
func parseIDParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// handleValidationError maps validator failures to a 422 with per-field
// details.
func handleValidationError(c echo.Context, err error) error {
	if verrs, isValidation := err.(validator.ValidationErrors); isValidation {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		return fail(c, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "Validation failed", details)
	}
	return fail(c, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "Validation failed", err.Error())
}

// GetAppContext retrieves the application context injected by the web
// server middleware.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

// GetDB retrieves the shared gorm handle for the request.
func GetDB(c echo.Context) *gorm.DB {
	return GetAppContext(c).DB()
}
