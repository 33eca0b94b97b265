package restapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/restokit/restopos/internal/domain"
	"github.com/restokit/restopos/internal/webserver"
)

func registerUserRoutes() {
	webserver.ApiGET("/users", listCustomers, webserver.AdminOnly)
}

// listCustomers returns customer accounts for back-office pickers.
func listCustomers(c echo.Context) error {
	db := GetDB(c).Model(&domain.User{}).Where("role = ?", domain.RoleCustomer)

	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if db.Dialector.Name() == "postgres" {
			db = db.Where("name ILIKE ? OR email ILIKE ?", "%"+q+"%", "%"+q+"%")
		} else {
			like := "%" + strings.ToLower(q) + "%"
			db = db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
		}
	}

	var rows []domain.User
	if err := db.Select("id, name, email").Order("name").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", err.Error())
	}
	return ok(c, rows)
}
