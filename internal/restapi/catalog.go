package restapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/restokit/restopos/internal/domain"
	"github.com/restokit/restopos/internal/webserver"
)

// The catalog endpoints back the customer-facing menu: available items
// only, grouped by category.
func registerCatalogRoutes() {
	webserver.ApiGET("/catalog", listCatalog)
	webserver.ApiGET("/catalog/categories", listCatalogCategories)
}

func listCatalog(c echo.Context) error {
	db := GetDB(c).Model(&domain.MenuItem{}).
		Preload("Category").
		Where("status = ?", domain.MenuStatusAvailable)

	if categoryID := strings.TrimSpace(c.QueryParam("category_id")); categoryID != "" {
		db = db.Where("category_id = ?", categoryID)
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if db.Dialector.Name() == "postgres" {
			db = db.Where("title ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	var rows []domain.MenuItem
	if err := db.Order("title").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query catalog", err.Error())
	}
	return ok(c, rows)
}

func listCatalogCategories(c echo.Context) error {
	var rows []domain.Category
	err := GetDB(c).Model(&domain.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM menu_items WHERE menu_items.category_id = categories.id AND menu_items.status = ?) AS menu_items_count",
			domain.MenuStatusAvailable).
		Order("name").
		Find(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	return ok(c, rows)
}
