package restapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/restokit/restopos/internal/domain"
	"github.com/restokit/restopos/internal/webserver"
)

type categoryPayload struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Icon string `json:"icon" validate:"max=10"`
}

func registerCategoryRoutes() {
	webserver.ApiGET("/categories", listCategories)
	webserver.ApiGET("/categories/:id", getCategory)
	webserver.ApiPOST("/categories", createCategory, webserver.AdminOnly)
	webserver.ApiPUT("/categories/:id", updateCategory, webserver.AdminOnly)
	webserver.ApiDELETE("/categories/:id", deleteCategory, webserver.AdminOnly)
}

func listCategories(c echo.Context) error {
	db := GetDB(c).Model(&domain.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM menu_items WHERE menu_items.category_id = categories.id) AS menu_items_count")

	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if db.Dialector.Name() == "postgres" {
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	var rows []domain.Category
	if err := db.Order("name").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	return ok(c, rows)
}

func getCategory(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	var row domain.Category
	err = GetDB(c).Model(&domain.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM menu_items WHERE menu_items.category_id = categories.id) AS menu_items_count").
		Where("categories.id = ?", id).
		First(&row).Error
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	}
	return ok(c, row)
}

func createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	name := strings.TrimSpace(payload.Name)
	var count int64
	GetDB(c).Model(&domain.Category{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		return fail(c, http.StatusUnprocessableEntity, "NAME_TAKEN", "Category name already exists", nil)
	}

	row := domain.Category{Name: name, Icon: strings.TrimSpace(payload.Icon)}
	if err := GetDB(c).Create(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category", err.Error())
	}
	return created(c, row)
}

func updateCategory(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	var row domain.Category
	if err := GetDB(c).First(&row, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	}

	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	name := strings.TrimSpace(payload.Name)
	var count int64
	GetDB(c).Model(&domain.Category{}).Where("name = ? AND id <> ?", name, id).Count(&count)
	if count > 0 {
		return fail(c, http.StatusUnprocessableEntity, "NAME_TAKEN", "Category name already exists", nil)
	}

	row.Name = name
	row.Icon = strings.TrimSpace(payload.Icon)
	if err := GetDB(c).Save(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update category", err.Error())
	}
	return ok(c, row)
}

func deleteCategory(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	var row domain.Category
	if err := GetDB(c).First(&row, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	}

	var itemCount int64
	GetDB(c).Model(&domain.MenuItem{}).Where("category_id = ?", id).Count(&itemCount)
	if itemCount > 0 {
		return fail(c, http.StatusUnprocessableEntity, "CATEGORY_IN_USE",
			"Category still has menu items", map[string]interface{}{"menu_items_count": itemCount})
	}

	if err := GetDB(c).Delete(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete category", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
