package restapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/restokit/restopos/internal/domain"
	"github.com/restokit/restopos/internal/webserver"
)

type menuItemPayload struct {
	CategoryID  int64   `json:"category_id" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description string  `json:"description"`
	Image       string  `json:"image" validate:"max=500"`
	Badge       string  `json:"badge" validate:"max=255"`
	Price       float64 `json:"price" validate:"gte=0"`
	Unit        string  `json:"unit" validate:"max=50"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=available hidden"`
}

func registerMenuItemRoutes() {
	webserver.ApiGET("/menu-items", listMenuItems)
	webserver.ApiGET("/menu-items/:id", getMenuItem)
	webserver.ApiPOST("/menu-items", createMenuItem, webserver.AdminOnly)
	webserver.ApiPUT("/menu-items/:id", updateMenuItem, webserver.AdminOnly)
	webserver.ApiPOST("/menu-items/:id/toggle-status", toggleMenuItemStatus, webserver.AdminOnly)
	webserver.ApiDELETE("/menu-items/:id", deleteMenuItem, webserver.AdminOnly)
}

func listMenuItems(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.MenuItem{}).Preload("Category")
	if categoryID := strings.TrimSpace(c.QueryParam("category_id")); categoryID != "" {
		db = db.Where("category_id = ?", categoryID)
	}
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		db = db.Where("status = ?", status)
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if db.Dialector.Name() == "postgres" {
			db = db.Where("title ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query menu items", err.Error())
	}

	var rows []domain.MenuItem
	if err := db.Order("title").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query menu items", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getMenuItem(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid menu item ID", nil)
	}
	var row domain.MenuItem
	if err := GetDB(c).Preload("Category").First(&row, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Menu item not found", nil)
	}
	return ok(c, row)
}

func createMenuItem(c echo.Context) error {
	var payload menuItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse menu item", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	var category domain.Category
	if err := GetDB(c).First(&category, payload.CategoryID).Error; err != nil {
		return fail(c, http.StatusUnprocessableEntity, "CATEGORY_NOT_FOUND", "Category does not exist", nil)
	}

	row := domain.MenuItem{
		CategoryID:  payload.CategoryID,
		Title:       strings.TrimSpace(payload.Title),
		Description: payload.Description,
		Image:       strings.TrimSpace(payload.Image),
		Badge:       strings.TrimSpace(payload.Badge),
		Price:       payload.Price,
		Unit:        strings.TrimSpace(payload.Unit),
		Stock:       payload.Stock,
		Status:      domain.NormalizeMenuStatus(payload.Stock, payload.Status, ""),
	}
	if err := GetDB(c).Create(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create menu item", err.Error())
	}
	return created(c, row)
}

func updateMenuItem(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid menu item ID", nil)
	}
	var row domain.MenuItem
	if err := GetDB(c).First(&row, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Menu item not found", nil)
	}

	var payload menuItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse menu item", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	var category domain.Category
	if err := GetDB(c).First(&category, payload.CategoryID).Error; err != nil {
		return fail(c, http.StatusUnprocessableEntity, "CATEGORY_NOT_FOUND", "Category does not exist", nil)
	}

	row.CategoryID = payload.CategoryID
	row.Title = strings.TrimSpace(payload.Title)
	row.Description = payload.Description
	row.Image = strings.TrimSpace(payload.Image)
	row.Badge = strings.TrimSpace(payload.Badge)
	row.Price = payload.Price
	row.Unit = strings.TrimSpace(payload.Unit)
	row.Stock = payload.Stock
	row.Status = domain.NormalizeMenuStatus(payload.Stock, payload.Status, row.Status)

	if err := GetDB(c).Save(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update menu item", err.Error())
	}
	return ok(c, row)
}

// toggleMenuItemStatus flips availability directly, bypassing the stock
// rule. Hiding an in-stock item and exposing an out-of-stock one are both
// deliberate admin actions here.
func toggleMenuItemStatus(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid menu item ID", nil)
	}
	var row domain.MenuItem
	if err := GetDB(c).First(&row, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Menu item not found", nil)
	}

	if row.Status == domain.MenuStatusAvailable {
		row.Status = domain.MenuStatusHidden
	} else {
		row.Status = domain.MenuStatusAvailable
	}
	if err := GetDB(c).Model(&row).Update("status", row.Status).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update menu item", err.Error())
	}
	return ok(c, row)
}

// deleteMenuItem hides the item instead of removing the row, so existing
// cart and order references stay resolvable.
func deleteMenuItem(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid menu item ID", nil)
	}
	var row domain.MenuItem
	if err := GetDB(c).First(&row, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Menu item not found", nil)
	}

	if err := GetDB(c).Model(&row).Update("status", domain.MenuStatusHidden).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to hide menu item", err.Error())
	}
	row.Status = domain.MenuStatusHidden
	return ok(c, row)
}
