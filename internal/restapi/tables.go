package restapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/restokit/restopos/internal/domain"
	"github.com/restokit/restopos/internal/webserver"
	"gorm.io/gorm"
)

type tablePayload struct {
	TableNumber string `json:"table_number" validate:"required,min=1,max=50"`
	Capacity    int    `json:"capacity" validate:"gte=1"`
	Location    string `json:"location" validate:"max=255"`
	Status      string `json:"status" validate:"omitempty,oneof=available occupied reserved"`
}

type reservePayload struct {
	ReservationDate string `json:"reservation_date" validate:"required"`
	ReservationTime string `json:"reservation_time" validate:"required,max=8"`
	NumberOfGuests  int    `json:"number_of_guests" validate:"gte=1"`
	SpecialRequest  string `json:"special_request"`
}

func registerTableRoutes() {
	webserver.ApiGET("/tables", listTables)
	webserver.ApiGET("/tables/:id", getTable)
	webserver.ApiPOST("/tables", createTable, webserver.AdminOnly)
	webserver.ApiPUT("/tables/:id", updateTable, webserver.AdminOnly)
	webserver.ApiPOST("/tables/:id/toggle-status", toggleTableStatus, webserver.AdminOnly)
	webserver.ApiPOST("/tables/:id/reserve", reserveTable)
	webserver.ApiDELETE("/tables/:id", deleteTable, webserver.AdminOnly)
}

const tableOrdersCountSelect = "tables.*, (SELECT COUNT(*) FROM orders WHERE orders.table_id = tables.id) AS orders_count"

func listTables(c echo.Context) error {
	db := GetDB(c).Model(&domain.DiningTable{}).Select(tableOrdersCountSelect)
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		db = db.Where("status = ?", status)
	}

	var rows []domain.DiningTable
	if err := db.Order("table_number").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query tables", err.Error())
	}
	return ok(c, rows)
}

func getTable(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid table ID", nil)
	}
	var row domain.DiningTable
	err = GetDB(c).Model(&domain.DiningTable{}).
		Select(tableOrdersCountSelect).
		Where("tables.id = ?", id).
		First(&row).Error
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Table not found", nil)
	}
	return ok(c, row)
}

func createTable(c echo.Context) error {
	var payload tablePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse table", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	number := strings.TrimSpace(payload.TableNumber)
	var count int64
	GetDB(c).Model(&domain.DiningTable{}).Where("table_number = ?", number).Count(&count)
	if count > 0 {
		return fail(c, http.StatusUnprocessableEntity, "TABLE_NUMBER_TAKEN", "Table number already exists", nil)
	}

	status := payload.Status
	if status == "" {
		status = domain.TableStatusAvailable
	}
	row := domain.DiningTable{
		TableNumber: number,
		Capacity:    payload.Capacity,
		Location:    strings.TrimSpace(payload.Location),
		Status:      status,
	}
	if err := GetDB(c).Create(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create table", err.Error())
	}
	return created(c, row)
}

func updateTable(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid table ID", nil)
	}
	var row domain.DiningTable
	if err := GetDB(c).First(&row, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Table not found", nil)
	}

	var payload tablePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse table", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	number := strings.TrimSpace(payload.TableNumber)
	var count int64
	GetDB(c).Model(&domain.DiningTable{}).Where("table_number = ? AND id <> ?", number, id).Count(&count)
	if count > 0 {
		return fail(c, http.StatusUnprocessableEntity, "TABLE_NUMBER_TAKEN", "Table number already exists", nil)
	}

	row.TableNumber = number
	row.Capacity = payload.Capacity
	row.Location = strings.TrimSpace(payload.Location)
	if payload.Status != "" {
		row.Status = payload.Status
	}
	if err := GetDB(c).Save(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update table", err.Error())
	}
	return ok(c, row)
}

// toggleTableStatus flips a table between available and occupied. Reserved
// tables are released back to available.
func toggleTableStatus(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid table ID", nil)
	}
	var row domain.DiningTable
	if err := GetDB(c).First(&row, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Table not found", nil)
	}

	if row.Status == domain.TableStatusAvailable {
		row.Status = domain.TableStatusOccupied
	} else {
		row.Status = domain.TableStatusAvailable
	}
	if err := GetDB(c).Model(&row).Update("status", row.Status).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update table", err.Error())
	}
	return ok(c, row)
}

// reserveTable books an available table for the acting user. The
// reservation row and the table status change commit together.
func reserveTable(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid table ID", nil)
	}

	var payload reservePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse reservation", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	date, err := time.ParseInLocation("2006-01-02", payload.ReservationDate, time.Local)
	if err != nil {
		return fail(c, http.StatusUnprocessableEntity, "INVALID_DATE", "reservation_date must be YYYY-MM-DD", nil)
	}

	var reservation domain.Reservation
	txErr := GetDB(c).Transaction(func(tx *gorm.DB) error {
		var table domain.DiningTable
		if err := tx.First(&table, id).Error; err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Table not found")
		}
		if table.Status != domain.TableStatusAvailable {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Table is not available")
		}
		if payload.NumberOfGuests > table.Capacity {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Party exceeds table capacity")
		}

		reservation = domain.Reservation{
			UserID:          webserver.CurrentUserID(c),
			TableID:         table.ID,
			ReservationDate: date,
			ReservationTime: payload.ReservationTime,
			NumberOfGuests:  payload.NumberOfGuests,
			SpecialRequest:  payload.SpecialRequest,
			Status:          domain.ReservationStatusPending,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		return tx.Model(&table).Update("status", domain.TableStatusReserved).Error
	})
	if txErr != nil {
		if httpErr, isHTTP := txErr.(*echo.HTTPError); isHTTP {
			return fail(c, httpErr.Code, "RESERVE_FAILED", httpErr.Message.(string), nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to reserve table", txErr.Error())
	}
	return created(c, reservation)
}

// deleteTable refuses to remove a table that still has an order in flight.
func deleteTable(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid table ID", nil)
	}
	var row domain.DiningTable
	if err := GetDB(c).First(&row, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Table not found", nil)
	}

	var active int64
	GetDB(c).Model(&domain.Order{}).
		Where("table_id = ? AND order_status <> ? AND payment_status <> ?",
			id, domain.OrderStatusCompleted, domain.PaymentStatusCancelled).
		Count(&active)
	if active > 0 {
		return fail(c, http.StatusUnprocessableEntity, "TABLE_IN_USE",
			"Table has active orders", map[string]interface{}{"active_orders": active})
	}

	if err := GetDB(c).Delete(&row).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete table", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
