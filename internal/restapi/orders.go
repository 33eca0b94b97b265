package restapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/restokit/restopos/internal/ordering"
	"github.com/restokit/restopos/internal/reporting"
	"github.com/restokit/restopos/internal/webserver"
)

type orderStatusPayload struct {
	OrderStatus   *string `json:"order_status" validate:"omitempty,oneof=pending processing ready served completed"`
	PaymentStatus *string `json:"payment_status" validate:"omitempty,oneof=pending paid cancelled"`
	Notes         *string `json:"notes"`
}

type orderItemQuantityPayload struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

func registerOrderRoutes() {
	webserver.ApiGET("/orders", listOrders, webserver.AdminOnly)
	webserver.ApiGET("/orders/summary", orderSummary, webserver.AdminOnly)
	webserver.ApiGET("/orders/export", exportOrders, webserver.AdminOnly)
	webserver.ApiGET("/orders/:id", getOrder, webserver.AdminOnly)
	webserver.ApiPUT("/orders/:id", updateOrder, webserver.AdminOnly)
	webserver.ApiDELETE("/orders/:id", deleteOrder, webserver.AdminOnly)
	webserver.ApiPUT("/orders/:id/items/:itemId", updateOrderItem, webserver.AdminOnly)
	webserver.ApiDELETE("/orders/:id/items/:itemId", deleteOrderItem, webserver.AdminOnly)
}

// orderError maps order service sentinels to HTTP statuses.
func orderError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ordering.ErrOrderNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ordering.ErrOrderItemMismatch):
		return fail(c, http.StatusNotFound, "ORDER_ITEM_MISMATCH", err.Error(), nil)
	case errors.Is(err, ordering.ErrInvalidStatus):
		return fail(c, http.StatusUnprocessableEntity, "INVALID_STATUS", err.Error(), nil)
	case errors.Is(err, ordering.ErrQuantityInvalid):
		return fail(c, http.StatusUnprocessableEntity, "INVALID_QUANTITY", err.Error(), nil)
	default:
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed", err.Error())
	}
}

func orderFilterFromQuery(c echo.Context) ordering.OrderFilter {
	page, pageSize := parsePagination(c)
	month, _ := strconv.Atoi(c.QueryParam("month"))
	year, _ := strconv.Atoi(c.QueryParam("year"))
	return ordering.OrderFilter{
		PaymentStatus: strings.TrimSpace(c.QueryParam("payment_status")),
		OrderStatus:   strings.TrimSpace(c.QueryParam("order_status")),
		Search:        strings.TrimSpace(c.QueryParam("search")),
		Month:         month,
		Year:          year,
		Page:          page,
		PerPage:       pageSize,
	}
}

func listOrders(c echo.Context) error {
	svc := ordering.NewOrderService(GetDB(c))
	filter := orderFilterFromQuery(c)
	rows, total, err := svc.List(c.Request().Context(), filter)
	if err != nil {
		return orderError(c, err)
	}
	return paged(c, rows, total, filter.Page, filter.PerPage)
}

func getOrder(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	svc := ordering.NewOrderService(GetDB(c))
	order, err := svc.Get(c.Request().Context(), id)
	if err != nil {
		return orderError(c, err)
	}
	return ok(c, order)
}

func updateOrder(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var payload orderStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order update", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	svc := ordering.NewOrderService(GetDB(c))
	order, err := svc.UpdateStatus(c.Request().Context(), id, ordering.StatusUpdate{
		OrderStatus:   payload.OrderStatus,
		PaymentStatus: payload.PaymentStatus,
		Notes:         payload.Notes,
	})
	if err != nil {
		return orderError(c, err)
	}
	return ok(c, order)
}

func deleteOrder(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	svc := ordering.NewOrderService(GetDB(c))
	if err := svc.Delete(c.Request().Context(), id); err != nil {
		return orderError(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}

func updateOrderItem(c echo.Context) error {
	orderID, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order item ID", nil)
	}
	var payload orderItemQuantityPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	svc := ordering.NewOrderService(GetDB(c))
	order, err := svc.UpdateItem(c.Request().Context(), orderID, itemID, payload.Quantity)
	if err != nil {
		return orderError(c, err)
	}
	return ok(c, order)
}

func deleteOrderItem(c echo.Context) error {
	orderID, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order item ID", nil)
	}

	svc := ordering.NewOrderService(GetDB(c))
	order, err := svc.DeleteItem(c.Request().Context(), orderID, itemID)
	if err != nil {
		return orderError(c, err)
	}
	return ok(c, order)
}

// orderSummary reports best-selling and most-ordered items for an
// optional month/year window.
func orderSummary(c echo.Context) error {
	month, _ := strconv.Atoi(c.QueryParam("month"))
	year, _ := strconv.Atoi(c.QueryParam("year"))
	paymentStatus := strings.TrimSpace(c.QueryParam("payment_status"))

	svc := reporting.NewDashboardService(GetDB(c))
	ctx := c.Request().Context()

	bestSelling, err := svc.BestSelling(ctx, month, year, paymentStatus, 5)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to build summary", err.Error())
	}
	favorites, err := svc.Favorites(ctx, month, year, paymentStatus, 5)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to build summary", err.Error())
	}

	return ok(c, map[string]interface{}{
		"best_selling": bestSelling,
		"favorites":    favorites,
	})
}
