package restapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/restokit/restopos/internal/ordering"
	"github.com/restokit/restopos/internal/webserver"
)

type addCartItemPayload struct {
	MenuItemID int64 `json:"menu_item_id" validate:"required,gt=0"`
	Quantity   int   `json:"quantity" validate:"required,gte=1"`
}

type cartQuantityPayload struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

type checkoutPayload struct {
	OrderType string `json:"order_type" validate:"omitempty,oneof=dine-in takeaway online"`
	TableID   *int64 `json:"table_id"`
	Notes     string `json:"notes"`
}

func registerCartRoutes() {
	webserver.ApiGET("/cart", getCart)
	webserver.ApiPOST("/cart/add", addCartItem)
	webserver.ApiPUT("/cart/update/:id", updateCartItem)
	webserver.ApiDELETE("/cart/remove/:id", removeCartItem)
	webserver.ApiPOST("/cart/clear", clearCart)
	webserver.ApiPOST("/cart/checkout", checkout)
}

// cartError maps cart service sentinels to HTTP statuses.
func cartError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ordering.ErrQuantityInvalid):
		return fail(c, http.StatusUnprocessableEntity, "INVALID_QUANTITY", err.Error(), nil)
	case errors.Is(err, ordering.ErrMenuItemNotFound):
		return fail(c, http.StatusUnprocessableEntity, "MENU_ITEM_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ordering.ErrCartItemNotFound):
		return fail(c, http.StatusNotFound, "CART_ITEM_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ordering.ErrCartItemNotOwned):
		return fail(c, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	case errors.Is(err, ordering.ErrEmptyCart):
		return fail(c, http.StatusBadRequest, "EMPTY_CART", err.Error(), nil)
	case errors.Is(err, ordering.ErrInvalidOrderType):
		return fail(c, http.StatusUnprocessableEntity, "INVALID_ORDER_TYPE", err.Error(), nil)
	default:
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed", err.Error())
	}
}

func cartSnapshot(c echo.Context) error {
	svc := ordering.NewCartService(GetDB(c))
	snap, err := svc.Snapshot(c.Request().Context(), webserver.CurrentUserID(c))
	if err != nil {
		return cartError(c, err)
	}
	return ok(c, snap)
}

func getCart(c echo.Context) error {
	return cartSnapshot(c)
}

func addCartItem(c echo.Context) error {
	var payload addCartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	svc := ordering.NewCartService(GetDB(c))
	userID := webserver.CurrentUserID(c)
	if err := svc.AddItem(c.Request().Context(), userID, payload.MenuItemID, payload.Quantity); err != nil {
		return cartError(c, err)
	}
	return cartSnapshot(c)
}

func updateCartItem(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid cart item ID", nil)
	}
	var payload cartQuantityPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	svc := ordering.NewCartService(GetDB(c))
	userID := webserver.CurrentUserID(c)
	if err := svc.UpdateItemQuantity(c.Request().Context(), userID, id, payload.Quantity); err != nil {
		return cartError(c, err)
	}
	return cartSnapshot(c)
}

func removeCartItem(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid cart item ID", nil)
	}
	svc := ordering.NewCartService(GetDB(c))
	if err := svc.RemoveItem(c.Request().Context(), webserver.CurrentUserID(c), id); err != nil {
		return cartError(c, err)
	}
	return cartSnapshot(c)
}

func clearCart(c echo.Context) error {
	svc := ordering.NewCartService(GetDB(c))
	if err := svc.Clear(c.Request().Context(), webserver.CurrentUserID(c)); err != nil {
		return cartError(c, err)
	}
	return cartSnapshot(c)
}

func checkout(c echo.Context) error {
	var payload checkoutPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse checkout", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	svc := ordering.NewCheckoutService(GetDB(c))
	order, err := svc.Checkout(c.Request().Context(), webserver.CurrentUserID(c), ordering.CheckoutInput{
		OrderType: payload.OrderType,
		TableID:   payload.TableID,
		Notes:     payload.Notes,
	})
	if err != nil {
		return cartError(c, err)
	}
	return created(c, order)
}
