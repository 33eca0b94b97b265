package ordering

import "errors"

var (
	// ErrQuantityInvalid is returned when a quantity is below 1.
	ErrQuantityInvalid = errors.New("quantity must be a positive integer")

	// ErrCartItemNotOwned is returned when a cart item does not belong to
	// the acting user's cart.
	ErrCartItemNotOwned = errors.New("cart item does not belong to this user")

	// ErrCartItemNotFound is returned when the cart item does not exist.
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrMenuItemNotFound is returned when the referenced menu item does
	// not exist.
	ErrMenuItemNotFound = errors.New("menu item not found")

	// ErrEmptyCart is returned by checkout when the cart has no items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidOrderType is returned for an unknown order type.
	ErrInvalidOrderType = errors.New("invalid order type")

	// ErrInvalidStatus is returned for an unknown order or payment status.
	ErrInvalidStatus = errors.New("invalid status value")

	// ErrOrderNotFound is returned when the order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderItemMismatch is returned when an order item does not belong
	// to the given order.
	ErrOrderItemMismatch = errors.New("order item does not belong to this order")
)
