package domain

import "time"

const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeTakeaway = "takeaway"
	OrderTypeOnline   = "online"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusReady      = "ready"
	OrderStatusServed     = "served"
	OrderStatusCompleted  = "completed"
)

// ValidOrderType reports whether s is a known order type.
func ValidOrderType(s string) bool {
	switch s {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeOnline:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusCancelled:
		return true
	}
	return false
}

// ValidOrderStatus reports whether s is a known order status. Statuses are
// enum-checked only; any transition between them is allowed.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusReady,
		OrderStatusServed, OrderStatusCompleted:
		return true
	}
	return false
}

// Order is an immutable snapshot of a checked-out cart. Only the status
// fields and notes change after creation; TotalAmount is re-derived when
// order items are edited.
type Order struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        *int64    `gorm:"index" json:"user_id"`
	TableID       *int64    `gorm:"index" json:"table_id"`
	OrderNumber   string    `gorm:"uniqueIndex;size:50" json:"order_number"`
	OrderType     string    `gorm:"size:16" json:"order_type"`
	TotalAmount   float64   `json:"total_amount"`
	PaymentStatus string    `gorm:"index;size:16" json:"payment_status"`
	OrderStatus   string    `gorm:"index;size:16" json:"order_status"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User  *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Table *DiningTable `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Items []OrderItem  `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. UnitPrice is the cart snapshot taken
// at checkout; Subtotal is stored, not recomputed lazily.
type OrderItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64     `gorm:"index" json:"order_id"`
	MenuItemID int64     `gorm:"index" json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	Subtotal   float64   `json:"subtotal"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderSequence is the per-day counter backing order number generation.
// The row for a given day is locked and incremented inside the checkout
// transaction so concurrent checkouts cannot mint the same number.
type OrderSequence struct {
	Day     string `gorm:"primaryKey;size:8" json:"day"`
	LastSeq int    `json:"last_seq"`
}

// TableName Specify table name
func (OrderSequence) TableName() string {
	return "order_sequences"
}
