package domain

import "time"

// Cart is a user's staging area for an order. Created lazily on first
// access, one per user; cleared (items deleted) on checkout.
type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"uniqueIndex" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Cart) TableName() string {
	return "carts"
}

// CartItem is one menu item line in a cart. Price is snapshotted when the
// item is first added and is not refreshed by later catalog price changes.
type CartItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID     int64     `gorm:"index" json:"cart_id"`
	MenuItemID int64     `gorm:"index" json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
	Price      float64   `json:"price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

// TableName Specify table name
func (CartItem) TableName() string {
	return "cart_items"
}
