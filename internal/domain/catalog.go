package domain

import "time"

const (
	MenuStatusAvailable = "available"
	MenuStatusHidden    = "hidden"
)

// Category groups menu items. Name is unique; a category that still owns
// menu items cannot be deleted.
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:255" json:"name"`
	Icon      string    `gorm:"size:10" json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	MenuItemsCount int64 `gorm:"-" json:"menu_items_count"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "categories"
}

// MenuItem is a sellable catalog entry. Price is the current list price;
// carts and orders keep their own snapshots of it.
type MenuItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  int64     `gorm:"index" json:"category_id"`
	Title       string    `gorm:"index;size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"size:500" json:"image"`
	Badge       string    `gorm:"size:255" json:"badge"`
	Price       float64   `json:"price"`
	Unit        string    `gorm:"size:50" json:"unit"`
	Stock       int       `json:"stock"`
	Status      string    `gorm:"index;size:16" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName Specify table name
func (MenuItem) TableName() string {
	return "menu_items"
}

// NormalizeMenuStatus resolves the status to persist for a menu item write.
// explicit is the status requested in the same update ("" when absent).
// An item with no stock is hidden unless the caller set a status in the
// same write; an explicit "available" is honored even at zero stock.
func NormalizeMenuStatus(stock int, explicit, current string) string {
	if explicit != "" {
		return explicit
	}
	if stock <= 0 {
		return MenuStatusHidden
	}
	if current == "" {
		return MenuStatusAvailable
	}
	return current
}
