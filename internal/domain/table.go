package domain

import "time"

const (
	TableStatusAvailable = "available"
	TableStatusOccupied  = "occupied"
	TableStatusReserved  = "reserved"
)

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusCompleted = "completed"
)

// DiningTable is a physical table in the restaurant.
type DiningTable struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TableNumber string    `gorm:"uniqueIndex;size:50" json:"table_number"`
	Capacity    int       `json:"capacity"`
	Location    string    `gorm:"size:255" json:"location"`
	Status      string    `gorm:"index;size:16" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	OrdersCount int64 `gorm:"-" json:"orders_count"`
}

// TableName Specify table name
func (DiningTable) TableName() string {
	return "tables"
}

// Reservation books a table for a customer at a given date and time.
type Reservation struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64     `gorm:"index" json:"user_id"`
	TableID         int64     `gorm:"index" json:"table_id"`
	ReservationDate time.Time `json:"reservation_date"`
	ReservationTime string    `gorm:"size:8" json:"reservation_time"`
	NumberOfGuests  int       `json:"number_of_guests"`
	SpecialRequest  string    `gorm:"type:text" json:"special_request"`
	Status          string    `gorm:"index;size:16" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Reservation) TableName() string {
	return "reservations"
}
