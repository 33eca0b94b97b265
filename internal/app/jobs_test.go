package app

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/restokit/restopos/config"
	"github.com/restokit/restopos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testApp(t *testing.T) *Application {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return &Application{appConfig: config.DefaultAppConfig, gormDB: db}
}

func TestExpireReservationsReleasesTable(t *testing.T) {
	a := testApp(t)

	table := domain.DiningTable{TableNumber: "T01", Capacity: 4, Status: domain.TableStatusReserved}
	require.NoError(t, a.gormDB.Create(&table).Error)

	stale := domain.Reservation{
		UserID:          1,
		TableID:         table.ID,
		ReservationDate: time.Now().AddDate(0, 0, -2),
		ReservationTime: "19:00",
		NumberOfGuests:  2,
		Status:          domain.ReservationStatusPending,
	}
	require.NoError(t, a.gormDB.Create(&stale).Error)

	a.SchedExpireReservations()

	var reservation domain.Reservation
	require.NoError(t, a.gormDB.First(&reservation, stale.ID).Error)
	assert.Equal(t, domain.ReservationStatusCancelled, reservation.Status)

	var reloaded domain.DiningTable
	require.NoError(t, a.gormDB.First(&reloaded, table.ID).Error)
	assert.Equal(t, domain.TableStatusAvailable, reloaded.Status)
}

func TestExpireReservationsSkipsFutureAndConfirmed(t *testing.T) {
	a := testApp(t)

	table := domain.DiningTable{TableNumber: "T02", Capacity: 2, Status: domain.TableStatusReserved}
	require.NoError(t, a.gormDB.Create(&table).Error)

	future := domain.Reservation{
		UserID:          1,
		TableID:         table.ID,
		ReservationDate: time.Now().AddDate(0, 0, 2),
		ReservationTime: "18:00",
		NumberOfGuests:  2,
		Status:          domain.ReservationStatusPending,
	}
	require.NoError(t, a.gormDB.Create(&future).Error)

	// A stale but confirmed reservation is not the janitor's business.
	confirmed := domain.Reservation{
		UserID:          2,
		TableID:         table.ID,
		ReservationDate: time.Now().AddDate(0, 0, -3),
		ReservationTime: "20:00",
		NumberOfGuests:  4,
		Status:          domain.ReservationStatusConfirmed,
	}
	require.NoError(t, a.gormDB.Create(&confirmed).Error)

	a.SchedExpireReservations()

	var reloaded domain.Reservation
	require.NoError(t, a.gormDB.First(&reloaded, future.ID).Error)
	assert.Equal(t, domain.ReservationStatusPending, reloaded.Status)

	var reloadedConfirmed domain.Reservation
	require.NoError(t, a.gormDB.First(&reloadedConfirmed, confirmed.ID).Error)
	assert.Equal(t, domain.ReservationStatusConfirmed, reloadedConfirmed.Status)

	var tbl domain.DiningTable
	require.NoError(t, a.gormDB.First(&tbl, table.ID).Error)
	assert.Equal(t, domain.TableStatusReserved, tbl.Status)
}

func TestCleanStaleCartsKeepsFreshItems(t *testing.T) {
	a := testApp(t)

	cart := domain.Cart{UserID: 1}
	require.NoError(t, a.gormDB.Create(&cart).Error)

	old := domain.CartItem{CartID: cart.ID, MenuItemID: 1, Quantity: 1, Price: 10000}
	require.NoError(t, a.gormDB.Create(&old).Error)
	require.NoError(t, a.gormDB.Model(&old).
		Update("updated_at", time.Now().AddDate(0, 0, -45)).Error)

	fresh := domain.CartItem{CartID: cart.ID, MenuItemID: 2, Quantity: 2, Price: 5000}
	require.NoError(t, a.gormDB.Create(&fresh).Error)

	a.SchedCleanStaleCarts()

	var items []domain.CartItem
	require.NoError(t, a.gormDB.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, fresh.ID, items[0].ID)

	var carts int64
	a.gormDB.Model(&domain.Cart{}).Count(&carts)
	assert.EqualValues(t, 1, carts)
}
