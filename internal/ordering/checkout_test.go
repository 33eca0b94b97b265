package ordering

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/restokit/restopos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	db := testDB(t)
	carts := NewCartService(db)
	checkout := NewCheckoutService(db)
	ctx := context.Background()

	user := seedUser(t, db, "checkout@test.local")
	ayam := seedMenuItem(t, db, "Ayam Bakar", 45000)
	teh := seedMenuItem(t, db, "Es Teh Manis", 18000)

	require.NoError(t, carts.AddItem(ctx, user.ID, ayam.ID, 2))
	require.NoError(t, carts.AddItem(ctx, user.ID, teh.ID, 1))

	order, err := checkout.Checkout(ctx, user.ID, CheckoutInput{})
	require.NoError(t, err)

	assert.Equal(t, 108000.0, order.TotalAmount)
	assert.Equal(t, domain.OrderTypeDineIn, order.OrderType)
	assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, domain.OrderStatusCompleted, order.OrderStatus)
	require.Len(t, order.Items, 2)

	subtotals := map[int64]float64{}
	for _, item := range order.Items {
		subtotals[item.MenuItemID] = item.Subtotal
	}
	assert.Equal(t, 90000.0, subtotals[ayam.ID])
	assert.Equal(t, 18000.0, subtotals[teh.ID])

	snap, err := carts.Snapshot(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := testDB(t)
	checkout := NewCheckoutService(db)
	ctx := context.Background()

	user := seedUser(t, db, "empty@test.local")

	// No cart at all.
	_, err := checkout.Checkout(ctx, user.ID, CheckoutInput{})
	assert.ErrorIs(t, err, ErrEmptyCart)

	// Cart exists but has no items.
	carts := NewCartService(db)
	_, err = carts.GetOrCreateCart(ctx, user.ID)
	require.NoError(t, err)
	_, err = checkout.Checkout(ctx, user.ID, CheckoutInput{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutInvalidOrderType(t *testing.T) {
	db := testDB(t)
	checkout := NewCheckoutService(db)

	user := seedUser(t, db, "ordertype@test.local")
	_, err := checkout.Checkout(context.Background(), user.ID, CheckoutInput{OrderType: "drive-thru"})
	assert.ErrorIs(t, err, ErrInvalidOrderType)
}

func TestCheckoutSequenceNumbering(t *testing.T) {
	db := testDB(t)
	carts := NewCartService(db)
	checkout := NewCheckoutService(db)
	ctx := context.Background()

	item := seedMenuItem(t, db, "Kopi", 12000)
	day := time.Now().Format("20060102")

	for i := 1; i <= 3; i++ {
		user := seedUser(t, db, fmt.Sprintf("seq%d@test.local", i))
		require.NoError(t, carts.AddItem(ctx, user.ID, item.ID, 1))
		order, err := checkout.Checkout(ctx, user.ID, CheckoutInput{OrderType: domain.OrderTypeTakeaway})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("ORD-%s-%04d", day, i), order.OrderNumber)
	}
}

func TestOrderNumberSequenceResetsAtDayBoundary(t *testing.T) {
	db := testDB(t)

	dayOne := time.Date(2026, 8, 31, 23, 59, 0, 0, time.Local)
	dayTwo := time.Date(2026, 9, 1, 0, 1, 0, 0, time.Local)

	mint := func(now time.Time) string {
		var number string
		err := db.Transaction(func(tx *gorm.DB) error {
			var err error
			number, err = nextOrderNumber(tx, now)
			return err
		})
		require.NoError(t, err)
		return number
	}

	assert.Equal(t, "ORD-20260831-0001", mint(dayOne))
	assert.Equal(t, "ORD-20260831-0002", mint(dayOne))

	// A new calendar day starts its own counter at 0001; the previous
	// day's counter is untouched.
	assert.Equal(t, "ORD-20260901-0001", mint(dayTwo))
	assert.Equal(t, "ORD-20260831-0003", mint(dayOne))

	var days int64
	db.Model(&domain.OrderSequence{}).Count(&days)
	assert.EqualValues(t, 2, days)
}

func TestCheckoutRollsBackOnOrderNumberConflict(t *testing.T) {
	db := testDB(t)
	carts := NewCartService(db)
	checkout := NewCheckoutService(db)
	ctx := context.Background()

	user := seedUser(t, db, "rollback@test.local")
	item := seedMenuItem(t, db, "Mie Goreng", 22000)
	require.NoError(t, carts.AddItem(ctx, user.ID, item.ID, 2))

	// Occupy the number the counter will mint next so the order insert
	// fails mid-transaction.
	day := time.Now().Format("20060102")
	conflicting := domain.Order{
		OrderNumber:   fmt.Sprintf("ORD-%s-%04d", day, 1),
		OrderType:     domain.OrderTypeDineIn,
		PaymentStatus: domain.PaymentStatusPaid,
		OrderStatus:   domain.OrderStatusCompleted,
	}
	require.NoError(t, db.Create(&conflicting).Error)

	_, err := checkout.Checkout(ctx, user.ID, CheckoutInput{})
	require.Error(t, err)

	// Nothing committed: single pre-existing order, no items, cart intact,
	// counter rolled back.
	var orderCount, itemCount int64
	db.Model(&domain.Order{}).Count(&orderCount)
	db.Model(&domain.OrderItem{}).Count(&itemCount)
	assert.EqualValues(t, 1, orderCount)
	assert.EqualValues(t, 0, itemCount)

	snap, err := carts.Snapshot(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, snap.Items, 1)

	var seq domain.OrderSequence
	err = db.Where("day = ?", day).First(&seq).Error
	if err == nil {
		assert.Equal(t, 0, seq.LastSeq)
	}
}
