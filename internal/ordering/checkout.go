package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/restokit/restopos/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckoutService converts a cart into an order inside one transaction.
type CheckoutService struct {
	db *gorm.DB
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{db: db}
}

// CheckoutInput carries the optional checkout parameters.
type CheckoutInput struct {
	OrderType string
	TableID   *int64
	Notes     string
}

// Checkout creates an order from the user's cart. The order row, its items
// and the cart clear are committed atomically; any failure rolls the whole
// operation back, leaving the cart untouched.
//
// This is an immediate-settlement flow: the order is created already paid
// and completed.
func (s *CheckoutService) Checkout(ctx context.Context, userID int64, in CheckoutInput) (*domain.Order, error) {
	orderType := in.OrderType
	if orderType == "" {
		orderType = domain.OrderTypeDineIn
	}
	if !domain.ValidOrderType(orderType) {
		return nil, ErrInvalidOrderType
	}

	var orderID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart domain.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return pkgerrors.Wrap(err, "load cart")
		}

		var items []domain.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Order("id").Find(&items).Error; err != nil {
			return pkgerrors.Wrap(err, "load cart items")
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		var total float64
		for _, item := range items {
			total += float64(item.Quantity) * item.Price
		}

		number, err := nextOrderNumber(tx, time.Now())
		if err != nil {
			return err
		}

		order := domain.Order{
			UserID:        &userID,
			TableID:       in.TableID,
			OrderNumber:   number,
			OrderType:     orderType,
			TotalAmount:   total,
			PaymentStatus: domain.PaymentStatusPaid,
			OrderStatus:   domain.OrderStatusCompleted,
			Notes:         in.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return pkgerrors.Wrap(err, "create order")
		}

		for _, item := range items {
			orderItem := domain.OrderItem{
				OrderID:    order.ID,
				MenuItemID: item.MenuItemID,
				Quantity:   item.Quantity,
				UnitPrice:  item.Price,
				Subtotal:   float64(item.Quantity) * item.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return pkgerrors.Wrap(err, "create order item")
			}
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error; err != nil {
			return pkgerrors.Wrap(err, "clear cart")
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	var order domain.Order
	if err := s.db.WithContext(ctx).
		Preload("Items.MenuItem").
		Preload("User").
		Preload("Table").
		First(&order, orderID).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "reload order")
	}

	zap.L().Info("checkout completed",
		zap.Int64("user_id", userID),
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total_amount", order.TotalAmount))

	return &order, nil
}

// nextOrderNumber mints an ORD-YYYYMMDD-NNNN number from the per-day
// counter row. The row is locked for the duration of the surrounding
// transaction so concurrent checkouts serialize on it; the unique index
// on orders.order_number is the backstop.
func nextOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	day := now.Format("20060102")

	q := tx.Where("day = ?", day)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var seq domain.OrderSequence
	err := q.First(&seq).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		seq = domain.OrderSequence{Day: day}
		if err := tx.Create(&seq).Error; err != nil {
			return "", pkgerrors.Wrap(err, "create order sequence")
		}
	case err != nil:
		return "", pkgerrors.Wrap(err, "lock order sequence")
	}

	seq.LastSeq++
	if err := tx.Model(&domain.OrderSequence{}).
		Where("day = ?", day).
		Update("last_seq", seq.LastSeq).Error; err != nil {
		return "", pkgerrors.Wrap(err, "advance order sequence")
	}

	return fmt.Sprintf("ORD-%s-%04d", day, seq.LastSeq), nil
}
