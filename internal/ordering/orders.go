package ordering

import (
	"context"
	"errors"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/restokit/restopos/internal/domain"
	"gorm.io/gorm"
)

// OrderService handles post-checkout order administration: listing,
// status updates, item maintenance and deletion.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// OrderFilter narrows the order listing.
type OrderFilter struct {
	PaymentStatus string
	OrderStatus   string
	Search        string
	Month         int
	Year          int
	Page          int
	PerPage       int
}

// List returns orders newest first, with user, table and item details.
func (s *OrderService) List(ctx context.Context, f OrderFilter) ([]domain.Order, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 100 {
		f.PerPage = 15
	}

	query := s.db.WithContext(ctx).Model(&domain.Order{})

	if f.PaymentStatus != "" {
		query = query.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.OrderStatus != "" {
		query = query.Where("order_status = ?", f.OrderStatus)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(order_number) LIKE ? OR user_id IN (SELECT id FROM users WHERE LOWER(name) LIKE ?)",
			like, like)
	}
	if f.Month >= 1 && f.Month <= 12 && f.Year > 0 {
		start := time.Date(f.Year, time.Month(f.Month), 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(0, 1, 0)
		query = query.Where("created_at >= ? AND created_at < ?", start, end)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "count orders")
	}

	var orders []domain.Order
	if err := query.
		Preload("User").
		Preload("Table").
		Preload("Items.MenuItem").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&orders).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "query orders")
	}

	return orders, total, nil
}

// Get loads one order with user, table and item details.
func (s *OrderService) Get(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order domain.Order
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Table").
		Preload("Items.MenuItem").
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, pkgerrors.Wrap(err, "load order")
	}
	return &order, nil
}

// StatusUpdate is a partial order update; nil fields are left unchanged.
// Statuses are validated against their enums only; transitions are not
// restricted.
type StatusUpdate struct {
	OrderStatus   *string
	PaymentStatus *string
	Notes         *string
}

// UpdateStatus applies a partial status/notes update to an order.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, upd StatusUpdate) (*domain.Order, error) {
	if _, err := s.Get(ctx, orderID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if upd.OrderStatus != nil {
		if !domain.ValidOrderStatus(*upd.OrderStatus) {
			return nil, ErrInvalidStatus
		}
		updates["order_status"] = *upd.OrderStatus
	}
	if upd.PaymentStatus != nil {
		if !domain.ValidPaymentStatus(*upd.PaymentStatus) {
			return nil, ErrInvalidStatus
		}
		updates["payment_status"] = *upd.PaymentStatus
	}
	if upd.Notes != nil {
		updates["notes"] = *upd.Notes
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.db.WithContext(ctx).Model(&domain.Order{}).
			Where("id = ?", orderID).
			Updates(updates).Error; err != nil {
			return nil, pkgerrors.Wrap(err, "update order")
		}
	}

	return s.Get(ctx, orderID)
}

// Delete removes an order and all its items in one transaction.
func (s *OrderService) Delete(ctx context.Context, orderID int64) error {
	if _, err := s.Get(ctx, orderID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&domain.OrderItem{}).Error; err != nil {
			return pkgerrors.Wrap(err, "delete order items")
		}
		if err := tx.Delete(&domain.Order{}, orderID).Error; err != nil {
			return pkgerrors.Wrap(err, "delete order")
		}
		return nil
	})
}

// UpdateItem sets an order item's quantity, re-derives its subtotal and
// the order total in the same transaction, and returns the fresh order.
func (s *OrderService) UpdateItem(ctx context.Context, orderID, orderItemID int64, quantity int) (*domain.Order, error) {
	if quantity < 1 {
		return nil, ErrQuantityInvalid
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := orderItemOf(tx, orderID, orderItemID)
		if err != nil {
			return err
		}

		item.Quantity = quantity
		item.Subtotal = float64(quantity) * item.UnitPrice
		if err := tx.Save(item).Error; err != nil {
			return pkgerrors.Wrap(err, "save order item")
		}

		return recomputeTotal(tx, orderID)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, orderID)
}

// DeleteItem removes an order item and re-derives the order total in the
// same transaction.
func (s *OrderService) DeleteItem(ctx context.Context, orderID, orderItemID int64) (*domain.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := orderItemOf(tx, orderID, orderItemID)
		if err != nil {
			return err
		}

		if err := tx.Delete(item).Error; err != nil {
			return pkgerrors.Wrap(err, "delete order item")
		}

		return recomputeTotal(tx, orderID)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, orderID)
}

// orderItemOf loads an order item and checks it belongs to the order.
func orderItemOf(tx *gorm.DB, orderID, orderItemID int64) (*domain.OrderItem, error) {
	var order domain.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, pkgerrors.Wrap(err, "load order")
	}

	var item domain.OrderItem
	if err := tx.First(&item, orderItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderItemMismatch
		}
		return nil, pkgerrors.Wrap(err, "load order item")
	}
	if item.OrderID != orderID {
		return nil, ErrOrderItemMismatch
	}
	return &item, nil
}

// recomputeTotal persists total_amount = Σ(quantity × unit_price) over the
// order's current items.
func recomputeTotal(tx *gorm.DB, orderID int64) error {
	var total float64
	if err := tx.Model(&domain.OrderItem{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(quantity * unit_price), 0)").
		Scan(&total).Error; err != nil {
		return pkgerrors.Wrap(err, "sum order items")
	}

	return tx.Model(&domain.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"total_amount": total,
			"updated_at":   time.Now(),
		}).Error
}
