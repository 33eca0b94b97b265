package ordering

import (
	"context"
	"errors"

	"github.com/restokit/restopos/internal/domain"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// CartService maintains the single active cart per user. All operations
// take the acting user id explicitly; there is no ambient session state.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// CartSnapshot is the cart view returned to the client after every
// mutation: joined items, grand total and total piece count.
type CartSnapshot struct {
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

// GetOrCreateCart returns the user's cart, creating an empty one on first
// access. Idempotent.
func (s *CartService) GetOrCreateCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	var cart domain.Cart
	err := s.db.WithContext(ctx).
		Where(domain.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "get or create cart")
	}
	return &cart, nil
}

// Snapshot loads the cart with menu item details and derives total and count.
func (s *CartService) Snapshot(ctx context.Context, userID int64) (*CartSnapshot, error) {
	cart, err := s.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	var items []domain.CartItem
	if err := s.db.WithContext(ctx).
		Preload("MenuItem").
		Where("cart_id = ?", cart.ID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load cart items")
	}

	snap := &CartSnapshot{Items: items}
	for _, item := range items {
		snap.Total += float64(item.Quantity) * item.Price
		snap.Count += item.Quantity
	}
	return snap, nil
}

// AddItem puts quantity units of a menu item into the user's cart. A second
// add of the same menu item increments the existing row; the price snapshot
// taken on the first add is kept.
func (s *CartService) AddItem(ctx context.Context, userID, menuItemID int64, quantity int) error {
	if quantity < 1 {
		return ErrQuantityInvalid
	}

	cart, err := s.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}

	var menuItem domain.MenuItem
	if err := s.db.WithContext(ctx).First(&menuItem, menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuItemNotFound
		}
		return pkgerrors.Wrap(err, "load menu item")
	}

	var item domain.CartItem
	err = s.db.WithContext(ctx).
		Where("cart_id = ? AND menu_item_id = ?", cart.ID, menuItemID).
		First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = domain.CartItem{
			CartID:     cart.ID,
			MenuItemID: menuItemID,
			Quantity:   quantity,
			Price:      menuItem.Price,
		}
		if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
			return pkgerrors.Wrap(err, "create cart item")
		}
		return nil
	case err != nil:
		return pkgerrors.Wrap(err, "query cart item")
	}

	return s.db.WithContext(ctx).Model(&item).
		Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
}

// UpdateItemQuantity sets the quantity of a cart item owned by the user.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, cartItemID int64, quantity int) error {
	if quantity < 1 {
		return ErrQuantityInvalid
	}

	item, err := s.ownedItem(ctx, userID, cartItemID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(item).Update("quantity", quantity).Error
}

// RemoveItem deletes a cart item owned by the user.
func (s *CartService) RemoveItem(ctx context.Context, userID, cartItemID int64) error {
	item, err := s.ownedItem(ctx, userID, cartItemID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(item).Error
}

// Clear deletes all items from the user's cart. The cart row persists.
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	cart, err := s.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("cart_id = ?", cart.ID).
		Delete(&domain.CartItem{}).Error
}

// ownedItem loads a cart item and checks it belongs to the user's cart.
func (s *CartService) ownedItem(ctx context.Context, userID, cartItemID int64) (*domain.CartItem, error) {
	var item domain.CartItem
	if err := s.db.WithContext(ctx).First(&item, cartItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, pkgerrors.Wrap(err, "load cart item")
	}

	var cart domain.Cart
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotOwned
		}
		return nil, pkgerrors.Wrap(err, "load cart")
	}
	if cart.ID != item.CartID {
		return nil, ErrCartItemNotOwned
	}
	return &item, nil
}
