package ordering

import (
	"context"
	"testing"

	"github.com/restokit/restopos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddMergesSameMenuItem(t *testing.T) {
	db := testDB(t)
	svc := NewCartService(db)
	ctx := context.Background()

	user := seedUser(t, db, "merge@test.local")
	item := seedMenuItem(t, db, "Nasi Goreng", 25000)

	require.NoError(t, svc.AddItem(ctx, user.ID, item.ID, 2))

	// Price change between adds must not affect the snapshot.
	require.NoError(t, db.Model(item).Update("price", 30000).Error)
	require.NoError(t, svc.AddItem(ctx, user.ID, item.ID, 3))

	snap, err := svc.Snapshot(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 5, snap.Items[0].Quantity)
	assert.Equal(t, 25000.0, snap.Items[0].Price)
	assert.Equal(t, 125000.0, snap.Total)
	assert.Equal(t, 5, snap.Count)
}

func TestCartAddRejectsInvalidQuantity(t *testing.T) {
	db := testDB(t)
	svc := NewCartService(db)
	ctx := context.Background()

	user := seedUser(t, db, "qty@test.local")
	item := seedMenuItem(t, db, "Es Teh", 5000)

	assert.ErrorIs(t, svc.AddItem(ctx, user.ID, item.ID, 0), ErrQuantityInvalid)
	assert.ErrorIs(t, svc.AddItem(ctx, user.ID, item.ID, -1), ErrQuantityInvalid)
}

func TestCartAddUnknownMenuItem(t *testing.T) {
	db := testDB(t)
	svc := NewCartService(db)

	user := seedUser(t, db, "unknown@test.local")
	assert.ErrorIs(t, svc.AddItem(context.Background(), user.ID, 9999, 1), ErrMenuItemNotFound)
}

func TestCartOwnershipGuard(t *testing.T) {
	db := testDB(t)
	svc := NewCartService(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@test.local")
	other := seedUser(t, db, "other@test.local")
	item := seedMenuItem(t, db, "Sate Ayam", 35000)

	require.NoError(t, svc.AddItem(ctx, owner.ID, item.ID, 1))

	snap, err := svc.Snapshot(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	cartItemID := snap.Items[0].ID

	assert.ErrorIs(t, svc.UpdateItemQuantity(ctx, other.ID, cartItemID, 5), ErrCartItemNotOwned)
	assert.ErrorIs(t, svc.RemoveItem(ctx, other.ID, cartItemID), ErrCartItemNotOwned)
	assert.ErrorIs(t, svc.RemoveItem(ctx, owner.ID, 9999), ErrCartItemNotFound)

	// The owner path still works.
	require.NoError(t, svc.UpdateItemQuantity(ctx, owner.ID, cartItemID, 4))
	snap, err = svc.Snapshot(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Items[0].Quantity)
}

func TestCartLookupFailureIsNotOwnershipError(t *testing.T) {
	db := testDB(t)
	svc := NewCartService(db)
	ctx := context.Background()

	owner := seedUser(t, db, "dbfail@test.local")
	item := seedMenuItem(t, db, "Nasi Uduk", 15000)
	require.NoError(t, svc.AddItem(ctx, owner.ID, item.ID, 1))

	snap, err := svc.Snapshot(ctx, owner.ID)
	require.NoError(t, err)
	cartItemID := snap.Items[0].ID

	// Break the carts table so the ownership lookup fails with a real
	// database error rather than a missing row.
	require.NoError(t, db.Migrator().DropTable(&domain.Cart{}))

	err = svc.UpdateItemQuantity(ctx, owner.ID, cartItemID, 2)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCartItemNotOwned)
	assert.NotErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartClearKeepsCartRow(t *testing.T) {
	db := testDB(t)
	svc := NewCartService(db)
	ctx := context.Background()

	user := seedUser(t, db, "clear@test.local")
	item := seedMenuItem(t, db, "Bakso", 20000)

	require.NoError(t, svc.AddItem(ctx, user.ID, item.ID, 2))
	require.NoError(t, svc.Clear(ctx, user.ID))

	snap, err := svc.Snapshot(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
	assert.Zero(t, snap.Total)

	var carts int64
	db.Model(&domain.Cart{}).Where("user_id = ?", user.ID).Count(&carts)
	assert.EqualValues(t, 1, carts)
}

func TestGetOrCreateCartIdempotent(t *testing.T) {
	db := testDB(t)
	svc := NewCartService(db)
	ctx := context.Background()

	user := seedUser(t, db, "idem@test.local")
	first, err := svc.GetOrCreateCart(ctx, user.ID)
	require.NoError(t, err)
	second, err := svc.GetOrCreateCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
