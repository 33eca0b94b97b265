package restapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/restokit/restopos/internal/domain"
	"github.com/restokit/restopos/internal/ordering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutEmptyCartReturns400(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedCustomer(t, "empty@test.local")

	c, rec := env.newContext(t, http.MethodPost, "/api/checkout", `{}`, customer)
	require.NoError(t, checkout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateForeignCartItemReturns403(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedCustomer(t, "owner@test.local")
	intruder := env.seedCustomer(t, "intruder@test.local")

	category := domain.Category{Name: "Makanan"}
	require.NoError(t, env.db.Create(&category).Error)
	item := domain.MenuItem{
		CategoryID: category.ID, Title: "Soto", Price: 18000, Stock: 10,
		Status: domain.MenuStatusAvailable,
	}
	require.NoError(t, env.db.Create(&item).Error)

	svc := ordering.NewCartService(env.db)
	require.NoError(t, svc.AddItem(context.Background(), owner.ID, item.ID, 1))

	c, rec := env.newContext(t, http.MethodPut, "/api/cart/items/1",
		`{"quantity":5}`, intruder)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, updateCartItem(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAddCartItemUnknownMenuItemReturns422(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedCustomer(t, "ghost@test.local")

	c, rec := env.newContext(t, http.MethodPost, "/api/cart/items",
		`{"menu_item_id":999,"quantity":1}`, customer)
	require.NoError(t, addCartItem(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCheckoutThroughHandler(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedCustomer(t, "buyer@test.local")

	category := domain.Category{Name: "Makanan"}
	require.NoError(t, env.db.Create(&category).Error)
	item := domain.MenuItem{
		CategoryID: category.ID, Title: "Gado-gado", Price: 20000, Stock: 10,
		Status: domain.MenuStatusAvailable,
	}
	require.NoError(t, env.db.Create(&item).Error)

	svc := ordering.NewCartService(env.db)
	require.NoError(t, svc.AddItem(context.Background(), customer.ID, item.ID, 2))

	c, rec := env.newContext(t, http.MethodPost, "/api/checkout",
		`{"order_type":"takeaway","notes":"extra sambal"}`, customer)
	require.NoError(t, checkout(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order domain.Order
	require.NoError(t, env.db.First(&order).Error)
	assert.Equal(t, 40000.0, order.TotalAmount)
	assert.Equal(t, domain.OrderTypeTakeaway, order.OrderType)
	assert.Equal(t, "extra sambal", order.Notes)
}
