package restapi

import (
	"net/http"
	"testing"

	"github.com/restokit/restopos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMenuItemAutoHidesOutOfStock(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)

	category := domain.Category{Name: "Makanan"}
	require.NoError(t, env.db.Create(&category).Error)

	c, rec := env.newContext(t, http.MethodPost, "/api/menu-items",
		`{"category_id":1,"title":"Rendang","price":40000,"stock":0}`, admin)
	require.NoError(t, createMenuItem(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var row domain.MenuItem
	require.NoError(t, env.db.Where("title = ?", "Rendang").First(&row).Error)
	assert.Equal(t, domain.MenuStatusHidden, row.Status)
}

func TestCreateMenuItemExplicitStatusWins(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)

	category := domain.Category{Name: "Makanan"}
	require.NoError(t, env.db.Create(&category).Error)

	c, rec := env.newContext(t, http.MethodPost, "/api/menu-items",
		`{"category_id":1,"title":"Pre-order Tumpeng","price":250000,"stock":0,"status":"available"}`, admin)
	require.NoError(t, createMenuItem(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var row domain.MenuItem
	require.NoError(t, env.db.Where("title = ?", "Pre-order Tumpeng").First(&row).Error)
	assert.Equal(t, domain.MenuStatusAvailable, row.Status)
}

func TestCreateMenuItemUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)

	c, rec := env.newContext(t, http.MethodPost, "/api/menu-items",
		`{"category_id":42,"title":"Ghost Dish","price":1000,"stock":5}`, admin)
	require.NoError(t, createMenuItem(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestToggleMenuItemStatusBypassesStockRule(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)

	category := domain.Category{Name: "Minuman"}
	require.NoError(t, env.db.Create(&category).Error)
	item := domain.MenuItem{
		CategoryID: category.ID, Title: "Jus Alpukat", Price: 15000, Stock: 0,
		Status: domain.MenuStatusHidden,
	}
	require.NoError(t, env.db.Create(&item).Error)

	c, rec := env.newContext(t, http.MethodPut, "/api/menu-items/1/toggle-status", "", admin)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, toggleMenuItemStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var row domain.MenuItem
	require.NoError(t, env.db.First(&row, item.ID).Error)
	assert.Equal(t, domain.MenuStatusAvailable, row.Status)
}

func TestDeleteMenuItemHidesInsteadOfRemoving(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)

	category := domain.Category{Name: "Cemilan"}
	require.NoError(t, env.db.Create(&category).Error)
	item := domain.MenuItem{
		CategoryID: category.ID, Title: "Pisang Goreng", Price: 10000, Stock: 20,
		Status: domain.MenuStatusAvailable,
	}
	require.NoError(t, env.db.Create(&item).Error)

	c, rec := env.newContext(t, http.MethodDelete, "/api/menu-items/1", "", admin)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, deleteMenuItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var row domain.MenuItem
	require.NoError(t, env.db.First(&row, item.ID).Error)
	assert.Equal(t, domain.MenuStatusHidden, row.Status)
}
