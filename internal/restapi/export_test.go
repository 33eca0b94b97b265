package restapi

import (
	"net/http"
	"strings"
	"testing"

	"github.com/restokit/restopos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportOrdersCSV(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)

	customer := env.seedCustomer(t, "export@test.local")
	order := domain.Order{
		UserID:        &customer.ID,
		OrderNumber:   "ORD-20260101-0001",
		OrderType:     domain.OrderTypeDineIn,
		TotalAmount:   75000,
		PaymentStatus: domain.PaymentStatusPaid,
		OrderStatus:   domain.OrderStatusCompleted,
	}
	require.NoError(t, env.db.Create(&order).Error)

	c, rec := env.newContext(t, http.MethodGet, "/api/orders/export?format=csv", "", admin)
	require.NoError(t, exportOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")

	body := rec.Body.String()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "order_number")
	assert.Contains(t, lines[1], "ORD-20260101-0001")
	assert.Contains(t, lines[1], "Customer")
	assert.Contains(t, lines[1], "75000")
}

func TestExportOrdersXLSXHeaders(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)

	c, rec := env.newContext(t, http.MethodGet, "/api/orders/export", "", admin)
	require.NoError(t, exportOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, rec.Body.Len())
}
