package reporting

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/restokit/restopos/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DashboardService derives the back-office metrics from committed orders.
// Revenue figures count paid orders only; pending and cancelled payments
// never contribute.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DailyMetrics is the headline row of the dashboard.
type DailyMetrics struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TransactionsCount int64   `json:"transactions_count"`
	AvgPerTxn         float64 `json:"avg_per_txn"`
}

// TopProduct is one entry of the best-seller ranking.
type TopProduct struct {
	MenuItemID int64   `json:"menu_item_id"`
	Title      string  `json:"title"`
	TotalSold  int64   `json:"total_sold"`
	Revenue    float64 `json:"revenue"`
}

// RecentTransaction is one row of the latest-orders feed.
type RecentTransaction struct {
	ID            int64     `json:"id"`
	OrderNumber   string    `json:"order_number"`
	CustomerName  string    `json:"customer_name"`
	TotalAmount   float64   `json:"total_amount"`
	PaymentStatus string    `json:"payment_status"`
	OrderStatus   string    `json:"order_status"`
	ItemsCount    int64     `json:"items_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// DailyRevenue is one point of the monthly revenue series.
type DailyRevenue struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
}

// ProductStat is one row of the best-selling and favorites reports.
type ProductStat struct {
	MenuItemID   int64   `json:"menu_item_id"`
	Title        string  `json:"title"`
	CategoryName string  `json:"category_name"`
	Price        float64 `json:"price"`
	TotalSold    int64   `json:"total_sold"`
	TotalRevenue float64 `json:"total_revenue"`
	OrderCount   int64   `json:"order_count"`
}

// Daily computes revenue, transaction count and average ticket for one
// calendar day. A day with no paid orders yields all zeros.
func (s *DashboardService) Daily(ctx context.Context, day time.Time) (*DailyMetrics, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var row struct {
		Revenue float64
		Count   int64
	}
	err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS count").
		Where("payment_status = ?", domain.PaymentStatusPaid).
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&row).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "daily metrics")
	}

	m := &DailyMetrics{TotalRevenue: row.Revenue, TransactionsCount: row.Count}
	if row.Count > 0 {
		m.AvgPerTxn = row.Revenue / float64(row.Count)
	}
	return m, nil
}

// TopProducts ranks menu items by units sold in paid orders over the last
// windowDays days.
func (s *DashboardService) TopProducts(ctx context.Context, windowDays, limit int) ([]TopProduct, error) {
	if windowDays < 1 {
		windowDays = 7
	}
	if limit < 1 {
		limit = 5
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	var rows []TopProduct
	err := s.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.menu_item_id, menu_items.title, "+
			"SUM(order_items.quantity) AS total_sold, "+
			"SUM(order_items.subtotal) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("orders.payment_status = ?", domain.PaymentStatusPaid).
		Where("orders.created_at >= ?", since).
		Group("order_items.menu_item_id, menu_items.title").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "top products")
	}
	return rows, nil
}

// RecentTransactions returns the latest paid orders with the customer
// name and line count resolved.
func (s *DashboardService) RecentTransactions(ctx context.Context, limit int) ([]RecentTransaction, error) {
	if limit < 1 {
		limit = 10
	}

	var rows []RecentTransaction
	err := s.db.WithContext(ctx).
		Table("orders").
		Where("orders.payment_status = ?", domain.PaymentStatusPaid).
		Select("orders.id, orders.order_number, "+
			"COALESCE(users.name, '') AS customer_name, "+
			"orders.total_amount, orders.payment_status, orders.order_status, "+
			"(SELECT COUNT(*) FROM order_items WHERE order_items.order_id = orders.id) AS items_count, "+
			"orders.created_at").
		Joins("LEFT JOIN users ON users.id = orders.user_id").
		Order("orders.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "recent transactions")
	}
	return rows, nil
}

// MonthlyRevenue returns one revenue point per day of the given month,
// paid orders only. Days without sales appear with zero revenue so the
// series always spans the full month.
func (s *DashboardService) MonthlyRevenue(ctx context.Context, month, year int) ([]DailyRevenue, error) {
	month, year = clampMonthYear(month, year)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var rows []DailyRevenue
	err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Select("DATE(created_at) AS day, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("payment_status = ?", domain.PaymentStatusPaid).
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("DATE(created_at)").
		Order("day").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "monthly revenue")
	}

	byDay := make(map[string]float64, len(rows))
	for _, r := range rows {
		byDay[r.Day] = r.Revenue
	}

	series := make([]DailyRevenue, 0, 31)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		series = append(series, DailyRevenue{Day: key, Revenue: byDay[key]})
	}
	return series, nil
}

// BestSelling ranks menu items by units sold. Month and year narrow the
// window when both are valid; paymentStatus defaults to paid.
func (s *DashboardService) BestSelling(ctx context.Context, month, year int, paymentStatus string, limit int) ([]ProductStat, error) {
	if limit < 1 {
		limit = 5
	}
	if paymentStatus == "" {
		paymentStatus = domain.PaymentStatusPaid
	}

	query := s.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.menu_item_id, menu_items.title, "+
			"COALESCE(categories.name, '') AS category_name, menu_items.price, "+
			"SUM(order_items.quantity) AS total_sold, "+
			"SUM(order_items.subtotal) AS total_revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Joins("LEFT JOIN categories ON categories.id = menu_items.category_id").
		Where("orders.payment_status = ?", paymentStatus)
	query = scopeMonth(query, month, year)

	var rows []ProductStat
	err := query.
		Group("order_items.menu_item_id, menu_items.title, categories.name, menu_items.price").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "best selling")
	}
	return rows, nil
}

// Favorites ranks menu items by how many distinct orders contain them.
func (s *DashboardService) Favorites(ctx context.Context, month, year int, paymentStatus string, limit int) ([]ProductStat, error) {
	if limit < 1 {
		limit = 5
	}
	if paymentStatus == "" {
		paymentStatus = domain.PaymentStatusPaid
	}

	query := s.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.menu_item_id, menu_items.title, "+
			"COALESCE(categories.name, '') AS category_name, menu_items.price, "+
			"COUNT(DISTINCT orders.id) AS order_count, "+
			"SUM(order_items.quantity) AS total_sold").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Joins("LEFT JOIN categories ON categories.id = menu_items.category_id").
		Where("orders.payment_status = ?", paymentStatus)
	query = scopeMonth(query, month, year)

	var rows []ProductStat
	err := query.
		Group("order_items.menu_item_id, menu_items.title, categories.name, menu_items.price").
		Order("order_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "favorites")
	}
	return rows, nil
}

// Overview is the composite payload behind the dashboard page. Partial
// failures degrade to empty sections rather than failing the whole page.
type Overview struct {
	Metrics            *DailyMetrics       `json:"metrics"`
	TopProducts        []TopProduct        `json:"top_products"`
	RecentTransactions []RecentTransaction `json:"recent_transactions"`
	MonthlyData        []DailyRevenue      `json:"monthly_data"`
	PreviousMonthData  []DailyRevenue      `json:"previous_month_data"`
	SelectedMonth      int                 `json:"selected_month"`
	SelectedYear       int                 `json:"selected_year"`
}

// BuildOverview assembles the full dashboard payload for the given month.
func (s *DashboardService) BuildOverview(ctx context.Context, month, year int) *Overview {
	month, year = clampMonthYear(month, year)
	ov := &Overview{SelectedMonth: month, SelectedYear: year}

	var err error
	if ov.Metrics, err = s.Daily(ctx, time.Now()); err != nil {
		zap.L().Warn("dashboard daily metrics failed", zap.Error(err))
		ov.Metrics = &DailyMetrics{}
	}
	if ov.TopProducts, err = s.TopProducts(ctx, 7, 5); err != nil {
		zap.L().Warn("dashboard top products failed", zap.Error(err))
		ov.TopProducts = []TopProduct{}
	}
	if ov.RecentTransactions, err = s.RecentTransactions(ctx, 10); err != nil {
		zap.L().Warn("dashboard recent transactions failed", zap.Error(err))
		ov.RecentTransactions = []RecentTransaction{}
	}
	if ov.MonthlyData, err = s.MonthlyRevenue(ctx, month, year); err != nil {
		zap.L().Warn("dashboard monthly revenue failed", zap.Error(err))
		ov.MonthlyData = []DailyRevenue{}
	}

	prevMonth, prevYear := month-1, year
	if prevMonth < 1 {
		prevMonth, prevYear = 12, year-1
	}
	if ov.PreviousMonthData, err = s.MonthlyRevenue(ctx, prevMonth, prevYear); err != nil {
		zap.L().Warn("dashboard previous month revenue failed", zap.Error(err))
		ov.PreviousMonthData = []DailyRevenue{}
	}

	return ov
}

// scopeMonth narrows query to one calendar month when both values are valid.
func scopeMonth(query *gorm.DB, month, year int) *gorm.DB {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return query
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)
	return query.Where("orders.created_at >= ? AND orders.created_at < ?", start, end)
}

// clampMonthYear falls back to the current month for out-of-range input.
func clampMonthYear(month, year int) (int, int) {
	now := time.Now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year < 2000 || year > 2100 {
		year = now.Year()
	}
	return month, year
}
