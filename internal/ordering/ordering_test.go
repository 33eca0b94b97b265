package ordering

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/restokit/restopos/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func seedMenuItem(t *testing.T, db *gorm.DB, title string, price float64) *domain.MenuItem {
	t.Helper()
	category := domain.Category{Name: "Test " + title}
	require.NoError(t, db.Create(&category).Error)
	item := domain.MenuItem{
		CategoryID: category.ID,
		Title:      title,
		Price:      price,
		Stock:      100,
		Status:     domain.MenuStatusAvailable,
	}
	require.NoError(t, db.Create(&item).Error)
	return &item
}

func seedUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()
	user := domain.User{Name: "Tester", Email: email, Role: domain.RoleCustomer}
	require.NoError(t, db.Create(&user).Error)
	return &user
}
