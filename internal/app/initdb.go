package app

import (
	"errors"
	"strings"
	"time"

	"github.com/restokit/restopos/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func (a *Application) checkSuper() {
	const superEmail = "admin@restopos.local"
	const defaultPassword = "restopos"

	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("failed to hash default admin password", zap.Error(err))
		return
	}

	var admin domain.User
	err = a.gormDB.Where("email = ?", superEmail).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.User{
			Name:     "Administrator",
			Email:    superEmail,
			Password: string(hashed),
			Role:     domain.RoleAdmin,
		}).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("email", superEmail))
		}
		return
	case err != nil:
		zap.L().Error("failed to query default admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(admin.Password) == ""
	resetRole := admin.Role != domain.RoleAdmin

	if !resetPassword && !resetRole {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = string(hashed)
	}
	if resetRole {
		updates["role"] = domain.RoleAdmin
	}

	if err := a.gormDB.Model(&domain.User{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair default admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default admin account",
		zap.String("email", superEmail),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("roleReset", resetRole))
}

// checkCategories initializes default catalog categories
func (a *Application) checkCategories() {
	defaultCategories := []domain.Category{
		{Name: "Makanan", Icon: "🍛"},
		{Name: "Minuman", Icon: "🥤"},
		{Name: "Cemilan", Icon: "🍟"},
		{Name: "Dessert", Icon: "🍰"},
	}

	for _, cat := range defaultCategories {
		var count int64
		a.gormDB.Model(&domain.Category{}).Where("name = ?", cat.Name).Count(&count)
		if count == 0 {
			cat.CreatedAt = time.Now()
			cat.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&cat).Error; err != nil {
				zap.L().Error("failed to create default category", zap.String("name", cat.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default category", zap.String("name", cat.Name))
			}
		}
	}
}

// checkDiningTables initializes default dining tables
func (a *Application) checkDiningTables() {
	defaultTables := []domain.DiningTable{
		{TableNumber: "T01", Capacity: 2, Location: "indoor", Status: domain.TableStatusAvailable},
		{TableNumber: "T02", Capacity: 4, Location: "indoor", Status: domain.TableStatusAvailable},
		{TableNumber: "T03", Capacity: 4, Location: "outdoor", Status: domain.TableStatusAvailable},
		{TableNumber: "T04", Capacity: 8, Location: "outdoor", Status: domain.TableStatusAvailable},
	}

	for _, tbl := range defaultTables {
		var count int64
		a.gormDB.Model(&domain.DiningTable{}).Where("table_number = ?", tbl.TableNumber).Count(&count)
		if count == 0 {
			tbl.CreatedAt = time.Now()
			tbl.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&tbl).Error; err != nil {
				zap.L().Error("failed to create default table", zap.String("table_number", tbl.TableNumber), zap.Error(err))
			} else {
				zap.L().Info("initialized default table", zap.String("table_number", tbl.TableNumber))
			}
		}
	}
}
