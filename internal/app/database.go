package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/restokit/restopos/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func getDatabase(cfg *config.AppConfig) *gorm.DB {
	dbc := cfg.Database

	loglevel := logger.Silent
	if dbc.Debug {
		loglevel = logger.Info
	}

	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         logger.Default.LogMode(loglevel),
	}

	var dialector gorm.Dialector
	switch dbc.Type {
	case "sqlite":
		dialector = sqlite.Open(filepath.Join(cfg.GetDataDir(), dbc.Name+".db"))
	default:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=%s",
			dbc.Host, dbc.User, dbc.Passwd, dbc.Name, dbc.Port, time.Local.String())
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		zap.S().Panicf("failed to connect %s database: %v", dbc.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Panicf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(dbc.MaxConn)
	sqlDB.SetMaxIdleConns(dbc.IdleConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}
