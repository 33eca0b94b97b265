package app

import (
	"time"

	"github.com/restokit/restopos/internal/domain"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err = a.sched.AddFunc("@every 5m", func() {
		a.SchedExpireReservations()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedCleanStaleCarts()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedExpireReservations cancels pending reservations whose date has
// passed and releases the tables they were holding.
func (a *Application) SchedExpireReservations() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	cutoff := time.Now().Truncate(24 * time.Hour)

	var expired []domain.Reservation
	a.gormDB.
		Where("status = ? AND reservation_date < ?", domain.ReservationStatusPending, cutoff).
		Find(&expired)

	for _, res := range expired {
		err := a.gormDB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&domain.Reservation{}).Where("id = ?", res.ID).
				Update("status", domain.ReservationStatusCancelled).Error; err != nil {
				return err
			}
			return tx.Model(&domain.DiningTable{}).
				Where("id = ? AND status = ?", res.TableID, domain.TableStatusReserved).
				Update("status", domain.TableStatusAvailable).Error
		})
		if err != nil {
			zap.L().Error("failed to expire reservation",
				zap.Int64("reservation_id", res.ID), zap.Error(err))
			continue
		}
		zap.L().Info("expired stale reservation",
			zap.Int64("reservation_id", res.ID), zap.Int64("table_id", res.TableID))
	}
}

// SchedCleanStaleCarts removes cart items that have not been touched for
// 30 days. The cart rows themselves persist.
func (a *Application) SchedCleanStaleCarts() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	a.gormDB.
		Where("updated_at < ?", time.Now().Add(-time.Hour*24*30)).
		Delete(&domain.CartItem{})
}
