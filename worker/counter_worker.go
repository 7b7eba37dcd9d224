package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crmdesk/models"
)

// CounterWorker keeps the per-leader registered-client counters in sync and
// sweeps referral clicks that never converted.
type CounterWorker struct {
	DB       *gorm.DB
	Logger   *logrus.Logger
	Interval time.Duration
	StaleAge time.Duration
}

func NewCounterWorker(db *gorm.DB, logger *logrus.Logger) *CounterWorker {
	return &CounterWorker{
		DB:       db,
		Logger:   logger,
		Interval: 5 * time.Minute,
		StaleAge: 24 * time.Hour,
	}
}

func (cw *CounterWorker) Start(ctx context.Context) {
	// Initial delay to let the server start up
	select {
	case <-ctx.Done():
		return
	case <-time.After(10 * time.Second):
	}

	cw.Logger.Info("counter worker started")

	ticker := time.NewTicker(cw.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cw.Logger.Info("counter worker shutting down")
			return
		case <-ticker.C:
			cw.syncLeaderCounters()
			cw.sweepStaleClicks()
		}
	}
}

// syncLeaderCounters recomputes RegisteredClientCount from the clients table.
// Counters drift when clients are imported, deleted, or reassigned.
func (cw *CounterWorker) syncLeaderCounters() {
	var leaders []models.User
	if err := cw.DB.Where("leader_code <> ''").Find(&leaders).Error; err != nil {
		cw.Logger.WithError(err).Error("failed to fetch leaders for counter sync")
		return
	}

	for _, leader := range leaders {
		var count int64
		if err := cw.DB.Model(&models.Client{}).
			Where("leader_code = ?", leader.LeaderCode).
			Count(&count).Error; err != nil {
			cw.Logger.WithError(err).WithField("leaderCode", leader.LeaderCode).
				Error("failed to count clients for leader")
			continue
		}

		if leader.RegisteredClientCount == int(count) {
			continue
		}

		if err := cw.DB.Model(&models.User{}).
			Where("id = ?", leader.ID).
			Update("registered_client_count", count).Error; err != nil {
			cw.Logger.WithError(err).WithField("leaderCode", leader.LeaderCode).
				Error("failed to update leader counter")
			continue
		}

		cw.Logger.WithFields(logrus.Fields{
			"leaderCode": leader.LeaderCode,
			"from":       leader.RegisteredClientCount,
			"to":         count,
		}).Info("leader client counter synced")
	}
}

// sweepStaleClicks drops inComplete clicks older than StaleAge. A visit that
// never registered within a day is abandoned, not pending.
func (cw *CounterWorker) sweepStaleClicks() {
	cutoff := time.Now().Add(-cw.StaleAge)

	result := cw.DB.Where("status = ? AND created_at < ?", models.LinkclickInComplete, cutoff).
		Delete(&models.Linkclick{})
	if result.Error != nil {
		cw.Logger.WithError(result.Error).Error("failed to sweep stale link clicks")
		return
	}

	if result.RowsAffected > 0 {
		cw.Logger.WithField("swept", result.RowsAffected).Info("stale link clicks removed")
	}
}
