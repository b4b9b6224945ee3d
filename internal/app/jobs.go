package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vitalhub/storefront/internal/domain"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	if loc == nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithParser(cronParser), cron.WithLocation(loc))

	// Abandoned carts accumulate forever otherwise; purge lines untouched
	// for the configured number of days.
	_, err := a.sched.AddFunc("@daily", a.purgeStaleCarts)
	if err != nil {
		zap.L().Error("failed to schedule cart purge job", zap.Error(err))
	}

	_, err = a.sched.AddFunc("@daily", a.logPendingBargains)
	if err != nil {
		zap.L().Error("failed to schedule bargain digest job", zap.Error(err))
	}

	a.sched.Start()
}

func (a *Application) purgeStaleCarts() {
	days := a.GetSettingsInt64Value(SettingsTypeCart, KeyCartPurgeDays)
	if days <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -int(days))
	purged, err := a.store.PurgeStaleCarts(ctx, cutoff)
	if err != nil {
		zap.L().Error("stale cart purge failed", zap.Error(err))
		return
	}
	if purged > 0 {
		zap.L().Info("purged stale cart lines",
			zap.Int64("count", purged),
			zap.Time("cutoff", cutoff))
	}
}

// logPendingBargains surfaces unanswered offers in the daily log so an
// operator watching logs notices a growing backlog.
func (a *Application) logPendingBargains() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	offers, err := a.store.ListOffers(ctx, domain.BargainStatusPending)
	if err != nil {
		zap.L().Error("bargain digest failed", zap.Error(err))
		return
	}
	if len(offers) > 0 {
		zap.L().Info("pending bargain offers awaiting response", zap.Int("count", len(offers)))
	}
}
