// Package engine runs the service's periodic upkeep tasks.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jessysellshomes/card-value-backend/internal/ebay"
	"github.com/jessysellshomes/card-value-backend/internal/metrics"
)

// QuotaFetcher reports the remaining Browse API quota.
type QuotaFetcher interface {
	GetBrowseQuota(ctx context.Context) (*ebay.QuotaState, error)
}

// Upkeep schedules background maintenance: keeping the OAuth token warm so
// the first request after an idle period does not pay the refresh latency,
// and periodically logging the remaining daily Browse quota.
type Upkeep struct {
	cron   *cron.Cron
	tokens ebay.TokenProvider
	quota  QuotaFetcher
	log    *slog.Logger
}

// NewUpkeep creates an Upkeep with both tasks registered. A nil quota
// fetcher skips quota logging entirely.
func NewUpkeep(
	tokens ebay.TokenProvider,
	quota QuotaFetcher,
	keepwarmInterval time.Duration,
	quotaLogInterval time.Duration,
	log *slog.Logger,
) (*Upkeep, error) {
	u := &Upkeep{
		cron:   cron.New(),
		tokens: tokens,
		quota:  quota,
		log:    log,
	}

	if _, err := u.cron.AddFunc(
		"@every "+keepwarmInterval.String(),
		u.keepTokenWarm,
	); err != nil {
		return nil, err
	}

	if quota != nil {
		if _, err := u.cron.AddFunc(
			"@every "+quotaLogInterval.String(),
			u.logQuota,
		); err != nil {
			return nil, err
		}
	}

	return u, nil
}

// Start begins running upkeep tasks.
func (u *Upkeep) Start() {
	u.log.Info("upkeep started")
	u.cron.Start()
}

// Stop gracefully stops the upkeep loop, waiting for running jobs to finish.
func (u *Upkeep) Stop() context.Context {
	u.log.Info("upkeep stopping")
	return u.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (u *Upkeep) Entries() []cron.Entry {
	return u.cron.Entries()
}

func (u *Upkeep) keepTokenWarm() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := u.tokens.Token(ctx); err != nil {
		u.log.Error("token keep-warm failed", "error", err)
		return
	}
	u.log.Debug("token keep-warm ok")
}

func (u *Upkeep) logQuota() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	state, err := u.quota.GetBrowseQuota(ctx)
	if err != nil {
		u.log.Error("quota check failed", "error", err)
		return
	}

	metrics.EbayQuotaRemaining.Set(float64(state.Remaining))

	u.log.Info("browse quota",
		"used", state.Count,
		"limit", state.Limit,
		"remaining", state.Remaining,
		"resets_at", state.ResetAt.Format(time.RFC3339),
	)
}
