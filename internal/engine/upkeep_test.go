package engine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jessysellshomes/card-value-backend/internal/ebay"
	"github.com/jessysellshomes/card-value-backend/internal/metrics"
)

type fakeTokens struct {
	token string
	err   error
	calls int
}

func (f *fakeTokens) Token(context.Context) (string, error) {
	f.calls++
	return f.token, f.err
}

type fakeQuota struct {
	state *ebay.QuotaState
	err   error
	calls int
}

func (f *fakeQuota) GetBrowseQuota(context.Context) (*ebay.QuotaState, error) {
	f.calls++
	return f.state, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestNewUpkeep_RegistersCronEntries(t *testing.T) {
	t.Parallel()

	u, err := NewUpkeep(
		&fakeTokens{token: "t"},
		&fakeQuota{},
		30*time.Minute,
		6*time.Hour,
		quietLogger(),
	)
	require.NoError(t, err)
	assert.Len(t, u.Entries(), 2)
}

func TestNewUpkeep_NilQuotaSkipsQuotaTask(t *testing.T) {
	t.Parallel()

	u, err := NewUpkeep(
		&fakeTokens{token: "t"},
		nil,
		30*time.Minute,
		6*time.Hour,
		quietLogger(),
	)
	require.NoError(t, err)
	assert.Len(t, u.Entries(), 1)
}

func TestUpkeep_StartStop(t *testing.T) {
	t.Parallel()

	u, err := NewUpkeep(
		&fakeTokens{token: "t"},
		&fakeQuota{},
		1*time.Hour,
		24*time.Hour,
		quietLogger(),
	)
	require.NoError(t, err)

	u.Start()
	ctx := u.Stop()
	<-ctx.Done()
}

func TestUpkeep_KeepTokenWarm(t *testing.T) {
	t.Parallel()

	tokens := &fakeTokens{token: "t"}
	u, err := NewUpkeep(tokens, nil, time.Hour, time.Hour, quietLogger())
	require.NoError(t, err)

	u.keepTokenWarm()
	assert.Equal(t, 1, tokens.calls)
}

func TestUpkeep_KeepTokenWarmLogsFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	tokens := &fakeTokens{err: errors.New("auth down")}
	u, err := NewUpkeep(tokens, nil, time.Hour, time.Hour, log)
	require.NoError(t, err)

	u.keepTokenWarm()
	assert.Contains(t, buf.String(), "token keep-warm failed")
	assert.Contains(t, buf.String(), "auth down")
}

func TestUpkeep_LogQuota(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	quota := &fakeQuota{state: &ebay.QuotaState{
		Count:     1200,
		Limit:     5000,
		Remaining: 3800,
		ResetAt:   time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}}
	u, err := NewUpkeep(&fakeTokens{token: "t"}, quota, time.Hour, time.Hour, log)
	require.NoError(t, err)

	u.logQuota()

	assert.Equal(t, 1, quota.calls)
	assert.Contains(t, buf.String(), "browse quota")
	assert.Contains(t, buf.String(), "remaining=3800")

	gm := &io_prometheus_client.Metric{}
	require.NoError(t, metrics.EbayQuotaRemaining.Write(gm))
	assert.InDelta(t, 3800, gm.GetGauge().GetValue(), 0)
}

func TestUpkeep_LogQuotaFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	quota := &fakeQuota{err: errors.New("analytics 500")}
	u, err := NewUpkeep(&fakeTokens{token: "t"}, quota, time.Hour, time.Hour, log)
	require.NoError(t, err)

	u.logQuota()
	assert.Contains(t, buf.String(), "quota check failed")
}
