package comps

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	domain "github.com/jessysellshomes/card-value-backend/pkg/types"
)

// defaultMaxConcurrentBuckets bounds the multi-bucket fan-out so one request
// cannot monopolize the upstream rate budget.
const defaultMaxConcurrentBuckets = 4

// Coordinator fans the orchestrator out across a list of buckets. Buckets
// are independent: a failed bucket degrades to an error entry instead of
// failing the whole request.
type Coordinator struct {
	orch          *Orchestrator
	maxConcurrent int
	log           *slog.Logger
}

// CoordinatorOption configures the Coordinator.
type CoordinatorOption func(*Coordinator)

// WithMaxConcurrentBuckets bounds the concurrent bucket searches.
func WithMaxConcurrentBuckets(n int) CoordinatorOption {
	return func(c *Coordinator) {
		c.maxConcurrent = n
	}
}

// WithCoordinatorLogger sets a custom logger.
func WithCoordinatorLogger(l *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.log = l
	}
}

// NewCoordinator creates a Coordinator over the given orchestrator.
func NewCoordinator(orch *Orchestrator, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		orch:          orch,
		maxConcurrent: defaultMaxConcurrentBuckets,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MultiSearch holds the parameters shared across all buckets of one request.
type MultiSearch struct {
	Buckets             []domain.Bucket
	Tightness           domain.Tightness
	BuyingOptions       []domain.BuyingOption
	MaxResultsPerBucket int
}

// Run searches every requested bucket and returns the per-bucket results.
// Omitted buckets fall back to the domain default set; the list is capped
// at the fan-out guardrail either way.
func (c *Coordinator) Run(
	ctx context.Context,
	identity domain.CardIdentity,
	req MultiSearch,
) map[domain.Bucket]domain.BucketResult {
	buckets := req.Buckets
	if len(buckets) == 0 {
		buckets = DefaultBuckets(identity)
	}
	buckets = CapBuckets(buckets)

	var (
		mu      sync.Mutex
		results = make(map[domain.Bucket]domain.BucketResult, len(buckets))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrent)

	for _, bucket := range buckets {
		bucket := bucket
		g.Go(func() error {
			result, err := c.orch.SearchBucket(gctx, identity, BucketSearch{
				Bucket:        bucket,
				Tightness:     req.Tightness,
				BuyingOptions: req.BuyingOptions,
				MaxResults:    req.MaxResultsPerBucket,
			})
			if err != nil {
				c.log.Warn("bucket search failed",
					"bucket", bucket,
					"error", err,
				)
				result = &domain.BucketResult{
					Summary: domain.BucketSummary{
						Confidence: domain.ConfidenceLow,
						Notes:      []string{"search failed for this bucket"},
					},
					Error: err.Error(),
				}
			}

			mu.Lock()
			results[bucket] = *result
			mu.Unlock()
			return nil
		})
	}

	// Goroutines never return errors; failures degrade to error entries.
	_ = g.Wait() //nolint:errcheck

	return results
}
