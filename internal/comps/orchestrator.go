package comps

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jessysellshomes/card-value-backend/internal/ebay"
	"github.com/jessysellshomes/card-value-backend/internal/metrics"
	domain "github.com/jessysellshomes/card-value-backend/pkg/types"
)

const (
	// DefaultBroadenThreshold is the comp count below which the orchestrator
	// loosens the identity and searches once more.
	DefaultBroadenThreshold = 6

	// defaultSampleCompLimit caps the comps echoed back per bucket.
	defaultSampleCompLimit = 12

	// Result count clamp for a single bucket search.
	minSearchResults = 5
	maxSearchResults = 200

	// defaultSearchResults is used when the caller does not ask for a count.
	defaultSearchResults = 50
)

// Orchestrator runs the per-bucket search state machine: build query, search,
// normalize, and — when the sample is too thin — broaden once and retry.
type Orchestrator struct {
	client ebay.EbayClient
	log    *slog.Logger

	broadenThreshold int
	trimPct          float64
	sampleCompLimit  int
}

// OrchestratorOption configures the Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.log = l
	}
}

// WithBroadenThreshold overrides the broadening trigger.
func WithBroadenThreshold(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		o.broadenThreshold = n
	}
}

// WithTrimPct overrides the range trim fraction.
func WithTrimPct(pct float64) OrchestratorOption {
	return func(o *Orchestrator) {
		o.trimPct = pct
	}
}

// WithSampleCompLimit overrides the per-bucket comp sample cap.
func WithSampleCompLimit(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		o.sampleCompLimit = n
	}
}

// NewOrchestrator creates an Orchestrator backed by the given search client.
func NewOrchestrator(client ebay.EbayClient, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		client:           client,
		log:              slog.Default(),
		broadenThreshold: DefaultBroadenThreshold,
		trimPct:          DefaultTrimPct,
		sampleCompLimit:  defaultSampleCompLimit,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// BucketSearch holds the per-bucket search parameters.
type BucketSearch struct {
	Bucket        domain.Bucket
	Tightness     domain.Tightness
	BuyingOptions []domain.BuyingOption
	MaxResults    int
}

// SearchBucket executes one bucket search, broadening at most once when the
// initial sample is thinner than the threshold and the caller did not already
// ask for a LOOSE query. It always produces a BucketResult on success, even
// for zero matches; only upstream failures return an error.
func (o *Orchestrator) SearchBucket(
	ctx context.Context,
	identity domain.CardIdentity,
	req BucketSearch,
) (*domain.BucketResult, error) {
	tightness := req.Tightness
	if tightness == "" {
		tightness = domain.TightnessNormal
	}
	limit := clampResults(req.MaxResults)

	query := BuildQuery(identity, req.Bucket, tightness)
	comps, err := o.search(ctx, query, limit, req.BuyingOptions)
	if err != nil {
		metrics.CompSearchesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("bucket %s: %w", req.Bucket, err)
	}

	loosened := false
	if len(comps) < o.broadenThreshold && tightness != domain.TightnessLoose {
		o.log.Debug("broadening thin bucket search",
			"bucket", req.Bucket,
			"initial_comps", len(comps),
		)

		query = BuildQuery(identity.Loosened(), req.Bucket, domain.TightnessLoose)
		comps, err = o.search(ctx, query, limit, req.BuyingOptions)
		if err != nil {
			metrics.CompSearchesTotal.WithLabelValues(metrics.OutcomeError).Inc()
			return nil, fmt.Errorf("bucket %s (broadened): %w", req.Bucket, err)
		}
		loosened = true
	}

	outcome := metrics.OutcomeOK
	if loosened {
		outcome = metrics.OutcomeBroadened
	}
	metrics.CompSearchesTotal.WithLabelValues(outcome).Inc()
	metrics.CompSampleSize.Observe(float64(len(comps)))

	result := &domain.BucketResult{
		Summary: o.summarize(comps, loosened),
		Comps:   comps,
		QueryUsed: domain.QueryUsed{
			Keywords:  query.Keywords,
			Negatives: query.Negatives,
			Loosened:  loosened,
		},
	}
	if len(result.Comps) > o.sampleCompLimit {
		result.Comps = result.Comps[:o.sampleCompLimit]
	}
	return result, nil
}

func (o *Orchestrator) search(
	ctx context.Context,
	query Query,
	limit int,
	buyingOptions []domain.BuyingOption,
) ([]domain.Comp, error) {
	req := ebay.SearchRequest{
		Query:   query.SearchTerm(),
		Limit:   limit,
		Filters: buyingOptionFilter(buyingOptions),
	}

	resp, err := o.client.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("searching marketplace: %w", err)
	}

	return Normalize(resp.Items), nil
}

func (o *Orchestrator) summarize(
	comps []domain.Comp,
	loosened bool,
) domain.BucketSummary {
	summary := domain.BucketSummary{
		SampleSize: len(comps),
		Confidence: ConfidenceFor(len(comps)),
	}

	if loosened {
		summary.Notes = append(summary.Notes,
			"thin initial sample: search broadened by dropping card number and variant",
		)
	}

	if len(comps) == 0 {
		summary.Notes = append(summary.Notes,
			"no active listings matched the query",
		)
		return summary
	}

	values := make([]float64, len(comps))
	for i := range comps {
		values[i] = comps[i].AllIn
	}

	summary.MedianAllIn = Median(values)
	summary.RangeAllIn = TrimmedRange(values, o.trimPct)
	return summary
}

// NormalizeBuyingOptions keeps only the recognized buying option values,
// silently dropping everything else.
func NormalizeBuyingOptions(raw []string) []domain.BuyingOption {
	var opts []domain.BuyingOption
	for _, r := range raw {
		switch domain.BuyingOption(strings.ToUpper(strings.TrimSpace(r))) {
		case domain.BuyingFixedPrice:
			opts = append(opts, domain.BuyingFixedPrice)
		case domain.BuyingAuction:
			opts = append(opts, domain.BuyingAuction)
		}
	}
	return opts
}

func buyingOptionFilter(opts []domain.BuyingOption) map[string]string {
	if len(opts) == 0 {
		return nil
	}

	values := make([]string, len(opts))
	for i, opt := range opts {
		values[i] = string(opt)
	}
	return map[string]string{
		"filter": "buyingOptions:{" + strings.Join(values, "|") + "}",
	}
}

func clampResults(n int) int {
	switch {
	case n == 0:
		return defaultSearchResults
	case n < minSearchResults:
		return minSearchResults
	case n > maxSearchResults:
		return maxSearchResults
	default:
		return n
	}
}
