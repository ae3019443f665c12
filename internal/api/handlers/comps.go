package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jessysellshomes/card-value-backend/internal/comps"
	domain "github.com/jessysellshomes/card-value-backend/pkg/types"
)

// CompsHandler handles comp lookup requests.
type CompsHandler struct {
	orch  *comps.Orchestrator
	coord *comps.Coordinator
}

// NewCompsHandler creates a new CompsHandler.
func NewCompsHandler(orch *comps.Orchestrator, coord *comps.Coordinator) *CompsHandler {
	return &CompsHandler{orch: orch, coord: coord}
}

// CompsInput is the request body for the single-bucket comps endpoint.
// Identity and bucket presence is checked in the handler so their absence
// reports 400 rather than schema-validation 422.
type CompsInput struct {
	Body struct {
		Identity             *domain.CardIdentity `json:"identity,omitempty" doc:"Card being priced"`
		Bucket               domain.Bucket        `json:"bucket,omitempty" doc:"Grading bucket, e.g. RAW or PSA_10" example:"PSA_10"`
		QueryTightness       string              `json:"queryTightness,omitempty" enum:"STRICT,NORMAL,LOOSE" doc:"Query tightness (default NORMAL)"`
		IncludeBuyingOptions []string            `json:"includeBuyingOptions,omitempty" doc:"Restrict to listing formats, e.g. FIXED_PRICE"`
		MaxResults           int                 `json:"maxResults,omitempty" doc:"Marketplace results to fetch, clamped to [5,200]" example:"50"`
	}
}

// CompsOutput is the response body for the single-bucket comps endpoint.
type CompsOutput struct {
	Body domain.BucketResult
}

// SearchComps runs one bucket search and returns its summary and comps.
func (h *CompsHandler) SearchComps(
	ctx context.Context,
	input *CompsInput,
) (*CompsOutput, error) {
	if input.Body.Identity == nil {
		return nil, huma.Error400BadRequest("identity is required")
	}
	if input.Body.Bucket == "" {
		return nil, huma.Error400BadRequest("bucket is required")
	}

	result, err := h.orch.SearchBucket(ctx, *input.Body.Identity, comps.BucketSearch{
		Bucket:        input.Body.Bucket,
		Tightness:     domain.ParseTightness(input.Body.QueryTightness),
		BuyingOptions: comps.NormalizeBuyingOptions(input.Body.IncludeBuyingOptions),
		MaxResults:    input.Body.MaxResults,
	})
	if err != nil {
		return nil, huma.Error502BadGateway("marketplace error: " + err.Error())
	}

	return &CompsOutput{Body: *result}, nil
}

// MultiCompsInput is the request body for the multi-bucket comps endpoint.
type MultiCompsInput struct {
	Body struct {
		Identity             *domain.CardIdentity `json:"identity,omitempty" doc:"Card being priced"`
		Buckets              []domain.Bucket      `json:"buckets,omitempty" doc:"Buckets to search; omit for the domain default set"`
		QueryTightness       string              `json:"queryTightness,omitempty" enum:"STRICT,NORMAL,LOOSE" doc:"Query tightness (default NORMAL)"`
		IncludeBuyingOptions []string            `json:"includeBuyingOptions,omitempty" doc:"Restrict to listing formats, e.g. FIXED_PRICE"`
		MaxResultsPerBucket  int                 `json:"maxResultsPerBucket,omitempty" doc:"Marketplace results per bucket, clamped to [5,200]"`
	}
}

// MultiCompsOutput is the response body for the multi-bucket comps endpoint.
type MultiCompsOutput struct {
	Body struct {
		Results map[domain.Bucket]domain.BucketResult `json:"results" doc:"Per-bucket outcomes keyed by bucket"`
	}
}

// SearchMultiComps fans one identity out across several buckets. Individual
// bucket failures degrade to error entries instead of failing the request.
func (h *CompsHandler) SearchMultiComps(
	ctx context.Context,
	input *MultiCompsInput,
) (*MultiCompsOutput, error) {
	if input.Body.Identity == nil {
		return nil, huma.Error400BadRequest("identity is required")
	}

	results := h.coord.Run(ctx, *input.Body.Identity, comps.MultiSearch{
		Buckets:             input.Body.Buckets,
		Tightness:           domain.ParseTightness(input.Body.QueryTightness),
		BuyingOptions:       comps.NormalizeBuyingOptions(input.Body.IncludeBuyingOptions),
		MaxResultsPerBucket: input.Body.MaxResultsPerBucket,
	})

	out := &MultiCompsOutput{}
	out.Body.Results = results
	return out, nil
}

// RegisterCompsRoutes registers comp lookup endpoints with the Huma API.
func RegisterCompsRoutes(api huma.API, h *CompsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-comps",
		Method:      http.MethodPost,
		Path:        "/comps/ebay",
		Summary:     "Look up comps for one bucket",
		Description: "Builds a marketplace query for the card and bucket, searches active listings, and returns summary statistics with a sample of comps.",
		Tags:        []string{"comps"},
		Errors:      []int{http.StatusBadRequest, http.StatusBadGateway},
	}, h.SearchComps)

	huma.Register(api, huma.Operation{
		OperationID: "search-comps-multi",
		Method:      http.MethodPost,
		Path:        "/comps/ebay/multi",
		Summary:     "Look up comps across several buckets",
		Description: "Searches every requested bucket concurrently and returns per-bucket results. A failed bucket is reported in place rather than failing the request.",
		Tags:        []string{"comps"},
		Errors:      []int{http.StatusBadRequest},
	}, h.SearchMultiComps)
}
