// Package domain defines the core business types for the card value backend.
package domain

import (
	"math"
	"strings"
)

// Tightness controls how aggressively a query excludes near-miss listings.
type Tightness string

// Tightness constants. Strict and Normal currently build identical queries;
// the distinction is kept as a forward-compatible knob rather than collapsed.
const (
	TightnessStrict Tightness = "STRICT"
	TightnessNormal Tightness = "NORMAL"
	TightnessLoose  Tightness = "LOOSE"
)

// ParseTightness normalizes a tightness string. Unrecognized or empty values
// default to NORMAL.
func ParseTightness(s string) Tightness {
	switch Tightness(strings.ToUpper(strings.TrimSpace(s))) {
	case TightnessStrict:
		return TightnessStrict
	case TightnessLoose:
		return TightnessLoose
	default:
		return TightnessNormal
	}
}

// Bucket identifies a grading tier: "RAW", or "<GRADER>_<GRADE>" with
// half-points encoded as extra underscores (e.g. "BGS_9_5" means BGS 9.5).
// Unrecognized tokens are carried through rather than rejected.
type Bucket string

// BuyingOption is the listing format of a comp.
type BuyingOption string

// Buying option constants.
const (
	BuyingFixedPrice BuyingOption = "FIXED_PRICE"
	BuyingAuction    BuyingOption = "AUCTION"
)

// Confidence labels how trustworthy a bucket summary is, based on sample size.
type Confidence string

// Confidence constants.
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// CardIdentity is the caller-supplied card descriptor. All fields are
// optional at the type level; the API layer enforces what it needs.
// Defaulting happens once at the request boundary, not here.
type CardIdentity struct {
	Year           string   `json:"year,omitempty"           doc:"Card year, e.g. 2020"`
	Set            string   `json:"set,omitempty"            doc:"Set name, e.g. Prizm"`
	Subject        string   `json:"subject,omitempty"        doc:"Player or character name"`
	CardNumber     string   `json:"cardNumber,omitempty"     doc:"Card number within the set"`
	Variant        string   `json:"variant,omitempty"        doc:"Parallel or variant name"`
	SerialNumbered string   `json:"serialNumbered,omitempty" doc:"Serial numbering, e.g. /99"`
	Language       string   `json:"language,omitempty"       doc:"Card language"`
	Domain         string   `json:"domain,omitempty"         doc:"Card domain, e.g. pokemon or sports"`
	IsAuto         *bool    `json:"isAuto,omitempty"         doc:"Whether the card is an autograph"`
	IsPatch        *bool    `json:"isPatch,omitempty"        doc:"Whether the card is a patch/relic"`
	ExtraKeywords  []string `json:"extraKeywords,omitempty"  doc:"Additional search keywords, in order"`
}

// Loosened returns a copy with the exact-match fields (card number, variant)
// cleared. Serial numbering is preserved.
func (c CardIdentity) Loosened() CardIdentity {
	loose := c
	loose.CardNumber = ""
	loose.Variant = ""
	return loose
}

// IsPokemon reports whether the identity belongs to the pokemon domain.
func (c CardIdentity) IsPokemon() bool {
	return strings.EqualFold(strings.TrimSpace(c.Domain), "pokemon")
}

// Comp is one normalized comparable listing.
type Comp struct {
	ItemID       string       `json:"itemId"`
	Title        string       `json:"title"`
	Price        float64      `json:"price"`
	Shipping     *float64     `json:"shipping,omitempty"`
	AllIn        float64      `json:"allIn"`
	Currency     string       `json:"currency"`
	BuyingOption BuyingOption `json:"buyingOption"`
	Condition    string       `json:"condition,omitempty"`
	EndTime      string       `json:"endTime,omitempty"`
	URL          string       `json:"url"`
}

// Valid reports whether the comp is usable: it must link somewhere and its
// all-in price must be positive and finite.
func (c *Comp) Valid() bool {
	return c.URL != "" &&
		c.AllIn > 0 &&
		!math.IsInf(c.AllIn, 0) &&
		!math.IsNaN(c.AllIn)
}

// BucketSummary aggregates the comp sample for one bucket. Recomputed on
// every request; never stored.
type BucketSummary struct {
	SampleSize  int        `json:"sampleSize"`
	MedianAllIn float64    `json:"medianAllIn"`
	RangeAllIn  [2]float64 `json:"rangeAllIn"`
	Confidence  Confidence `json:"confidence"`
	Notes       []string   `json:"notes,omitempty"`
}

// QueryUsed records the exact search that produced a bucket result.
type QueryUsed struct {
	Keywords  string   `json:"keywords"`
	Negatives []string `json:"negatives"`
	Loosened  bool     `json:"loosened"`
}

// BucketResult is the per-bucket outcome: summary statistics, a capped
// sample of comps, and the query that was actually executed. Error is set
// when the bucket's search failed and the coordinator degraded gracefully.
type BucketResult struct {
	Summary   BucketSummary `json:"summary"`
	Comps     []Comp        `json:"comps"`
	QueryUsed QueryUsed     `json:"queryUsed"`
	Error     string        `json:"error,omitempty"`
}
