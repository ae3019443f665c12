// Package comps implements the comp search pipeline: grading-bucket
// vocabulary, keyword query construction, listing normalization, price
// statistics, and the per-bucket search orchestration with its one-shot
// broadening fallback.
package comps

import (
	"strings"

	domain "github.com/jessysellshomes/card-value-backend/pkg/types"
)

// BucketRaw is the ungraded bucket.
const BucketRaw domain.Bucket = "RAW"

// maxBuckets caps how many buckets a single request may fan out to.
// Each bucket costs at least one upstream API call.
const maxBuckets = 12

// knownGraders are the grading companies the vocabulary understands.
var knownGraders = map[string]struct{}{
	"PSA": {},
	"BGS": {},
	"SGC": {},
	"CGC": {},
}

// BucketKeywords maps a grading bucket to its search keywords.
// RAW yields ["raw"]; GRADER_GRADE yields the grader plus the grade with
// underscores read as decimal points (BGS_9_5 -> ["BGS", "9.5"]).
// Unrecognized tokens yield nil: they contribute no keywords rather than
// polluting the query with a literal token.
func BucketKeywords(bucket domain.Bucket) []string {
	b := strings.ToUpper(strings.TrimSpace(string(bucket)))
	if b == string(BucketRaw) {
		return []string{"raw"}
	}

	grader, grade, ok := strings.Cut(b, "_")
	if !ok || grade == "" {
		return nil
	}
	if _, known := knownGraders[grader]; !known {
		return nil
	}

	return []string{grader, strings.ReplaceAll(grade, "_", ".")}
}

// DefaultBuckets returns the bucket set searched when a multi-bucket request
// does not name buckets explicitly. Pokemon gets CGC on top of the shared
// set; CGC volume is negligible for sports cards.
func DefaultBuckets(identity domain.CardIdentity) []domain.Bucket {
	buckets := []domain.Bucket{
		BucketRaw, "PSA_10", "PSA_9", "BGS_9_5", "SGC_10",
	}
	if identity.IsPokemon() {
		buckets = append(buckets, "CGC_10")
	}
	return buckets
}

// CapBuckets truncates a bucket list to the fan-out guardrail.
func CapBuckets(buckets []domain.Bucket) []domain.Bucket {
	if len(buckets) > maxBuckets {
		return buckets[:maxBuckets]
	}
	return buckets
}
