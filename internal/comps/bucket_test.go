package comps_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jessysellshomes/card-value-backend/internal/comps"
	domain "github.com/jessysellshomes/card-value-backend/pkg/types"
)

func TestBucketKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bucket domain.Bucket
		want   []string
	}{
		{"RAW", []string{"raw"}},
		{"raw", []string{"raw"}},
		{"PSA_10", []string{"PSA", "10"}},
		{"PSA_9", []string{"PSA", "9"}},
		{"BGS_9_5", []string{"BGS", "9.5"}},
		{"SGC_10", []string{"SGC", "10"}},
		{"CGC_9_5", []string{"CGC", "9.5"}},
		{"UNKNOWN", nil},
		{"TAG_10", nil},
		{"PSA_", nil},
		{"", nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.bucket), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, comps.BucketKeywords(tt.bucket))
		})
	}
}

func TestDefaultBuckets(t *testing.T) {
	t.Parallel()

	sports := comps.DefaultBuckets(domain.CardIdentity{Domain: "sports"})
	assert.Equal(t, []domain.Bucket{
		"RAW", "PSA_10", "PSA_9", "BGS_9_5", "SGC_10",
	}, sports)

	pokemon := comps.DefaultBuckets(domain.CardIdentity{Domain: "pokemon"})
	assert.Equal(t, []domain.Bucket{
		"RAW", "PSA_10", "PSA_9", "BGS_9_5", "SGC_10", "CGC_10",
	}, pokemon)
}

func TestCapBuckets(t *testing.T) {
	t.Parallel()

	var long []domain.Bucket
	for i := 0; i < 20; i++ {
		long = append(long, "PSA_10")
	}

	assert.Len(t, comps.CapBuckets(long), 12)

	short := []domain.Bucket{"RAW", "PSA_10"}
	assert.Equal(t, short, comps.CapBuckets(short))
}
