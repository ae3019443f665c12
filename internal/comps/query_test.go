package comps_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jessysellshomes/card-value-backend/internal/comps"
	domain "github.com/jessysellshomes/card-value-backend/pkg/types"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildQuery_Keywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		identity domain.CardIdentity
		bucket   domain.Bucket
		want     string
	}{
		{
			name: "full identity with raw bucket",
			identity: domain.CardIdentity{
				Year:       "2020",
				Set:        "Prizm",
				Subject:    "Burrow",
				CardNumber: "315",
			},
			bucket: "RAW",
			want:   "2020 Prizm Burrow 315 raw",
		},
		{
			name:     "empty identity yields empty keywords",
			identity: domain.CardIdentity{},
			bucket:   "UNKNOWN",
			want:     "",
		},
		{
			name: "whitespace-only fields skipped and collapsed",
			identity: domain.CardIdentity{
				Year:    "  1999 ",
				Set:     "   ",
				Subject: "Charizard   Holo",
			},
			bucket: "PSA_10",
			want:   "1999 Charizard Holo PSA 10",
		},
		{
			name: "fixed field order with extras and language",
			identity: domain.CardIdentity{
				Year:           "2021",
				Set:            "Evolving Skies",
				Subject:        "Umbreon",
				Variant:        "Alt Art",
				SerialNumbered: "/99",
				Language:       "Japanese",
				ExtraKeywords:  []string{"VMAX", "rainbow"},
			},
			bucket: "BGS_9_5",
			want:   "2021 Evolving Skies Umbreon Alt Art /99 VMAX rainbow Japanese BGS 9.5",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := comps.BuildQuery(tt.identity, tt.bucket, domain.TightnessNormal)
			assert.Equal(t, tt.want, q.Keywords)
		})
	}
}

func TestBuildQuery_Negatives(t *testing.T) {
	t.Parallel()

	base := []string{"lot", "reprint", "proxy", "custom", "digital", "case", "break"}

	t.Run("base set always present", func(t *testing.T) {
		t.Parallel()
		q := comps.BuildQuery(domain.CardIdentity{}, "PSA_10", domain.TightnessNormal)
		assert.Equal(t, base, q.Negatives)
	})

	t.Run("raw bucket excludes graded listings", func(t *testing.T) {
		t.Parallel()
		q := comps.BuildQuery(
			domain.CardIdentity{
				Year: "2020", Set: "Prizm", Subject: "Burrow", CardNumber: "315",
			},
			"RAW",
			domain.TightnessNormal,
		)

		assert.Equal(t, "2020 Prizm Burrow 315 raw", q.Keywords)
		for _, want := range []string{
			"PSA", "BGS", "SGC", "CGC", "graded", "slab",
			"lot", "reprint", "proxy", "custom", "digital", "case", "break",
		} {
			assert.Contains(t, q.Negatives, want)
		}
	})

	t.Run("non-auto excludes autograph terms", func(t *testing.T) {
		t.Parallel()
		q := comps.BuildQuery(
			domain.CardIdentity{IsAuto: boolPtr(false)},
			"PSA_10",
			domain.TightnessNormal,
		)
		assert.Contains(t, q.Negatives, "auto")
		assert.Contains(t, q.Negatives, "autograph")
	})

	t.Run("auto true keeps autograph terms", func(t *testing.T) {
		t.Parallel()
		q := comps.BuildQuery(
			domain.CardIdentity{IsAuto: boolPtr(true)},
			"PSA_10",
			domain.TightnessNormal,
		)
		assert.NotContains(t, q.Negatives, "auto")
	})

	t.Run("unset auto keeps autograph terms", func(t *testing.T) {
		t.Parallel()
		q := comps.BuildQuery(domain.CardIdentity{}, "PSA_10", domain.TightnessNormal)
		assert.NotContains(t, q.Negatives, "auto")
	})

	t.Run("non-patch excludes relic terms", func(t *testing.T) {
		t.Parallel()
		q := comps.BuildQuery(
			domain.CardIdentity{IsPatch: boolPtr(false)},
			"PSA_10",
			domain.TightnessNormal,
		)
		assert.Contains(t, q.Negatives, "patch")
		assert.Contains(t, q.Negatives, "relic")
		assert.Contains(t, q.Negatives, "jersey")
	})

	t.Run("pokemon excludes code cards except when loose", func(t *testing.T) {
		t.Parallel()
		pokemon := domain.CardIdentity{Domain: "pokemon"}

		normal := comps.BuildQuery(pokemon, "PSA_10", domain.TightnessNormal)
		assert.Contains(t, normal.Negatives, "online code")
		assert.Contains(t, normal.Negatives, "energy")

		strict := comps.BuildQuery(pokemon, "PSA_10", domain.TightnessStrict)
		assert.Contains(t, strict.Negatives, "online code")

		loose := comps.BuildQuery(pokemon, "PSA_10", domain.TightnessLoose)
		assert.NotContains(t, loose.Negatives, "online code")
		assert.NotContains(t, loose.Negatives, "energy")
	})

	t.Run("negatives are deterministic and deduplicated", func(t *testing.T) {
		t.Parallel()
		id := domain.CardIdentity{
			Domain:  "pokemon",
			IsAuto:  boolPtr(false),
			IsPatch: boolPtr(false),
		}

		first := comps.BuildQuery(id, "RAW", domain.TightnessNormal)
		second := comps.BuildQuery(id, "RAW", domain.TightnessNormal)
		assert.Equal(t, first.Negatives, second.Negatives)

		seen := map[string]bool{}
		for _, n := range first.Negatives {
			key := strings.ToLower(n)
			assert.False(t, seen[key], "duplicate negative %q", n)
			seen[key] = true
		}
	})
}

func TestQuery_SearchTerm(t *testing.T) {
	t.Parallel()

	q := comps.Query{
		Keywords:  "2020 Prizm Burrow",
		Negatives: []string{"lot", "online code"},
	}

	assert.Equal(t, "2020 Prizm Burrow -lot -(online code)", q.SearchTerm())
}

func TestQuery_SearchTerm_EmptyKeywords(t *testing.T) {
	t.Parallel()

	q := comps.Query{Negatives: []string{"lot"}}
	assert.Equal(t, "-lot", q.SearchTerm())
}
