package comps

import (
	"strings"

	domain "github.com/jessysellshomes/card-value-backend/pkg/types"
)

// baseNegatives are excluded from every comp search. They mark listing
// classes that are never a comparable: lots, fakes, digital goods, and
// group-break spots.
var baseNegatives = []string{
	"lot", "reprint", "proxy", "custom", "digital", "case", "break",
}

// rawNegatives keep graded listings out of a raw-card search, which would
// otherwise drag the raw price distribution upward.
var rawNegatives = []string{
	"PSA", "BGS", "SGC", "CGC", "graded", "slab",
}

// autoNegatives apply when the identity says the card is not an autograph.
var autoNegatives = []string{"auto", "autograph"}

// patchNegatives apply when the identity says the card is not a patch/relic.
var patchNegatives = []string{"patch", "relic", "jersey"}

// pokemonNegatives exclude TCG-online codes and common energy cards. Skipped
// at LOOSE tightness where recall matters more than precision.
var pokemonNegatives = []string{"online code", "energy"}

// Query is an ephemeral search derivation: the positive keyword string and
// the deduplicated negative keyword set, in deterministic order.
type Query struct {
	Keywords  string
	Negatives []string
}

// BuildQuery combines a card identity, a bucket's keywords, and the
// exclusion set into one search query at the given tightness.
func BuildQuery(
	identity domain.CardIdentity,
	bucket domain.Bucket,
	tightness domain.Tightness,
) Query {
	return Query{
		Keywords:  buildKeywords(identity, bucket),
		Negatives: buildNegatives(identity, bucket, tightness),
	}
}

// buildKeywords concatenates identity fields in fixed order, skipping blank
// ones, then appends the bucket keywords. Whitespace is collapsed.
func buildKeywords(identity domain.CardIdentity, bucket domain.Bucket) string {
	parts := []string{
		identity.Year,
		identity.Set,
		identity.Subject,
		identity.CardNumber,
		identity.Variant,
		identity.SerialNumbered,
	}
	parts = append(parts, identity.ExtraKeywords...)
	parts = append(parts, identity.Language)
	parts = append(parts, BucketKeywords(bucket)...)

	var fields []string
	for _, p := range parts {
		fields = append(fields, strings.Fields(p)...)
	}
	return strings.Join(fields, " ")
}

func buildNegatives(
	identity domain.CardIdentity,
	bucket domain.Bucket,
	tightness domain.Tightness,
) []string {
	var negatives []string
	seen := make(map[string]struct{})

	add := func(terms []string) {
		for _, term := range terms {
			key := strings.ToLower(term)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			negatives = append(negatives, term)
		}
	}

	add(baseNegatives)

	if strings.EqualFold(strings.TrimSpace(string(bucket)), string(BucketRaw)) {
		add(rawNegatives)
	}
	if identity.IsAuto != nil && !*identity.IsAuto {
		add(autoNegatives)
	}
	if identity.IsPatch != nil && !*identity.IsPatch {
		add(patchNegatives)
	}
	if identity.IsPokemon() && tightness != domain.TightnessLoose {
		add(pokemonNegatives)
	}

	return negatives
}

// SearchTerm renders the query as a single eBay q parameter: positive
// keywords followed by "-term" exclusions, with multi-word terms grouped.
func (q Query) SearchTerm() string {
	var b strings.Builder
	b.WriteString(q.Keywords)
	for _, neg := range q.Negatives {
		b.WriteString(" -")
		if strings.ContainsRune(neg, ' ') {
			b.WriteString("(" + neg + ")")
		} else {
			b.WriteString(neg)
		}
	}
	return strings.TrimSpace(b.String())
}
