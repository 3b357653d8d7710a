package main

import (
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"gymfuel/recommend-api/internal/recommend"
)

// previewCache memoizes preview breakdowns keyed on the full profile value.
// The onboarding form re-posts the same profile often (focus changes,
// retries), and the key covers every input so a hit is always exact.
type previewCache struct {
	entries *lru.Cache[recommend.Profile, recommend.Breakdown]
}

func newPreviewCache(size int) (*previewCache, error) {
	entries, err := lru.New[recommend.Profile, recommend.Breakdown](size)
	if err != nil {
		return nil, fmt.Errorf("create preview cache: %w", err)
	}
	return &previewCache{entries: entries}, nil
}

// cacheKey replaces non-finite numbers with 0. NaN never equals itself, so
// a NaN key could neither hit nor be evicted; the engine treats NaN and 0
// alike, so the substitution does not change the cached breakdown.
func cacheKey(p recommend.Profile) recommend.Profile {
	for _, f := range []*float64{&p.AgeYears, &p.HeightCm, &p.WeightKg, &p.BodyFatPercent} {
		if math.IsNaN(*f) || math.IsInf(*f, 0) {
			*f = 0
		}
	}
	return p
}

// get is safe on a nil cache and always misses.
func (pc *previewCache) get(p recommend.Profile) (recommend.Breakdown, bool) {
	if pc == nil {
		return recommend.Breakdown{}, false
	}
	b, ok := pc.entries.Get(cacheKey(p))
	if ok {
		previewCacheLookups.WithLabelValues("hit").Inc()
	} else {
		previewCacheLookups.WithLabelValues("miss").Inc()
	}
	return b, ok
}

func (pc *previewCache) add(p recommend.Profile, b recommend.Breakdown) {
	if pc == nil {
		return
	}
	pc.entries.Add(cacheKey(p), b)
}

func (pc *previewCache) len() int {
	if pc == nil {
		return 0
	}
	return pc.entries.Len()
}
