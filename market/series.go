package market

import "sort"

// SortDedupe normalizes a merged candle series into the contract the core
// consumes: strict chronological order, one candle per timestamp
// (keep-first). Safe on nil and single-element slices.
func SortDedupe(cs []Candle) []Candle {
	if len(cs) < 2 {
		return cs
	}

	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].Time.Before(cs[j].Time)
	})

	out := cs[:1]
	for _, c := range cs[1:] {
		if c.Time.Equal(out[len(out)-1].Time) {
			continue
		}
		out = append(out, c)
	}
	return out
}
