package grove

import "grove-cli/internal/model"

// FilterAll is the sentinel filter tag matching every seed.
const FilterAll = "all"

// Filter derives the subset of seeds matching tag. "all" (or anything that is
// not a class tag) is the identity: the input slice is returned with order and
// membership intact. Class matching applies the same yellow default as store
// normalization. Pure: the input is never mutated.
func Filter(seeds []model.Seed, tag string) []model.Seed {
	cls, ok := model.ParseClass(tag)
	if !ok {
		return seeds
	}
	out := make([]model.Seed, 0, len(seeds))
	for _, s := range seeds {
		if s.Class.OrDefault() == cls {
			out = append(out, s)
		}
	}
	return out
}
