// Package compare computes set-level agreement between two result sets.
// Itemsets are compared by their canonical key only.
package compare

import (
	"github.com/samber/lo"

	"fpcheck/internal/itemset"
	"fpcheck/pkg/models"
)

// Compare returns the overlap of a and b.
func Compare(a, b models.ResultSet) models.Outcome {
	common := 0
	for k := range a {
		if _, ok := b[k]; ok {
			common++
		}
	}

	out := models.Outcome{
		Common:  common,
		UniqueA: len(a) - common,
		UniqueB: len(b) - common,
	}
	out.Match = out.UniqueA == 0 && out.UniqueB == 0
	return out
}

// Only returns the itemsets of a that b lacks, sorted with itemset.Less.
func Only(a, b models.ResultSet) []models.Itemset {
	missing := lo.PickBy(a, func(k models.ItemsetKey, _ models.Itemset) bool {
		_, ok := b[k]
		return !ok
	})
	sets := lo.Values(missing)
	itemset.Sort(sets)
	return sets
}
