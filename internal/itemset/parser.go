package itemset

import (
	"sort"
	"strconv"
	"strings"

	"fpcheck/pkg/models"
)

// Parse turns one output line into a canonical itemset.
// blank lines and anything with a non-numeric token come back empty, dont store those
func Parse(line string) models.Itemset {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	items := make(models.Itemset, 0, len(fields))
	for _, f := range fields {
		// no signs allowed, "-3" kills the whole line
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil
		}
		items = append(items, models.Item(v))
	}

	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })

	// collapse repeats in place
	out := items[:1]
	for _, it := range items[1:] {
		if it != out[len(out)-1] {
			out = append(out, it)
		}
	}
	return out
}

// Key encodes a canonical itemset so it can be used as a map key.
func Key(s models.Itemset) models.ItemsetKey {
	var b strings.Builder
	for i, it := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatUint(uint64(it), 10))
	}
	return models.ItemsetKey(b.String())
}

// Less orders smaller itemsets first, then by items ascending.
func Less(a, b models.Itemset) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Sort sorts itemsets in place using Less.
func Sort(sets []models.Itemset) {
	sort.Slice(sets, func(i, j int) bool { return Less(sets[i], sets[j]) })
}

// Format renders an itemset as {1, 4, 7}.
func Format(s models.Itemset) string {
	if len(s) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(s))
	for i, it := range s {
		parts[i] = strconv.FormatUint(uint64(it), 10)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
