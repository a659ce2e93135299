package itemset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fpcheck/pkg/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want models.Itemset
	}{
		{"single", "3", models.Itemset{3}},
		{"sorted", "1 2 3", models.Itemset{1, 2, 3}},
		{"unsorted", "7 1 4", models.Itemset{1, 4, 7}},
		{"extra whitespace", "  4\t\t1   7  \r\n", models.Itemset{1, 4, 7}},
		{"duplicates collapse", "2 2 1 2", models.Itemset{1, 2}},
		{"zero is an item", "0 5", models.Itemset{0, 5}},
		{"blank", "", nil},
		{"spaces only", "   \t ", nil},
		{"comment", "# comment", nil},
		{"header", "itemset support", nil},
		{"mixed tokens", "1 2 x", nil},
		{"support suffix", "1 2 (5)", nil},
		{"negative", "1 -2", nil},
		{"signed", "+1", nil},
		{"float", "1.5", nil},
		{"overflow", "18446744073709551616", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.line)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	lines := []string{"5 3 1", "1 3 5", " 3  5 1 ", "1 1 3 5 5"}
	first := Parse(lines[0])
	for _, l := range lines {
		assert.Equal(t, first, Parse(l), "line %q", l)
		assert.Equal(t, Key(first), Key(Parse(l)))
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, models.ItemsetKey("1 4 7"), Key(models.Itemset{1, 4, 7}))
	assert.Equal(t, models.ItemsetKey(""), Key(nil))
	// no ambiguity between multi-digit and split items
	assert.NotEqual(t, Key(models.Itemset{1, 23}), Key(models.Itemset{12, 3}))
}

func TestLess(t *testing.T) {
	tests := []struct {
		name string
		a, b models.Itemset
		want bool
	}{
		{"smaller cardinality first", models.Itemset{9}, models.Itemset{1, 2}, true},
		{"larger cardinality last", models.Itemset{1, 2}, models.Itemset{9}, false},
		{"same size by items", models.Itemset{1, 3}, models.Itemset{1, 4}, true},
		{"equal", models.Itemset{1, 3}, models.Itemset{1, 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Less(tt.a, tt.b))
		})
	}
}

func TestSort(t *testing.T) {
	sets := []models.Itemset{{3, 4}, {5}, {1, 2, 3}, {1, 9}, {2}}
	Sort(sets)
	assert.Equal(t, []models.Itemset{{2}, {5}, {1, 9}, {3, 4}, {1, 2, 3}}, sets)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "{1, 4, 7}", Format(models.Itemset{1, 4, 7}))
	assert.Equal(t, "{0}", Format(models.Itemset{0}))
	assert.Equal(t, "(empty)", Format(nil))
}
