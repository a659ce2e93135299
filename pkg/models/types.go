package models

// Item is a dense item identifier assigned by the upstream normalization step.
type Item uint64

// Itemset is one frequent pattern in canonical form: distinct items sorted ascending.
type Itemset []Item

// ItemsetKey is the hashable encoding of a canonical Itemset.
// Two itemsets have the same key iff they hold the same items.
type ItemsetKey string

// ResultSet holds the deduplicated itemsets read from one output file.
type ResultSet map[ItemsetKey]Itemset

// Outcome is the result of comparing two result sets A and B.
type Outcome struct {
	Match   bool
	Common  int
	UniqueA int // in A, not in B
	UniqueB int // in B, not in A
}

// Role identifies one mining implementation in a file group.
type Role struct {
	Name   string // short tag used in reports, e.g. ORG
	Label  string // long name, e.g. Original
	Marker string // file name marker, e.g. org in DataSetA_org.txt
}

// Member is one comparison file of a group. The file may not exist.
type Member struct {
	Role Role
	Path string
}

// FileGroup is a baseline output file plus the comparison files derived from its name.
type FileGroup struct {
	Name     string // baseline file name, e.g. DataSetA_py.txt
	Stem     string // shared base, e.g. DataSetA
	Ext      string // shared extension including the dot, e.g. .txt
	Baseline string
	Members  []Member
}

// Tally is the running score of one comparison role.
type Tally struct {
	Role    Role
	Matches int
	Total   int // comparisons attempted, including skipped ones
}

// Percent returns the match rate in percent. ok is false when nothing was compared.
func (t Tally) Percent() (pct float64, ok bool) {
	if t.Total == 0 {
		return 0, false
	}
	return float64(t.Matches) / float64(t.Total) * 100, true
}

// Comparison statuses recorded in run reports.
const (
	StatusMatch    = "match"
	StatusMismatch = "mismatch"
	StatusSkipped  = "skipped"
	StatusNotFound = "not_found"
)

const (
	DefaultResultsDir   = "output"
	DefaultMaxFileBytes = 10 * 1024 * 1024
)
