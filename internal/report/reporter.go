// Package report renders validation progress and scores for humans.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"fpcheck/internal/compare"
	"fpcheck/internal/itemset"
	"fpcheck/pkg/models"
)

const (
	DefaultExampleThreshold = 10
	DefaultMaxExamples      = 3
)

// Options bounds how much detail a mismatch prints.
type Options struct {
	// ExampleThreshold is the largest combined unique count for which
	// concrete itemsets are listed.
	ExampleThreshold int
	// MaxExamples is the number of itemsets listed per side.
	MaxExamples int
}

func DefaultOptions() Options {
	return Options{
		ExampleThreshold: DefaultExampleThreshold,
		MaxExamples:      DefaultMaxExamples,
	}
}

// Reporter writes the console report.
type Reporter struct {
	w    io.Writer
	opts Options

	ok   lipgloss.Style
	bad  lipgloss.Style
	warn lipgloss.Style
	head lipgloss.Style
}

// New returns a Reporter writing to w. Styling is dropped when w is not a terminal.
func New(w io.Writer, opts Options) *Reporter {
	if opts.ExampleThreshold < 0 {
		opts.ExampleThreshold = 0
	}
	if opts.MaxExamples <= 0 {
		opts.MaxExamples = DefaultMaxExamples
	}

	r := lipgloss.NewRenderer(w)
	return &Reporter{
		w:    w,
		opts: opts,
		ok:   r.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		bad:  r.NewStyle().Foreground(lipgloss.Color("#e53935")),
		warn: r.NewStyle().Foreground(lipgloss.Color("#FFC107")),
		head: r.NewStyle().Bold(true),
	}
}

func (r *Reporter) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *Reporter) MissingDir(dir string) {
	r.printf("Output directory '%s' not found.\n", dir)
}

func (r *Reporter) NoBaselines(dir string, baseline models.Role) {
	r.printf("No %s output files found to compare in '%s'.\n", baseline.Label, dir)
}

// Group starts the section of one file group.
func (r *Reporter) Group(name string) {
	r.printf("Comparing %s...\n", name)
}

func (r *Reporter) EndGroup() {
	r.printf("\n")
}

func (r *Reporter) NotFound(role models.Role, path string) {
	r.printf("  %s: File %s not found\n", role.Name, path)
}

// Skipped reports a comparison left out because a file exceeds the size ceiling.
func (r *Reporter) Skipped(role, baseline models.Role, baselineBytes, roleBytes int64) {
	r.printf("  %s: %s (file too large: %s=%s, %s=%s)\n",
		role.Name, r.warn.Render("Skipped"),
		baseline.Marker, humanize.IBytes(uint64(baselineBytes)),
		role.Marker, humanize.IBytes(uint64(roleBytes)))
}

// Difference reports the outcome of comparing the baseline set a with the
// role set b. Concrete itemsets are listed only for small mismatches.
func (r *Reporter) Difference(role, baseline models.Role, a, b models.ResultSet, out models.Outcome) {
	if out.Match {
		r.printf("  %s: %s (%d itemsets)\n", role.Name, r.ok.Render("✓ Perfect match"), out.Common)
		return
	}

	r.printf("  %s: %s\n", role.Name, r.bad.Render("✗ Mismatch"))
	r.printf("    Common: %d itemsets\n", out.Common)
	r.printf("    %s unique: %d itemsets\n", baseline.Label, out.UniqueA)
	r.printf("    %s unique: %d itemsets\n", role.Label, out.UniqueB)

	if out.UniqueA+out.UniqueB > r.opts.ExampleThreshold {
		return
	}
	r.examples(baseline, compare.Only(a, b))
	r.examples(role, compare.Only(b, a))
}

func (r *Reporter) examples(role models.Role, sets []models.Itemset) {
	if len(sets) == 0 {
		return
	}
	if len(sets) > r.opts.MaxExamples {
		sets = sets[:r.opts.MaxExamples]
	}
	r.printf("    Examples of %s-only itemsets:\n", role.Label)
	for _, s := range sets {
		r.printf("      %s\n", itemset.Format(s))
	}
}

// Scores prints the final score block.
func (r *Reporter) Scores(tallies []models.Tally) {
	r.printf("%s\n", strings.Repeat("=", 50))
	r.printf("%s\n", r.head.Render("FINAL SCORES:"))
	for _, t := range tallies {
		pct, ok := t.Percent()
		if !ok {
			r.printf("%s Score: No files to compare\n", t.Role.Name)
			continue
		}
		r.printf("%s Score: %d/%d matched (%.1f%%)\n", t.Role.Name, t.Matches, t.Total, pct)
	}
}
