package validator

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"fpcheck/internal/compare"
	"fpcheck/internal/discovery"
	"fpcheck/internal/report"
	"fpcheck/internal/store"
	"fpcheck/pkg/models"
)

// Options configures a validation run.
type Options struct {
	Dir          string
	MaxFileBytes int64
	Naming       discovery.Naming
	Baseline     models.Role
	Roles        []models.Role
}

// Sink receives machine-readable results. store.ReportWriter implements it.
type Sink interface {
	WriteRecord(store.Record) error
	WriteScore(store.Score) error
}

// Validator compares every discovered file group against its baseline.
type Validator struct {
	opts     Options
	crawler  *discovery.Crawler
	reporter *report.Reporter
	sink     Sink
	logger   *zap.Logger
}

// New returns a Validator. sink and logger may be nil.
func New(opts Options, reporter *report.Reporter, sink Sink, logger *zap.Logger) *Validator {
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = models.DefaultMaxFileBytes
	}
	if opts.Naming == nil {
		opts.Naming = discovery.MarkerNaming{Separator: "_"}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{
		opts:     opts,
		crawler:  discovery.NewCrawler(opts.Dir, opts.Naming, opts.Baseline, opts.Roles),
		reporter: reporter,
		sink:     sink,
		logger:   logger,
	}
}

// Run validates all file groups in order and prints the final scores.
// missing or empty results dir gets printed, its not an error
func (v *Validator) Run() (*Scoreboard, error) {
	start := time.Now()
	board := NewScoreboard(v.opts.Roles)

	groups, err := v.crawler.Discover()
	if errors.Is(err, discovery.ErrNoResultsDir) {
		v.logger.Warn("results directory not found", zap.String("dir", v.opts.Dir))
		v.reporter.MissingDir(v.opts.Dir)
		return board, nil
	}
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		v.reporter.NoBaselines(v.opts.Dir, v.opts.Baseline)
		return board, nil
	}

	v.logger.Debug("discovered file groups", zap.String("dir", v.opts.Dir), zap.Int("groups", len(groups)))

	for _, g := range groups {
		if err := v.validateGroup(g, board); err != nil {
			return board, err
		}
	}

	tallies := board.Tallies()
	v.reporter.Scores(tallies)
	if err := v.writeScores(tallies); err != nil {
		return board, err
	}

	v.logger.Info("validation finished",
		zap.Int("groups", len(groups)),
		zap.Duration("elapsed", time.Since(start)))
	return board, nil
}

func (v *Validator) validateGroup(g models.FileGroup, board *Scoreboard) error {
	v.reporter.Group(g.Name)

	for _, m := range g.Members {
		rec, err := v.ComparePair(g.Baseline, m)
		if err != nil {
			return err
		}
		rec.Group = g.Name

		if rec.Status != models.StatusNotFound {
			board.Attempt(m.Role)
		}
		if rec.Status == models.StatusMatch {
			board.Matched(m.Role)
		}

		if v.sink != nil {
			if err := v.sink.WriteRecord(rec); err != nil {
				return errors.Wrap(err, "write report record")
			}
		}
	}

	v.reporter.EndGroup()
	return nil
}

// ComparePair compares the baseline file with one member file and reports the
// result. Files over the size ceiling are not loaded.
func (v *Validator) ComparePair(baselinePath string, m models.Member) (store.Record, error) {
	rec := store.Record{Role: m.Role.Name, Path: m.Path}

	roleBytes, exists, err := fileSize(m.Path)
	if err != nil {
		return rec, err
	}
	if !exists {
		v.reporter.NotFound(m.Role, m.Path)
		rec.Status = models.StatusNotFound
		return rec, nil
	}

	baseBytes, _, err := fileSize(baselinePath)
	if err != nil {
		return rec, err
	}
	rec.BaselineBytes, rec.RoleBytes = baseBytes, roleBytes

	if baseBytes > v.opts.MaxFileBytes || roleBytes > v.opts.MaxFileBytes {
		v.logger.Debug("comparison skipped",
			zap.String("baseline", baselinePath),
			zap.String("other", m.Path),
			zap.Int64("max_bytes", v.opts.MaxFileBytes))
		v.reporter.Skipped(m.Role, v.opts.Baseline, baseBytes, roleBytes)
		rec.Status = models.StatusSkipped
		return rec, nil
	}

	a, err := store.LoadResultSet(baselinePath)
	if err != nil {
		return rec, err
	}
	b, err := store.LoadResultSet(m.Path)
	if err != nil {
		return rec, err
	}

	out := compare.Compare(a, b)
	v.reporter.Difference(m.Role, v.opts.Baseline, a, b, out)

	rec.Common, rec.UniqueBase, rec.UniqueRole = out.Common, out.UniqueA, out.UniqueB
	rec.Status = models.StatusMismatch
	if out.Match {
		rec.Status = models.StatusMatch
	}

	v.logger.Debug("compared",
		zap.String("baseline", baselinePath),
		zap.String("other", m.Path),
		zap.Bool("match", out.Match),
		zap.Int("common", out.Common))
	return rec, nil
}

func (v *Validator) writeScores(tallies []models.Tally) error {
	if v.sink == nil {
		return nil
	}
	for _, t := range tallies {
		pct, _ := t.Percent()
		s := store.Score{Role: t.Role.Name, Matches: t.Matches, Total: t.Total, Percent: pct}
		if err := v.sink.WriteScore(s); err != nil {
			return errors.Wrap(err, "write report score")
		}
	}
	return nil
}

// fileSize returns the size of path. A missing file is not an error.
func fileSize(path string) (size int64, exists bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, errors.Wrapf(err, "stat %s", path)
	}
	return info.Size(), true, nil
}
