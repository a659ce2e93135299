package store

import (
	"bufio"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	ReportFormat  = "fpcheck-report"
	ReportVersion = 1
)

type header struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
}

// Record is one comparison between a baseline file and a role file.
type Record struct {
	Kind          string `json:"kind"` // always "comparison"
	Group         string `json:"group"`
	Role          string `json:"role"`
	Status        string `json:"status"`
	Path          string `json:"path"`
	Common        int    `json:"common"`
	UniqueBase    int    `json:"unique_baseline"`
	UniqueRole    int    `json:"unique_role"`
	BaselineBytes int64  `json:"baseline_bytes,omitempty"`
	RoleBytes     int64  `json:"role_bytes,omitempty"`
}

// Score is the final tally of one role.
type Score struct {
	Kind    string  `json:"kind"` // always "score"
	Role    string  `json:"role"`
	Matches int     `json:"matches"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

const (
	kindComparison = "comparison"
	kindScore      = "score"
)

// ReportWriter writes a run report as JSON lines.
type ReportWriter struct {
	file *os.File
	w    *bufio.Writer
	enc  *json.Encoder
}

func NewReportWriter(path string) (*ReportWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create report %s", path)
	}
	w := bufio.NewWriter(f)
	rw := &ReportWriter{file: f, w: w, enc: json.NewEncoder(w)}

	if err := rw.enc.Encode(header{Format: ReportFormat, Version: ReportVersion}); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "write report header %s", path)
	}
	return rw, nil
}

func (w *ReportWriter) WriteRecord(rec Record) error {
	rec.Kind = kindComparison
	return w.enc.Encode(rec)
}

func (w *ReportWriter) WriteScore(s Score) error {
	s.Kind = kindScore
	return w.enc.Encode(s)
}

func (w *ReportWriter) Close() error {
	if err := w.w.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// Report is a run report read back from disk.
type Report struct {
	Records []Record
	Scores  []Score
}

// ReadReport loads a report written by ReportWriter.
func ReadReport(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open report %s", path)
	}
	defer f.Close()

	dec := json.NewDecoder(bufio.NewReader(f))

	var h header
	if err := dec.Decode(&h); err != nil {
		return nil, errors.Wrap(err, "bad header")
	}
	if h.Format != ReportFormat {
		return nil, errors.Errorf("invalid header: expected %s, got %s", ReportFormat, h.Format)
	}
	if h.Version != ReportVersion {
		return nil, errors.Errorf("unsupported version: %d", h.Version)
	}

	rep := &Report{}
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrapf(err, "read report %s", path)
		}

		var kind struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(raw, &kind); err != nil {
			return nil, err
		}

		switch kind.Kind {
		case kindComparison:
			var rec Record
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, err
			}
			rep.Records = append(rep.Records, rec)
		case kindScore:
			var s Score
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, err
			}
			rep.Scores = append(rep.Scores, s)
		default:
			return nil, errors.Errorf("unknown report entry kind %q", kind.Kind)
		}
	}
	return rep, nil
}
