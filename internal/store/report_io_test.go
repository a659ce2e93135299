package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.jsonl")

	w, err := NewReportWriter(path)
	require.NoError(t, err)

	records := []Record{
		{Group: "A_py.txt", Role: "ORG", Status: "match", Path: "out/A_org.txt", Common: 4},
		{Group: "A_py.txt", Role: "PFP", Status: "mismatch", Path: "out/A_pfp.txt", Common: 3, UniqueBase: 1, UniqueRole: 2},
		{Group: "B_py.txt", Role: "ORG", Status: "skipped", Path: "out/B_org.txt", BaselineBytes: 20 << 20, RoleBytes: 12},
		{Group: "B_py.txt", Role: "PFP", Status: "not_found", Path: "out/B_pfp.txt"},
	}
	for _, r := range records {
		require.NoError(t, w.WriteRecord(r))
	}
	require.NoError(t, w.WriteScore(Score{Role: "ORG", Matches: 1, Total: 2, Percent: 50}))
	require.NoError(t, w.WriteScore(Score{Role: "PFP", Matches: 0, Total: 1}))
	require.NoError(t, w.Close())

	rep, err := ReadReport(path)
	require.NoError(t, err)

	for i := range records {
		records[i].Kind = "comparison"
	}
	if diff := cmp.Diff(records, rep.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, rep.Scores, 2)
	assert.Equal(t, Score{Kind: "score", Role: "ORG", Matches: 1, Total: 2, Percent: 50}, rep.Scores[0])
	assert.Equal(t, 0, rep.Scores[1].Matches)
}

func TestReadReport_BadHeader(t *testing.T) {
	dir := t.TempDir()

	wrongFormat := filepath.Join(dir, "wrong.jsonl")
	require.NoError(t, os.WriteFile(wrongFormat, []byte(`{"format":"other","version":1}`+"\n"), 0o644))
	_, err := ReadReport(wrongFormat)
	assert.ErrorContains(t, err, "invalid header")

	wrongVersion := filepath.Join(dir, "version.jsonl")
	require.NoError(t, os.WriteFile(wrongVersion, []byte(`{"format":"fpcheck-report","version":9}`+"\n"), 0o644))
	_, err = ReadReport(wrongVersion)
	assert.ErrorContains(t, err, "unsupported version")
}

func TestReadReport_Missing(t *testing.T) {
	_, err := ReadReport(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}
