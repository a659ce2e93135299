package store

import (
	"bufio"
	"os"

	"github.com/pkg/errors"

	"fpcheck/internal/itemset"
	"fpcheck/pkg/models"
)

// maxLineBytes bounds a single itemset line, not the file.
const maxLineBytes = 64 * 1024 * 1024

// LoadResultSet reads every itemset in path. missing file -> empty set
func LoadResultSet(path string) (models.ResultSet, error) {
	set := make(models.ResultSet)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, errors.Wrapf(err, "open result file %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		is := itemset.Parse(scanner.Text())
		if len(is) == 0 {
			continue
		}
		set[itemset.Key(is)] = is
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read result file %s", path)
	}

	return set, nil
}
