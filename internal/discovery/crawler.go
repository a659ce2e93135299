package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"fpcheck/pkg/models"
)

// ErrNoResultsDir is returned when the results directory does not exist.
var ErrNoResultsDir = errors.New("results directory not found")

// Naming maps between output file names and (stem, marker, ext) triples.
type Naming interface {
	// Split reports whether name is an output file for marker and returns
	// the shared stem and extension.
	Split(name, marker string) (stem, ext string, ok bool)
	// Join builds the file name of marker's output for stem and ext.
	Join(stem, marker, ext string) string
}

// MarkerNaming matches names of the form <stem><Separator><marker><ext>.
// Only a marker directly before the extension counts, so stems that contain
// marker text elsewhere are left alone.
type MarkerNaming struct {
	Separator string
}

func (n MarkerNaming) Split(name, marker string) (string, string, bool) {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return "", "", false
	}
	suffix := n.Separator + marker
	base := strings.TrimSuffix(name, ext)
	if !strings.HasSuffix(base, suffix) || len(base) == len(suffix) {
		return "", "", false
	}
	return strings.TrimSuffix(base, suffix), ext, true
}

func (n MarkerNaming) Join(stem, marker, ext string) string {
	return stem + n.Separator + marker + ext
}

// Crawler finds file groups in one results directory.
type Crawler struct {
	Dir      string
	Naming   Naming
	Baseline models.Role
	Roles    []models.Role
}

func NewCrawler(dir string, naming Naming, baseline models.Role, roles []models.Role) *Crawler {
	return &Crawler{Dir: dir, Naming: naming, Baseline: baseline, Roles: roles}
}

// Discover lists the file groups in c.Dir ordered by baseline file name.
// only regular files count, no recursion, members are not checked here
func (c *Crawler) Discover() ([]models.FileGroup, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoResultsDir
		}
		return nil, errors.Wrapf(err, "list results directory %s", c.Dir)
	}

	// readdir gives us entries sorted by name already
	var groups []models.FileGroup
	for _, e := range entries {
		stem, ext, ok := c.Naming.Split(e.Name(), c.Baseline.Marker)
		if !ok {
			continue
		}
		if !isRegular(filepath.Join(c.Dir, e.Name()), e) {
			continue
		}

		g := models.FileGroup{
			Name:     e.Name(),
			Stem:     stem,
			Ext:      ext,
			Baseline: filepath.Join(c.Dir, e.Name()),
		}
		for _, role := range c.Roles {
			g.Members = append(g.Members, models.Member{
				Role: role,
				Path: filepath.Join(c.Dir, c.Naming.Join(stem, role.Marker, ext)),
			})
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// symlinks count when they point at a regular file, dangling ones are skipped
func isRegular(path string, e os.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
