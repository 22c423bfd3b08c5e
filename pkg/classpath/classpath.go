// Package classpath turns configured code roots into the ordered list of
// locations a loader scope searches.
package classpath

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoUsableRoots is returned when none of the configured roots exists.
var ErrNoUsableRoots = errors.New("classpath: no usable code roots")

// Kind tells directories and archives apart.
type Kind int

const (
	Dir Kind = iota
	Archive
)

func (k Kind) String() string {
	if k == Archive {
		return "archive"
	}
	return "dir"
}

// archiveExts are matched case-insensitively.
var archiveExts = []string{".jar", ".zip"}

// Location is one searchable code location.
type Location struct {
	Path string // absolute
	Kind Kind
}

// URL renders the location as a file URL.
func (l Location) URL() string {
	return fileURL(l.Path)
}

// Classpath is the ordered, immutable result of Assemble.
type Classpath []Location

// URLs returns every location as a file URL, in order.
func (c Classpath) URLs() []string {
	out := make([]string, len(c))
	for i, l := range c {
		out[i] = l.URL()
	}
	return out
}

// IsArchive reports whether name carries a recognized archive extension.
func IsArchive(name string) bool {
	ext := filepath.Ext(name)
	for _, a := range archiveExts {
		if strings.EqualFold(ext, a) {
			return true
		}
	}
	return false
}

// Assemble emits, for each non-empty root, the root itself followed by the
// archive files found directly inside it. Roots that cannot be listed add
// no archives. Duplicates are kept. It fails only when no root exists.
func Assemble(roots ...string) (Classpath, error) {
	var (
		out    Classpath
		usable int
	)
	for _, root := range roots {
		if strings.TrimSpace(root) == "" {
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("classpath: root %q: %w", root, err)
		}
		out = append(out, Location{Path: abs, Kind: Dir})

		if fi, err := os.Stat(abs); err == nil && fi.IsDir() {
			usable++
		}
		out = append(out, listArchives(abs)...)
	}
	if usable == 0 {
		return out, fmt.Errorf("%w: %v", ErrNoUsableRoots, roots)
	}
	return out, nil
}

func listArchives(dir string) []Location {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []Location
	for _, e := range entries {
		if e.IsDir() || !IsArchive(e.Name()) {
			continue
		}
		out = append(out, Location{Path: filepath.Join(dir, e.Name()), Kind: Archive})
	}
	return out
}

// SplitList splits an OS path-list value (as found in FC_LIB_PATH) into roots.
func SplitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return filepath.SplitList(v)
}

func fileURL(p string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
	return u.String()
}
