package loader

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/joeydtaylor/steeze-fc/pkg/classpath"
)

// Locations is the local layer: the function's own code, searched in
// classpath order.
type Locations struct {
	entries []location
}

type location interface {
	// read returns the bytes of entry, or found=false.
	read(entry string) (data []byte, found bool, err error)
	url(entry string) string
	exists(entry string) bool
	// pluginDir is where plugin paths resolve; empty when unsupported.
	pluginDir() string
	close() error
}

// NewLocations opens nothing eagerly; archives are indexed on first use.
func NewLocations(cp classpath.Classpath) *Locations {
	l := &Locations{entries: make([]location, 0, len(cp))}
	for _, loc := range cp {
		switch loc.Kind {
		case classpath.Archive:
			l.entries = append(l.entries, &archiveLocation{path: loc.Path})
		default:
			l.entries = append(l.entries, dirLocation(loc.Path))
		}
	}
	return l
}

func (l *Locations) FindUnit(name string) (*Unit, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: invalid unit name %q", ErrUnitNotFound, name)
	}
	entry := entryFor(name)
	for _, loc := range l.entries {
		data, found, err := loc.read(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnitDefinition, loc.url(entry), err)
		}
		if !found {
			continue
		}
		d, err := parseDescriptor(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnitDefinition, loc.url(entry), err)
		}
		def, err := d.link(loc.pluginDir())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnitDefinition, loc.url(entry), err)
		}
		return &Unit{Name: name, Origin: loc.url(entry), Definition: def}, nil
	}
	return nil, fmt.Errorf("%w: %s in local locations", ErrUnitNotFound, name)
}

func (l *Locations) FindResource(name string) (string, bool) {
	name, ok := cleanEntry(name)
	if !ok {
		return "", false
	}
	for _, loc := range l.entries {
		if loc.exists(name) {
			return loc.url(name), true
		}
	}
	return "", false
}

func (l *Locations) FindResources(name string) ([]string, error) {
	name, ok := cleanEntry(name)
	if !ok {
		return nil, nil
	}
	var out []string
	for _, loc := range l.entries {
		if loc.exists(name) {
			out = append(out, loc.url(name))
		}
	}
	return out, nil
}

// Close releases open archives.
func (l *Locations) Close() error {
	var errs []error
	for _, loc := range l.entries {
		if err := loc.close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// cleanEntry rejects names that would escape a location.
func cleanEntry(name string) (string, bool) {
	name = path.Clean("/" + filepath.ToSlash(name))[1:]
	if name == "" || name == "." {
		return "", false
	}
	return name, true
}

type dirLocation string

func (d dirLocation) file(entry string) string {
	return filepath.Join(string(d), filepath.FromSlash(entry))
}

func (d dirLocation) read(entry string) ([]byte, bool, error) {
	b, err := os.ReadFile(d.file(entry))
	switch {
	case err == nil:
		return b, true, nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return nil, false, nil
	default:
		return nil, false, err
	}
}

func (d dirLocation) url(entry string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(d.file(entry))}
	return u.String()
}

func (d dirLocation) exists(entry string) bool {
	_, err := os.Stat(d.file(entry))
	return err == nil
}

func (d dirLocation) pluginDir() string { return string(d) }
func (d dirLocation) close() error      { return nil }

type archiveLocation struct {
	path string

	once  sync.Once
	mu    sync.RWMutex
	rc    *zip.ReadCloser
	index map[string]*zip.File
}

// open indexes the archive once. An unreadable archive contributes nothing.
func (a *archiveLocation) open() {
	a.once.Do(func() {
		rc, err := zip.OpenReader(a.path)
		if err != nil {
			return
		}
		a.rc = rc
		a.index = make(map[string]*zip.File, len(rc.File))
		for _, f := range rc.File {
			if _, dup := a.index[f.Name]; !dup {
				a.index[f.Name] = f
			}
		}
	})
}

// lookup returns the indexed entry; a closed archive has none.
func (a *archiveLocation) lookup(entry string) (*zip.File, bool) {
	a.open()
	a.mu.RLock()
	defer a.mu.RUnlock()
	f, ok := a.index[entry]
	return f, ok
}

func (a *archiveLocation) read(entry string) ([]byte, bool, error) {
	f, ok := a.lookup(entry)
	if !ok {
		return nil, false, nil
	}
	r, err := f.Open()
	if err != nil {
		return nil, false, err
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (a *archiveLocation) url(entry string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(a.path)}
	return "zip:" + u.String() + "!/" + entry
}

func (a *archiveLocation) exists(entry string) bool {
	_, ok := a.lookup(entry)
	return ok
}

func (a *archiveLocation) pluginDir() string { return "" }

func (a *archiveLocation) close() error {
	a.once.Do(func() {})
	a.mu.Lock()
	defer a.mu.Unlock()
	a.index = nil
	if a.rc == nil {
		return nil
	}
	rc := a.rc
	a.rc = nil
	return rc.Close()
}
