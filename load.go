package dirmigrate

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Recognizer claims migrations stored in a format other than up.sql/down.sql directories.
//
// Recognize returns ok=false to let the loader fall back to the directory format. When ok is true,
// the returned migration and error are passed to the caller unchanged. A claim with neither a
// migration nor an error is reported as an error.
//
// [Loader.Collect] loads directories concurrently, so Recognize must be safe for concurrent use.
type Recognizer interface {
	Recognize(fsys fs.FS, dir string) (m Migration, ok bool, err error)
}

// RecognizerFunc is an adapter to allow the use of ordinary functions as a [Recognizer].
type RecognizerFunc func(fsys fs.FS, dir string) (Migration, bool, error)

func (f RecognizerFunc) Recognize(fsys fs.FS, dir string) (Migration, bool, error) {
	return f(fsys, dir)
}

// LoaderOption is a configuration option for a [Loader].
type LoaderOption func(*Loader)

// WithLoaderRecognizer registers a recognizer that is consulted, in registration order, before the
// directory format. r may be called from several goroutines at once.
func WithLoaderRecognizer(r Recognizer) LoaderOption {
	return func(l *Loader) {
		if r != nil {
			l.recognizers = append(l.recognizers, r)
		}
	}
}

// WithConcurrency limits the number of directories [Loader.Collect] loads at once. Values below 1
// are ignored.
func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// Loader turns directories into migrations. A Loader is safe for concurrent use.
type Loader struct {
	fsys        fs.FS
	recognizers []Recognizer
	concurrency int
}

// NewLoader returns a Loader reading from fsys. A nil fsys contains no migrations.
func NewLoader(fsys fs.FS, opts ...LoaderOption) *Loader {
	if fsys == nil {
		fsys = noopFS{}
	}
	l := &Loader{
		fsys:        fsys,
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the migration stored in dir on the local filesystem.
func Load(dir string) (Migration, error) {
	return NewLoader(osFS{}).Load(filepath.ToSlash(dir))
}

// Collect loads every migration directory inside dir on the local filesystem, sorted by version.
func Collect(dir string) ([]Migration, error) {
	return NewLoader(osFS{}).Collect(filepath.ToSlash(dir))
}

// Load reads the migration stored in dir.
//
// Registered recognizers get the first chance to claim dir. Otherwise dir must hold an up.sql and a
// down.sql script, and may hold a metadata.toml file which is decoded once, here.
func (l *Loader) Load(dir string) (Migration, error) {
	for _, r := range l.recognizers {
		m, ok, err := r.Recognize(l.fsys, dir)
		if !ok {
			continue
		}
		if err == nil && m == nil {
			return nil, fmt.Errorf("recognizer claimed %s but returned no migration", dir)
		}
		return m, err
	}
	ok, err := IsMigrationDir(l.fsys, dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &UnknownFormatError{Path: dir}
	}
	version, err := VersionFromPath(dir)
	if err != nil {
		return nil, err
	}
	md, err := l.loadMetadata(dir)
	if err != nil {
		return nil, err
	}
	return &sqlMigration{
		fsys:     l.fsys,
		dir:      dir,
		version:  version,
		metadata: md,
	}, nil
}

func (l *Loader) loadMetadata(dir string) (*tomlMetadata, error) {
	filename := path.Join(dir, MetadataFile)
	data, err := fs.ReadFile(l.fsys, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &FilesystemError{Op: "read", Path: filename, Err: err}
	}
	md, err := parseMetadata(data)
	if err != nil {
		return nil, &MetadataError{Path: filename, Err: err}
	}
	return md, nil
}

// Collect loads every subdirectory of dir whose name does not start with a dot, and returns the
// migrations sorted by version. Regular files inside dir are ignored. Two migrations with the same
// version return a [*DuplicateVersionError].
func (l *Loader) Collect(dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		return nil, &FilesystemError{Op: "list", Path: dir, Err: err}
	}
	var dirs []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		fullpath := path.Join(dir, entry.Name())
		isDir, err := l.isDir(entry, fullpath)
		if err != nil {
			return nil, err
		}
		if isDir {
			dirs = append(dirs, fullpath)
		}
	}

	migrations := make([]Migration, len(dirs))
	var g errgroup.Group
	g.SetLimit(l.concurrency)
	for i, d := range dirs {
		g.Go(func() error {
			m, err := l.Load(d)
			if err != nil {
				return err
			}
			migrations[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := sortAndCheck(migrations); err != nil {
		return nil, err
	}
	return migrations, nil
}

func (l *Loader) isDir(entry fs.DirEntry, fullpath string) (bool, error) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}
	info, err := fs.Stat(l.fsys, fullpath)
	if err != nil {
		return false, &FilesystemError{Op: "stat", Path: fullpath, Err: err}
	}
	return info.IsDir(), nil
}

// sortAndCheck sorts migrations in ascending order by version and rejects duplicate versions.
func sortAndCheck(migrations []Migration) error {
	sort.SliceStable(migrations, func(i, j int) bool {
		return migrations[i].Version() < migrations[j].Version()
	})
	for i := 1; i < len(migrations); i++ {
		prev, cur := migrations[i-1], migrations[i]
		if prev.Version() == cur.Version() {
			return &DuplicateVersionError{
				Version:  cur.Version(),
				Existing: Name(prev),
				Current:  Name(cur),
			}
		}
	}
	return nil
}
