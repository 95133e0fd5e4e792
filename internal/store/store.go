// Package store keeps repair contracts as TOML files, one file per
// contract, in a single archive directory.
package store

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"archiwum/internal/contract"
)

const (
	// Suffix ends the name of every contract file.
	Suffix = ".repair-contract.toml"

	// DefaultConcurrency bounds parallel file reads in List.
	DefaultConcurrency = 128

	fileTimeLayout = "2006-01-02_15-04-05"
)

// ErrExists is returned by Create when a contract file with the same name
// is already in the archive.
var ErrExists = errors.New("entry already exists")

// Entry is a contract together with the file it is stored in.
type Entry struct {
	Path     string
	Contract contract.RepairContract
}

// Name returns the base name of the entry file.
func (e Entry) Name() string { return filepath.Base(e.Path) }

// Database is the archive directory. Operations are serialized.
type Database struct {
	mu          sync.Mutex
	baseDir     string
	concurrency int
	logger      *zap.Logger
}

// Option configures a Database.
type Option func(*Database)

// WithConcurrency bounds parallel file reads. Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(d *Database) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(d *Database) {
		if l != nil {
			d.logger = l
		}
	}
}

// New opens the archive in baseDir, creating the directory if needed.
func New(baseDir string, opts ...Option) (*Database, error) {
	d := &Database{
		baseDir:     baseDir,
		concurrency: DefaultConcurrency,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if _, err := os.Stat(baseDir); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(baseDir, 0755); err != nil {
			return nil, fmt.Errorf("creating archive directory %s: %w", baseDir, err)
		}
		d.logger.Warn("created missing archive directory", zap.String("dir", baseDir))
	} else if err != nil {
		return nil, fmt.Errorf("checking archive directory %s: %w", baseDir, err)
	}
	d.logger.Info("using archive", zap.String("dir", baseDir))
	return d, nil
}

// BaseDir returns the archive directory.
func (d *Database) BaseDir() string { return d.baseDir }

// FileName returns the name under which c is stored.
func FileName(c contract.RepairContract) string {
	return c.Date.Format(fileTimeLayout) + Suffix
}

// List reads every contract in the archive. Files not ending in .toml and
// directories are skipped. Either all files load or an error is returned.
// Entries are ordered by contract date, then path.
func (d *Database) List(ctx context.Context) ([]Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	dirEntries, err := os.ReadDir(d.baseDir)
	if err != nil {
		return nil, fmt.Errorf("reading files from %s: %w", d.baseDir, err)
	}

	var paths []string
	for _, de := range dirEntries {
		if !de.Type().IsRegular() || !strings.HasSuffix(de.Name(), ".toml") {
			d.logger.Debug("ignoring", zap.String("name", de.Name()), zap.Stringer("mode", de.Type()))
			continue
		}
		paths = append(paths, filepath.Join(d.baseDir, de.Name()))
	}

	entries := make([]Entry, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry, err := ReadEntry(path)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if c := a.Contract.Date.Compare(b.Contract.Date.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
	d.logger.Info("listed archive", zap.Int("entries", len(entries)), zap.Int("skipped", len(dirEntries)-len(paths)))
	return entries, nil
}

// Create stores c in a new file named after its date. It fails with
// ErrExists rather than overwrite another contract. The file appears
// complete or not at all.
func (d *Database) Create(ctx context.Context, c contract.RepairContract) (Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	name := FileName(c)
	path := filepath.Join(d.baseDir, name)
	data, err := Marshal(c)
	if err != nil {
		return Entry{}, fmt.Errorf("serializing contract %s: %w", c.ID, err)
	}
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	tmp, err := os.CreateTemp(d.baseDir, ".archiwum-*.tmp")
	if err != nil {
		return Entry{}, fmt.Errorf("writing %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return Entry{}, fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return Entry{}, fmt.Errorf("writing %s: %w", name, err)
	}
	// Link fails if path exists, so a concurrent writer can never be clobbered.
	if err := os.Link(tmp.Name(), path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return Entry{}, fmt.Errorf("writing %s: %w", name, ErrExists)
		}
		return Entry{}, fmt.Errorf("writing %s: %w", name, err)
	}

	d.logger.Info("created contract", zap.String("path", path), zap.Stringer("id", c.ID))
	return Entry{Path: path, Contract: c}, nil
}

// ReadEntry loads a single contract file.
func ReadEntry(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("reading contents of %s: %w", path, err)
	}
	c, err := Unmarshal(data)
	if err != nil {
		return Entry{}, fmt.Errorf("reading contents of %s: %w", path, err)
	}
	return Entry{Path: path, Contract: c}, nil
}

// Marshal renders c as TOML.
func Marshal(c contract.RepairContract) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a contract file.
func Unmarshal(data []byte) (contract.RepairContract, error) {
	var c contract.RepairContract
	if err := toml.Unmarshal(data, &c); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return contract.RepairContract{}, fmt.Errorf("parsing contents at line %d column %d: %w", row, col, err)
		}
		return contract.RepairContract{}, fmt.Errorf("parsing contents: %w", err)
	}
	return c, nil
}
