package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/chunkset/resource"
)

// ErrNoFiles is returned when a directory holds no file with the requested extension.
var ErrNoFiles = errors.New("no data files")

// List is one parsed file.
type List struct {
	Name   string // base name of the file
	Values []uint32
}

type loadOptions struct {
	logger *slog.Logger
}

// LoadOption configures LoadDir.
type LoadOption func(*loadOptions)

// WithLogger reports per-file progress to l.
func WithLogger(l *slog.Logger) LoadOption {
	return func(o *loadOptions) { o.logger = l }
}

// LoadDir parses every regular file in dir whose name ends in ext.
// Files are read concurrently, bounded by rc's worker limit and paced by its
// IO limit, and returned in lexical order of their names.
func LoadDir(ctx context.Context, dir, ext string, rc *resource.Controller, opts ...LoadOption) ([]List, error) {
	o := loadOptions{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ext) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%s/*%s: %w", dir, ext, ErrNoFiles)
	}
	slices.Sort(names)

	lists := make([]List, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rc.Workers())

	for i, name := range names {
		g.Go(func() error {
			values, err := loadFile(gctx, filepath.Join(dir, name), rc)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			lists[i] = List{Name: name, Values: values}
			o.logger.DebugContext(gctx, "loaded data file", "file", name, "values", len(values))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.logger.InfoContext(ctx, "loaded dataset", "dir", dir, "ext", ext, "files", len(lists))
	return lists, nil
}

func loadFile(ctx context.Context, path string, rc *resource.Controller) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseInts(resource.NewRateLimitedReader(ctx, f, rc))
}
