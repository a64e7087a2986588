package supermap

import (
	"context"

	"github.com/grailbio/asmbench/encoding/blast"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
)

// Cache locates and stores filtered artifacts, keyed by the source
// alignment file and the filter direction.
type Cache interface {
	// Lookup reports whether an artifact for (src, dir) already exists,
	// returning its path if so.
	Lookup(ctx context.Context, src string, dir Direction) (path string, ok bool)
	// Materialize stores recs as the artifact for (src, dir) and returns
	// the path it was stored at.
	Materialize(ctx context.Context, src string, dir Direction, recs []blast.Record) (path string, err error)
}

// FileCache keeps artifacts next to the source alignment file, at
// "<src>.query.supermap" and "<src>.ref.supermap".  The artifacts are
// ordinary 12-column tabular hit files.
type FileCache struct{}

// ArtifactPath returns the artifact path for (src, dir).
func (FileCache) ArtifactPath(src string, dir Direction) string {
	return src + "." + dir.String() + ".supermap"
}

// Lookup implements Cache.  Any stat failure is treated as absence; a
// genuinely unwritable location surfaces as an error from Materialize
// instead.
func (c FileCache) Lookup(ctx context.Context, src string, dir Direction) (string, bool) {
	path := c.ArtifactPath(src, dir)
	if _, err := file.Stat(ctx, path); err != nil {
		return "", false
	}
	return path, true
}

// Materialize implements Cache.
func (c FileCache) Materialize(ctx context.Context, src string, dir Direction, recs []blast.Record) (path string, err error) {
	path = c.ArtifactPath(src, dir)
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return "", err
	}
	defer file.CloseAndReport(ctx, out, &err)
	w := blast.NewWriter(out.Writer(ctx))
	for i := range recs {
		if err = w.Write(&recs[i]); err != nil {
			return "", err
		}
	}
	if err = w.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

// Load returns the non-redundant hits of src for the given direction.
// If the cache already holds an artifact for (src, dir) it is read back
// as is; otherwise the raw hits are read, filtered, and stored through
// the cache before returning.  Read, filter, or store failures propagate
// to the caller.
func Load(ctx context.Context, src string, dir Direction, cache Cache) ([]blast.Record, error) {
	if path, ok := cache.Lookup(ctx, src, dir); ok {
		return blast.ReadFile(ctx, path)
	}
	recs, err := blast.ReadFile(ctx, src)
	if err != nil {
		return nil, err
	}
	filtered := Filter(recs, dir)
	path, err := cache.Materialize(ctx, src, dir, filtered)
	if err != nil {
		return nil, err
	}
	log.Printf("%s: kept %d of %d hits", path, len(filtered), len(recs))
	return filtered, nil
}
