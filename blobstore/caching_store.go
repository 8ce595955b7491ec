package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// CachingStore wraps a Store (typically remote) and caches whole blobs in a
// local directory. Snapshot blobs are immutable, so a cached copy never needs
// invalidation. Concurrent opens of the same uncached blob are collapsed into
// a single download.
type CachingStore struct {
	inner   Store
	dir     string
	local   *LocalStore
	limiter *rate.Limiter
	group   singleflight.Group
}

// CachingOptions configures a CachingStore.
type CachingOptions struct {
	// FetchesPerSecond throttles downloads from the inner store.
	// Zero or negative disables throttling.
	FetchesPerSecond float64
}

// NewCachingStore creates a CachingStore that materializes blobs from inner
// into dir. The directory is created if it does not exist.
func NewCachingStore(inner Store, dir string, optFns ...func(*CachingOptions)) (*CachingStore, error) {
	opts := CachingOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	var limiter *rate.Limiter
	if opts.FetchesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.FetchesPerSecond), 1)
	}

	return &CachingStore{
		inner:   inner,
		dir:     dir,
		local:   NewLocalStore(dir),
		limiter: limiter,
	}, nil
}

// Open returns the cached blob, downloading it first if necessary.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	cached := s.cachePath(name)

	if _, err := os.Stat(cached); err == nil {
		return s.local.Open(ctx, filepath.Base(cached))
	}

	_, err, _ := s.group.Do(name, func() (any, error) {
		return nil, s.fetch(ctx, name, cached)
	})
	if err != nil {
		return nil, err
	}

	return s.local.Open(ctx, filepath.Base(cached))
}

// Warm prefetches the named blobs concurrently. Blobs already cached are
// skipped. The first fetch error cancels the remaining downloads.
func (s *CachingStore) Warm(ctx context.Context, names ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, name := range names {
		g.Go(func() error {
			cached := s.cachePath(name)
			if _, err := os.Stat(cached); err == nil {
				return nil
			}
			_, err, _ := s.group.Do(name, func() (any, error) {
				return nil, s.fetch(ctx, name, cached)
			})
			return err
		})
	}

	return g.Wait()
}

func (s *CachingStore) fetch(ctx context.Context, name, cached string) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(s.dir, ".fetch-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if d, ok := s.inner.(Downloader); ok {
		if _, err := d.Download(ctx, name, tmp); err != nil {
			return fmt.Errorf("download %s: %w", name, err)
		}
	} else {
		blob, err := s.inner.Open(ctx, name)
		if err != nil {
			return err
		}
		_, err = io.Copy(tmp, blob)
		_ = blob.Close()
		if err != nil {
			return fmt.Errorf("fetch %s: %w", name, err)
		}
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	// Rename is atomic, so concurrent readers never see a partial blob.
	return os.Rename(tmp.Name(), cached)
}

var cacheNameReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

func (s *CachingStore) cachePath(name string) string {
	return filepath.Join(s.dir, cacheNameReplacer.Replace(name))
}
