package ontology

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/sorgerlab/indra-sub002/internal/cache"
	"github.com/sorgerlab/indra-sub002/internal/logger"
)

// SnapshotFetcher downloads published ontology snapshots. Snapshot hosts are
// shared community infrastructure, so downloads are rate limited, and the
// result is cached so repeated runs against the same snapshot URL stay
// local. Fetching happens before preassembly begins, never during it.
type SnapshotFetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      cache.Cache
	userAgent  string
	maxBytes   int64
}

// FetcherOptions configures a SnapshotFetcher.
type FetcherOptions struct {
	Timeout          time.Duration
	RequestsPerSec   float64
	Burst            int
	UserAgent        string
	MaxBytes         int64
	Cache            cache.Cache // nil disables caching
}

// NewSnapshotFetcher creates a fetcher with the given options, applying
// defaults for zero values.
func NewSnapshotFetcher(opts FetcherOptions) *SnapshotFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 2 * time.Minute
	}
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 1
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "preassembly/0.1"
	}
	if opts.MaxBytes == 0 {
		opts.MaxBytes = 256 << 20
	}
	return &SnapshotFetcher{
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSec), opts.Burst),
		cache:      opts.Cache,
		userAgent:  opts.UserAgent,
		maxBytes:   opts.MaxBytes,
	}
}

// Fetch downloads the snapshot at url, serving from cache when possible.
func (f *SnapshotFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	key := cache.SnapshotKey(url)
	if f.cache != nil {
		if data, found := f.cache.Get(key); found {
			logger.Logger.Debugw("ontology snapshot served from cache", "url", url)
			return data, nil
		}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch snapshot")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Newf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot body")
	}

	if f.cache != nil {
		if err := f.cache.Set(key, data, 0); err != nil {
			logger.Logger.Warnw("failed to cache ontology snapshot", "url", url, "error", err)
		}
	}
	return data, nil
}

// FetchToFile downloads the snapshot at url and writes it to dest.
func (f *SnapshotFetcher) FetchToFile(ctx context.Context, url, dest string) error {
	data, err := f.Fetch(ctx, url)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return errors.Wrap(err, "write snapshot file")
	}
	return nil
}
