package ignorelist

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"predator/internal/support"
)

const (
	// DefaultSource is queried on every run unless offline mode is active.
	DefaultSource = "https://v0lttech.com/predator/manifest/serve.php?type=ignore&user=cvieira&list=publicignorelist"

	DefaultTimeout     = 2 * time.Second
	DefaultConcurrency = 4

	maxResponseBytes = 10 << 20 // 10 MiB safety cap
	userAgent        = "predator-ignorelist/1.0"
)

// HTTPDoer executes HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher runs the ignore list pipeline. The zero value is usable; unset fields
// fall back to the package defaults.
type Fetcher struct {
	Client HTTPDoer
	// DefaultSource overrides the built-in source URL.
	DefaultSource string
	// Timeout bounds each remote request.
	Timeout time.Duration
	// Concurrency limits parallel remote requests. 1 queries hosts one by one.
	Concurrency int
	// ValidateURL decides whether a source is worth requesting.
	ValidateURL func(string) bool
	// Notifier receives the local file warnings.
	Notifier Notifier
	Logger   *log.Logger
}

// NewFetcher returns a Fetcher with the default source, timeout and concurrency.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:        &http.Client{},
		DefaultSource: DefaultSource,
		Timeout:       DefaultTimeout,
		Concurrency:   DefaultConcurrency,
		ValidateURL:   support.IsValidURL,
	}
}

// RemoteSources returns the sources to query for opts, in query order.
func (f *Fetcher) RemoteSources(opts Options) []string {
	if opts.Offline {
		return nil
	}

	sources := []string{f.defaultSource()}
	if opts.Enabled {
		sources = append(sources, opts.RemoteSources...)
	}
	return sources
}

// FetchRemote queries every remote source and returns one result per source in
// the order of RemoteSources, regardless of the order requests complete in.
func (f *Fetcher) FetchRemote(ctx context.Context, opts Options) []SourceResult {
	if ctx == nil {
		ctx = context.Background()
	}

	sources := f.RemoteSources(opts)
	if len(sources) == 0 {
		return nil
	}

	results := make([]SourceResult, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency())

	for i, src := range sources {
		i, src := i, src
		kind := KindRemote
		if i == 0 {
			kind = KindDefault
		}
		g.Go(func() error {
			results[i] = f.fetchSource(gctx, kind, src)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (f *Fetcher) fetchSource(ctx context.Context, kind SourceKind, source string) SourceResult {
	result := SourceResult{Kind: kind, Source: source}

	if !f.validURL(source) {
		result.Status = StatusInvalidURL
		return result
	}

	body, err := f.get(ctx, source)
	if err != nil {
		f.logger().Debug("Ignore list source unavailable", "source", source, "error", err)
		result.Status = StatusFetchFailed
		result.Err = err
		return result
	}

	entries, err := parseList(body)
	if err != nil {
		f.logger().Debug("Ignore list source returned malformed data", "source", source, "error", err)
		result.Status = StatusMalformed
		result.Err = err
		return result
	}

	result.Status = StatusLoaded
	result.Entries = entries
	return result
}

func (f *Fetcher) get(ctx context.Context, source string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(content) > maxResponseBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", maxResponseBytes)
	}
	return content, nil
}

func (f *Fetcher) defaultSource() string {
	if f.DefaultSource == "" {
		return DefaultSource
	}
	return f.DefaultSource
}

func (f *Fetcher) timeout() time.Duration {
	if f.Timeout <= 0 {
		return DefaultTimeout
	}
	return f.Timeout
}

func (f *Fetcher) concurrency() int {
	if f.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return f.Concurrency
}

func (f *Fetcher) client() HTTPDoer {
	if f.Client == nil {
		return http.DefaultClient
	}
	return f.Client
}

func (f *Fetcher) validURL(source string) bool {
	if f.ValidateURL == nil {
		return support.IsValidURL(source)
	}
	return f.ValidateURL(source)
}

func (f *Fetcher) logger() *log.Logger {
	if f.Logger == nil {
		return log.Default()
	}
	return f.Logger
}

func (f *Fetcher) notifier() Notifier {
	if f.Notifier == nil {
		return f.logger()
	}
	return f.Notifier
}
