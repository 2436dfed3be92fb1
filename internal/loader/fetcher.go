// Package loader fetches the remote post list and delivers it to the store.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"poketimes/internal/config"
	"poketimes/internal/logger"
	"poketimes/pkg/utils"
)

// Load failure categories.
var (
	ErrTransport            = errors.New("transport failure")
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrBodyTooLarge         = errors.New("response body exceeds limit")
	ErrDecode               = errors.New("malformed posts payload")
)

// Fetcher performs the single outbound GET.
type Fetcher struct {
	client    *http.Client
	headers   *utils.HTTPHelper
	logger    *logger.Logger
	bodyLimit int64
}

// NewFetcher creates a fetcher from the source configuration.
func NewFetcher(cfg *config.SourceConfig) *Fetcher {
	return NewFetcherWithClient(&http.Client{Timeout: cfg.GetTimeout()}, cfg)
}

// NewFetcherWithClient creates a fetcher using the given HTTP client.
func NewFetcherWithClient(client *http.Client, cfg *config.SourceConfig) *Fetcher {
	return &Fetcher{
		client:    client,
		headers:   utils.NewHTTPHelper(cfg.UserAgent),
		logger:    logger.Discard(),
		bodyLimit: cfg.GetBodyLimit(),
	}
}

// WithLogger sets the logger that records each request's status and timing.
func (f *Fetcher) WithLogger(log *logger.Logger) *Fetcher {
	if log != nil {
		f.logger = log
	}

	return f
}

// FetchWithMetrics returns (body, statusCode, duration, error).
func (f *Fetcher) FetchWithMetrics(ctx context.Context, url string) ([]byte, int, time.Duration, error) {
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, 0, time.Since(startTime), fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}

	req.Header = f.headers.BuildHeaders(nil)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, time.Since(startTime), fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if !f.headers.IsSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		return nil, resp.StatusCode, time.Since(startTime), fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	// One byte past the limit tells a full body from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.bodyLimit+1))
	if err != nil {
		return nil, resp.StatusCode, time.Since(startTime), fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	if int64(len(body)) > f.bodyLimit {
		return nil, resp.StatusCode, time.Since(startTime), fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, f.bodyLimit)
	}

	return body, resp.StatusCode, time.Since(startTime), nil
}

// Fetch returns the response body of a successful GET.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, status, duration, err := f.FetchWithMetrics(ctx, url)
	if err != nil {
		f.logger.Log(ctx, slog.LevelDebug, "fetch failed",
			"url", url, "status", status, "duration", duration, "error", err)

		return nil, err
	}

	f.logger.Log(ctx, slog.LevelDebug, "fetch complete",
		"url", url, "status", status, "bytes", len(body), "duration", duration)

	return body, nil
}
