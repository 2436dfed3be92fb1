package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"poketimes/internal/config"
	"poketimes/internal/logger"
	"poketimes/internal/models"
	"poketimes/internal/store"
)

// Getter fetches a URL body.
type Getter interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Dispatcher receives the loader's event.
type Dispatcher func(store.Event)

// Loader issues the startup request and turns the response into posts.
type Loader struct {
	getter Getter
	logger *logger.Logger
	url    string
}

// New creates a loader for the configured source.
func New(cfg *config.SourceConfig, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Discard()
	}

	fetcher := NewFetcher(cfg).WithLogger(log.With("component", "fetcher"))

	return NewWithGetter(fetcher, cfg.URL, log)
}

// NewWithGetter creates a loader with an injected getter (useful for testing).
func NewWithGetter(getter Getter, url string, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Discard()
	}

	return &Loader{
		getter: getter,
		logger: log.With("component", "loader"),
		url:    url,
	}
}

// URL returns the endpoint the loader reads.
func (l *Loader) URL() string {
	return l.url
}

// Load fetches and decodes the post list.
func (l *Loader) Load(ctx context.Context) ([]models.Post, error) {
	body, err := l.getter.Fetch(ctx, l.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	posts, err := DecodePosts(body)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

// Start runs Load once in its own goroutine. On success the posts are
// handed to dispatch as a PostsReceived event; on failure nothing is
// dispatched. The returned channel yields the outcome and is then closed.
func (l *Loader) Start(ctx context.Context, dispatch Dispatcher) <-chan error {
	done := make(chan error, 1)

	go func() {
		defer close(done)

		startTime := time.Now()
		l.logger.Info("loading posts", "url", l.url)

		posts, err := l.Load(ctx)
		if err != nil {
			l.logger.Error("loading posts failed", "url", l.url, "error", err)
			done <- err

			return
		}

		l.logger.Info("posts received", "count", len(posts), "duration", time.Since(startTime))
		dispatch(store.PostsReceived{Posts: posts})

		done <- nil
	}()

	return done
}

// wirePost mirrors one record of the remote payload. Every field is
// required; pointers tell an absent field from a zero value.
type wirePost struct {
	ID     *int32  `json:"id"`
	UserID *int32  `json:"userId"`
	Title  *string `json:"title"`
	Body   *string `json:"body"`
}

// DecodePosts parses a JSON array of post records. Unknown fields are
// ignored; a null record, a missing field or an id outside 32 bits fails.
func DecodePosts(body []byte) ([]models.Post, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrDecode)
	}

	var records []*wirePost
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	posts := make([]models.Post, 0, len(records))

	for i, w := range records {
		if w == nil {
			return nil, fmt.Errorf("%w: record %d is null", ErrDecode, i)
		}

		if field := w.missingField(); field != "" {
			return nil, fmt.Errorf("%w: record %d missing %q", ErrDecode, i, field)
		}

		posts = append(posts, models.Post{
			ID:       int(*w.ID),
			AuthorID: int(*w.UserID),
			Title:    *w.Title,
			Body:     *w.Body,
		})
	}

	return posts, nil
}

func (w *wirePost) missingField() string {
	switch {
	case w.ID == nil:
		return "id"
	case w.UserID == nil:
		return "userId"
	case w.Title == nil:
		return "title"
	case w.Body == nil:
		return "body"
	default:
		return ""
	}
}
