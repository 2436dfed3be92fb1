package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"poketimes/internal/config"
	"poketimes/internal/logger"
	"poketimes/internal/models"
	"poketimes/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer

	cfg := config.Default()
	cfg.Server.CorsAllowedOrigins = []string{"http://allowed.example"}

	st := store.New(nil)

	return NewServer(cfg, st, logger.NewLoggerWithWriter("debug", &logs)), st, &logs
}

func do(t *testing.T, h http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, http.NoBody)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHome_Empty(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := do(t, srv.Routes(), http.MethodGet, "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{"No posts to show", `href="/about"`, `href="/contact"`, "<title>Poke&#39; Times</title>"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestHome_RendersLatestState(t *testing.T) {
	srv, st, _ := newTestServer(t)
	h := srv.Routes()

	st.Dispatch(store.PostsReceived{Posts: []models.Post{{ID: 1, AuthorID: 1, Title: "T", Body: "B"}}})

	body := do(t, h, http.MethodGet, "/", nil).Body.String()

	if strings.Contains(body, "No posts to show") {
		t.Error("placeholder shown after posts were received")
	}

	if strings.Count(body, `class="post card"`) != 1 {
		t.Errorf("Expected one card:\n%s", body)
	}

	if !strings.Contains(body, `<a href="/posts/1"><span class="card-title red-text">T</span></a>`) {
		t.Errorf("card link missing:\n%s", body)
	}
}

func TestHealth(t *testing.T) {
	srv, st, _ := newTestServer(t)
	h := srv.Routes()

	var resp HealthResponse

	rec := do(t, h, http.MethodGet, "/health", nil)
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if resp.Status != "ok" || resp.Loaded || resp.Posts != 0 {
		t.Errorf("unexpected health before load: %+v", resp)
	}

	st.Dispatch(store.PostsReceived{Posts: []models.Post{{ID: 1}, {ID: 2}}})

	rec = do(t, h, http.MethodGet, "/health", nil)
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if !resp.Loaded || resp.Posts != 2 {
		t.Errorf("unexpected health after load: %+v", resp)
	}
}

func TestActions_AreNoOps(t *testing.T) {
	srv, st, logs := newTestServer(t)
	h := srv.Routes()

	posts := []models.Post{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}
	st.Dispatch(store.PostsReceived{Posts: posts})

	for _, target := range []string{"/actions/view/1", "/actions/delete/2", "/actions/delete/99"} {
		rec := do(t, h, http.MethodPost, target, nil)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("%s: expected 303, got %d", target, rec.Code)
		}

		if loc := rec.Header().Get("Location"); loc != "/" {
			t.Errorf("%s: Location = %q, want /", target, loc)
		}
	}

	if got := st.State(); len(got.Posts) != 2 {
		t.Errorf("actions changed the posts: %+v", got)
	}

	if st.Version() != 4 {
		t.Errorf("Expected 4 applied events, got %d", st.Version())
	}

	if !strings.Contains(logs.String(), "DeletePost(99)") {
		t.Errorf("dispatched event not logged:\n%s", logs.String())
	}
}

func TestActions_BadRequests(t *testing.T) {
	srv, st, _ := newTestServer(t)
	h := srv.Routes()

	if rec := do(t, h, http.MethodPost, "/actions/view/abc", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("non-integer id: expected 400, got %d", rec.Code)
	}

	if rec := do(t, h, http.MethodGet, "/actions/view/1", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET action: expected 405, got %d", rec.Code)
	}

	if st.Version() != 0 {
		t.Errorf("rejected requests dispatched events: %d", st.Version())
	}
}

func TestPlaceholderLinks_NotRouted(t *testing.T) {
	srv, _, _ := newTestServer(t)
	h := srv.Routes()

	for _, target := range []string{"/about", "/contact", "/posts/1"} {
		if rec := do(t, h, http.MethodGet, target, nil); rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", target, rec.Code)
		}
	}
}

func TestAssets(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := do(t, srv.Routes(), http.MethodGet, "/assets/pokeball.png", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}

	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("asset body is not a PNG")
	}
}

func TestCORS(t *testing.T) {
	srv, _, _ := newTestServer(t)
	h := srv.Routes()

	rec := do(t, h, http.MethodGet, "/health", map[string]string{"Origin": "http://allowed.example"})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://allowed.example" {
		t.Errorf("allowed origin not echoed, got %q", got)
	}

	rec = do(t, h, http.MethodGet, "/health", map[string]string{"Origin": "http://other.example"})
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected CORS header for other origin: %q", got)
	}
}

func TestRequestLogger(t *testing.T) {
	srv, _, logs := newTestServer(t)

	do(t, srv.Routes(), http.MethodGet, "/health", nil)

	out := logs.String()
	for _, want := range []string{"msg=request", "method=GET", "path=/health", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	srv, _, _ := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
