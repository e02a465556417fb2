package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/humanizer/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "test-agent",
		MaxBodyBytes: 1 << 20,
	}
}

func noSleep(t *testing.T) {
	orig := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) {}
	t.Cleanup(func() { fetchSleepFunc = orig })
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("expected user agent test-agent, got %s", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, "<html><head><title>Post</title></head><body><p>Hello there.</p></body></html>")
	}))
	defer server.Close()

	doc, err := NewFetcher(testHTTPConfig()).Fetch(context.Background(), server.URL+"/blog/my-post")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if doc.Text != "Hello there." {
		t.Errorf("unexpected text: %q", doc.Text)
	}
	if doc.Title != "Post" {
		t.Errorf("expected title Post, got %q", doc.Title)
	}
}

func TestFetch_PlainTextUsesURLSubject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = fmt.Fprint(w, "Just   text.")
	}))
	defer server.Close()

	doc, err := NewFetcher(testHTTPConfig()).Fetch(context.Background(), server.URL+"/notes/field_report.txt")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if doc.Text != "Just text." {
		t.Errorf("unexpected text: %q", doc.Text)
	}
	if doc.Title != "field report" {
		t.Errorf("expected subject from URL, got %q", doc.Title)
	}
}

func TestFetch_TransientThenSuccess(t *testing.T) {
	noSleep(t)
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<p>OK</p>")
	}))
	defer server.Close()

	doc, err := NewFetcher(testHTTPConfig()).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if doc.Text != "OK" {
		t.Errorf("unexpected text: %q", doc.Text)
	}
	if attempts.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts.Load())
	}
}

func TestFetch_PermanentFailure(t *testing.T) {
	noSleep(t)
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewFetcher(testHTTPConfig()).Fetch(context.Background(), server.URL)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 status error, got %v", err)
	}
	if attempts.Load() != 1 {
		t.Errorf("expected 404 not to be retried, got %d attempts", attempts.Load())
	}
}

func TestFetch_AllRetriesExhausted(t *testing.T) {
	noSleep(t)
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	if _, err := NewFetcher(testHTTPConfig()).Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error after all retries exhausted")
	}
	if attempts.Load() != maxAttempts {
		t.Errorf("expected %d attempts, got %d", maxAttempts, attempts.Load())
	}
}

func TestFetch_TooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = fmt.Fprint(w, strings.Repeat("a", 200))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 100
	_, err := NewFetcher(cfg).Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestFetch_RespectsRobots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = fmt.Fprint(w, "public text")
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.RespectRobots = true
	fetcher := NewFetcher(cfg)

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/private/page"); !errors.Is(err, ErrDisallowed) {
		t.Errorf("expected ErrDisallowed, got %v", err)
	}
	if _, err := fetcher.Fetch(context.Background(), server.URL+"/public"); err != nil {
		t.Errorf("expected public page to be fetched, got %v", err)
	}
}

func TestIsRetryableFetchError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"503", &StatusError{Code: 503}, true},
		{"500", &StatusError{Code: 500}, true},
		{"429", fmt.Errorf("wrapped: %w", &StatusError{Code: 429}), true},
		{"404", &StatusError{Code: 404}, false},
		{"403", &StatusError{Code: 403}, false},
		{"cancelled", fmt.Errorf("fetch: %w", context.Canceled), false},
		{"plain", errors.New("read body: unexpected EOF"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableFetchError(tt.err); got != tt.retryable {
				t.Errorf("isRetryableFetchError(%v) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}
}

func TestLoader(t *testing.T) {
	path := writeFile(t, "a.txt", []byte("file text"))
	loader := NewLoader(nil)

	text, err := loader.Load(context.Background(), path)
	if err != nil || text != "file text" {
		t.Errorf("expected file text, got %q, %v", text, err)
	}
	if _, err := loader.Load(context.Background(), "https://example.com"); err == nil {
		t.Error("expected error when fetching is not configured")
	}
}

func TestReadAll(t *testing.T) {
	text, err := ReadAll(strings.NewReader("  hello \n"), 100)
	if err != nil || text != "hello" {
		t.Errorf("expected hello, got %q, %v", text, err)
	}
	if _, err := ReadAll(strings.NewReader("too long"), 3); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}
