package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestPageFetcherReturnsBody(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><h3>ok</h3></body></html>"))
	}))
	defer srv.Close()

	f := NewPageFetcher(srv.URL, time.Second)
	body, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if !strings.Contains(body, "<h3>ok</h3>") {
		t.Fatalf("unexpected body: %q", body)
	}
	if gotUA != DefaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUA, DefaultUserAgent)
	}
}

func TestPageFetcherNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewPageFetcher(srv.URL, time.Second).Fetch(context.Background())
	if err == nil {
		t.Fatalf("expected error for HTTP 500")
	}
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestPageFetcherFollowsRedirectToOtherHost(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>moved here</body></html>"))
	}))
	defer target.Close()
	// 同一端口换成 localhost，主机名与源站不同
	moved := strings.Replace(target.URL, "127.0.0.1", "localhost", 1) + "/new"

	src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, moved, http.StatusMovedPermanently)
	}))
	defer src.Close()

	body, err := NewPageFetcher(src.URL+"/old", time.Second).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if !strings.Contains(body, "moved here") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestPageFetcherStatusClasses(t *testing.T) {
	cases := []struct {
		status  int
		wantErr bool
	}{
		{http.StatusOK, false},
		{http.StatusNonAuthoritativeInfo, false},
		{http.StatusNoContent, false},
		{http.StatusNotFound, true},
		{http.StatusServiceUnavailable, true},
	}

	for _, c := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.status)
		}))
		_, err := NewPageFetcher(srv.URL, time.Second).Fetch(context.Background())
		srv.Close()

		if c.wantErr {
			if !errors.Is(err, ErrUnexpectedStatus) {
				t.Fatalf("status %d: expected ErrUnexpectedStatus, got %v", c.status, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("status %d: unexpected error %v", c.status, err)
		}
	}
}

func TestPageFetcherNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	if _, err := NewPageFetcher(addr, time.Second).Fetch(context.Background()); err == nil {
		t.Fatalf("expected error when server is down")
	}
}

func TestPageFetcherTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := NewPageFetcher(srv.URL, 100*time.Millisecond).Fetch(context.Background())
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("timeout not honored, took %v", elapsed)
	}
}

func TestPageFetcherCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewPageFetcher("https://example.com", time.Second).Fetch(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPageFetcherInvalidURL(t *testing.T) {
	if _, err := NewPageFetcher("not a url", time.Second).Fetch(context.Background()); err == nil {
		t.Fatalf("expected error for invalid url")
	}
}
