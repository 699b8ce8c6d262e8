package robots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/hyperifyio/hebcard/internal/cache"
)

func TestParseAndIsAllowed(t *testing.T) {
	r := Parse(`
# comment
User-agent: *
Disallow: /search
Allow: /search/help

User-agent: hebcard
Disallow: /private # trailing comment
Disallow: /*.json$
`)
	if len(r.Groups) != 2 {
		t.Fatalf("groups=%d, want 2", len(r.Groups))
	}
	cases := []struct {
		ua, path string
		want     bool
	}{
		{"other-bot", "/search?q=x", false},
		{"other-bot", "/search/help", true},
		{"other-bot", "/private", true},
		{"hebcard/1.0", "/private/x", false},
		{"hebcard/1.0", "/search", true},
		{"hebcard/1.0", "/verbs/1-lichtov.json", false},
		{"hebcard/1.0", "/verbs/1-lichtov.json?x", true},
		{"hebcard/1.0", "/verbs/1-lichtov/", true},
	}
	for _, c := range cases {
		if got := r.IsAllowed(c.ua, c.path); got != c.want {
			t.Fatalf("IsAllowed(%q, %q)=%v, want %v", c.ua, c.path, got, c.want)
		}
	}
}

func TestIsAllowed_NoGroups(t *testing.T) {
	if !(Rules{}).IsAllowed("x", "/anything") {
		t.Fatalf("empty rules should allow")
	}
}

func TestMatch(t *testing.T) {
	cases := []struct {
		pattern, path string
		want          bool
	}{
		{"/a", "/abc", true},
		{"/a$", "/abc", false},
		{"/a$", "/a", true},
		{"/*/x", "/dict/x", true},
		{"/*/x", "/dict/y", false},
		{"/ab*b$", "/ab", false},
		{"/ab*b$", "/abxb", true},
	}
	for _, c := range cases {
		if got := match(c.pattern, c.path); got != c.want {
			t.Fatalf("match(%q, %q)=%v, want %v", c.pattern, c.path, got, c.want)
		}
	}
}

func TestChecker_FetchesOncePerOrigin(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /admin\n"))
	}))
	defer srv.Close()

	c := &Checker{HTTPClient: srv.Client(), UserAgent: "hebcard-test"}
	ctx := context.Background()
	if err := c.Check(ctx, srv.URL+"/dict/1-sefer/"); err != nil {
		t.Fatalf("check: %v", err)
	}
	err := c.Check(ctx, srv.URL+"/admin/x")
	if !errors.Is(err, ErrDisallowed) {
		t.Fatalf("err=%v, want ErrDisallowed", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("robots.txt fetched %d times, want 1", n)
	}
}

func TestChecker_MissingRobotsAllows(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	c := &Checker{HTTPClient: srv.Client()}
	if err := c.Check(context.Background(), srv.URL+"/anything"); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestChecker_ServerErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	c := &Checker{HTTPClient: srv.Client()}
	err := c.Check(context.Background(), srv.URL+"/x")
	if err == nil || errors.Is(err, ErrDisallowed) {
		t.Fatalf("err=%v, want fetch error", err)
	}
}

func TestChecker_RevalidatesFromCache(t *testing.T) {
	const etag = `"r1"`
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\n"))
	}))
	defer srv.Close()

	hc := &cache.HTTPCache{Dir: t.TempDir()}
	ctx := context.Background()
	first := &Checker{HTTPClient: srv.Client(), Cache: hc}
	if err := first.Check(ctx, srv.URL+"/ok"); err != nil {
		t.Fatalf("first: %v", err)
	}
	// a new checker has no memory and must revalidate
	second := &Checker{HTTPClient: srv.Client(), Cache: hc}
	if err := second.Check(ctx, srv.URL+"/private/x"); !errors.Is(err, ErrDisallowed) {
		t.Fatalf("second: err=%v, want ErrDisallowed", err)
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Fatalf("hits=%d, want 2", n)
	}
}
