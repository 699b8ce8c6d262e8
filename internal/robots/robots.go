// Package robots decides whether an entry page may be fetched under the
// site's robots.txt.
package robots

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/hebcard/internal/cache"
)

// ErrDisallowed is returned by Checker.Check for a path robots.txt excludes.
var ErrDisallowed = errors.New("disallowed by robots.txt")

// Rules is a parsed robots.txt.
type Rules struct {
	Groups []Group
}

// Group is one User-agent block.
type Group struct {
	Agents   []string
	Allow    []string
	Disallow []string
}

// Checker fetches robots.txt once per origin and answers for every page on it.
type Checker struct {
	HTTPClient *http.Client
	// Optional; robots.txt is revalidated with ETag/Last-Modified.
	Cache     *cache.HTTPCache
	UserAgent string

	mu    sync.Mutex
	rules map[string]Rules
}

// Check returns ErrDisallowed when pageURL is excluded for c.UserAgent.
// A missing robots.txt (any 4xx) allows everything. Server errors fail the
// check rather than guessing.
func (c *Checker) Check(ctx context.Context, pageURL string) error {
	u, err := url.Parse(pageURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	origin := u.Scheme + "://" + u.Host
	rules, err := c.rulesFor(ctx, origin)
	if err != nil {
		return err
	}
	if !rules.IsAllowed(c.UserAgent, u.RequestURI()) {
		return fmt.Errorf("%w: %s", ErrDisallowed, pageURL)
	}
	return nil
}

func (c *Checker) rulesFor(ctx context.Context, origin string) (Rules, error) {
	c.mu.Lock()
	r, ok := c.rules[origin]
	c.mu.Unlock()
	if ok {
		return r, nil
	}

	r, err := c.fetch(ctx, origin+"/robots.txt")
	if err != nil {
		return Rules{}, err
	}
	c.mu.Lock()
	if c.rules == nil {
		c.rules = make(map[string]Rules)
	}
	c.rules[origin] = r
	c.mu.Unlock()
	return r, nil
}

func (c *Checker) fetch(ctx context.Context, robotsURL string) (Rules, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return Rules{}, fmt.Errorf("new request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.Cache != nil {
		if meta, err := c.Cache.LoadMeta(ctx, robotsURL); err == nil && meta != nil {
			if meta.ETag != "" {
				req.Header.Set("If-None-Match", meta.ETag)
			}
			if meta.LastModified != "" {
				req.Header.Set("If-Modified-Since", meta.LastModified)
			}
		}
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Rules{}, fmt.Errorf("robots.txt: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified && c.Cache != nil:
		body, err := c.Cache.LoadBody(ctx, robotsURL)
		if err != nil {
			return Rules{}, fmt.Errorf("load cached robots.txt: %w", err)
		}
		return Parse(string(body)), nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		log.Debug().Str("url", robotsURL).Int("status", resp.StatusCode).Msg("no robots.txt")
		return Rules{}, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Rules{}, fmt.Errorf("robots.txt: unexpected status: %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 512<<10))
	if err != nil {
		return Rules{}, fmt.Errorf("read robots.txt: %w", err)
	}
	if c.Cache != nil {
		if err := c.Cache.Save(ctx, robotsURL, "text/plain", resp.Header.Get("ETag"), resp.Header.Get("Last-Modified"), data); err != nil {
			log.Warn().Err(err).Msg("cache robots.txt")
		}
	}
	return Parse(string(data)), nil
}

// Parse reads robots.txt text. Unknown directives are ignored.
func Parse(text string) Rules {
	var groups []Group
	var cur Group
	inRules := false
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)
		switch key {
		case "user-agent":
			// a user-agent line after rules starts a new group
			if inRules {
				groups = append(groups, cur)
				cur, inRules = Group{}, false
			}
			cur.Agents = append(cur.Agents, strings.ToLower(val))
		case "allow":
			cur.Allow = append(cur.Allow, val)
			inRules = true
		case "disallow":
			cur.Disallow = append(cur.Disallow, val)
			inRules = true
		}
	}
	if len(cur.Agents) > 0 {
		groups = append(groups, cur)
	}
	return Rules{Groups: groups}
}

// IsAllowed applies the group that best names userAgent, falling back to
// "*". The longest matching pattern wins; on a tie Allow wins. Paths no
// pattern matches are allowed.
func (r Rules) IsAllowed(userAgent, path string) bool {
	g, ok := r.group(userAgent)
	if !ok {
		return true
	}
	best, allow := -1, true
	for _, p := range g.Disallow {
		if p != "" && match(p, path) && len(p) > best {
			best, allow = len(p), false
		}
	}
	for _, p := range g.Allow {
		if p != "" && match(p, path) && len(p) >= best {
			best, allow = len(p), true
		}
	}
	return allow
}

func (r Rules) group(userAgent string) (Group, bool) {
	ua := strings.ToLower(userAgent)
	idx, score := -1, -1
	for i, g := range r.Groups {
		for _, a := range g.Agents {
			s := -1
			switch {
			case a == "*":
				s = 0
			case a != "" && strings.Contains(ua, a):
				s = len(a)
			}
			if s > score {
				idx, score = i, s
			}
		}
	}
	if idx < 0 {
		return Group{}, false
	}
	return r.Groups[idx], true
}

// match reports whether a robots pattern matches path from its start. '*'
// matches any run of characters and a trailing '$' anchors the end.
func match(pattern, path string) bool {
	anchored := strings.HasSuffix(pattern, "$")
	pattern = strings.TrimSuffix(pattern, "$")
	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(path, parts[0]) {
		return false
	}
	rest := path[len(parts[0]):]
	for i, part := range parts[1:] {
		last := i == len(parts)-2
		if last && anchored {
			return strings.HasSuffix(rest, part)
		}
		j := strings.Index(rest, part)
		if j < 0 {
			return false
		}
		rest = rest[j+len(part):]
	}
	if anchored && len(parts) == 1 {
		return rest == ""
	}
	return true
}
