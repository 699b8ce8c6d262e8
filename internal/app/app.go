package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/hebcard/internal/cache"
	"github.com/hyperifyio/hebcard/internal/card"
	"github.com/hyperifyio/hebcard/internal/extract"
	"github.com/hyperifyio/hebcard/internal/fetch"
	"github.com/hyperifyio/hebcard/internal/robots"
)

// Note is the editable flashcard a translation is written into. Fields are
// set by position in card.Record.Fields order.
type Note interface {
	SetField(i int, v string)
	AddTag(tag string)
}

// Fetcher returns an entry page as UTF-8 HTML.
type Fetcher interface {
	Page(ctx context.Context, url string) ([]byte, error)
}

type App struct {
	cfg     Config
	fetcher Fetcher
	robots  *robots.Checker
}

// New builds an App from cfg, applying cache invalidation settings first.
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	client := &fetch.Client{
		HTTPClient:        newHTTPClient(cfg.Timeout),
		UserAgent:         cfg.UserAgent,
		PerRequestTimeout: cfg.Timeout,
		RedirectMaxHops:   5,
	}
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				return nil, fmt.Errorf("clear cache: %w", err)
			}
		}
		if cfg.CacheMaxAge > 0 {
			// Purge is best-effort; a stale entry is revalidated anyway.
			if n, err := cache.PurgeHTTPCacheByAge(cfg.CacheDir, cfg.CacheMaxAge); err != nil {
				log.Warn().Err(err).Msg("cache purge failed")
			} else if n > 0 {
				log.Debug().Int("removed", n).Msg("purged cached pages")
			}
		}
		client.Cache = &cache.HTTPCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}
	a := &App{cfg: cfg, fetcher: client}
	if cfg.RespectRobots {
		ua := cfg.UserAgent
		if ua == "" {
			ua = fetch.DefaultUserAgent
		}
		a.robots = &robots.Checker{HTTPClient: client.HTTPClient, Cache: client.Cache, UserAgent: ua}
	}
	return a, nil
}

// NewWithFetcher builds an App around an existing fetcher.
func NewWithFetcher(cfg Config, f Fetcher) *App {
	return &App{cfg: cfg, fetcher: f}
}

func (a *App) Config() Config { return a.cfg }

func (a *App) page(ctx context.Context, url string) (*extract.Page, error) {
	if a.robots != nil {
		if err := a.robots.Check(ctx, url); err != nil {
			return nil, err
		}
	}
	body, err := a.fetcher.Page(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return extract.Parse(body)
}

// Convert fetches url and converts it with the converter its subheader
// selects.
func (a *App) Convert(ctx context.Context, url string) (extract.Result, error) {
	p, err := a.page(ctx, url)
	if err != nil {
		return extract.Result{}, err
	}
	res, err := extract.Convert(p)
	if err != nil {
		return extract.Result{}, fmt.Errorf("convert %s: %w", url, err)
	}
	log.Debug().Str("url", url).Str("kind", res.Kind.String()).Str("hebrew", res.Record.Hebrew).Msg("converted")
	return res, nil
}

// ConvertAs fetches url and converts it with the converter for kind.
func (a *App) ConvertAs(ctx context.Context, kind extract.Kind, url string) (extract.Result, error) {
	p, err := a.page(ctx, url)
	if err != nil {
		return extract.Result{}, err
	}
	res, err := extract.ConvertAs(kind, p)
	if err != nil {
		return extract.Result{}, fmt.Errorf("convert %s as %v: %w", url, kind, err)
	}
	return res, nil
}

// Translate returns the nine card fields for url.
func (a *App) Translate(ctx context.Context, url string) ([]string, error) {
	res, err := a.Convert(ctx, url)
	if err != nil {
		return nil, err
	}
	return res.Record.Fields(), nil
}

// Populate translates url into n: every field by position, then the root
// letters as a tag. Pages without a root get no tag.
func (a *App) Populate(ctx context.Context, n Note, url string) (card.Record, error) {
	res, err := a.Convert(ctx, url)
	if err != nil {
		return card.Record{}, err
	}
	Fill(n, res.Record)
	return res.Record, nil
}

// Fill writes r into n.
func Fill(n Note, r card.Record) {
	for i, v := range r.Fields() {
		n.SetField(i, v)
	}
	if tag, ok := r.Tag(); ok {
		n.AddTag(tag)
	}
}
