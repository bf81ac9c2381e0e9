// Package static extracts items from server-rendered pages: a plain HTTP
// fetch followed by CSS-selector extraction.
package static

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/sedama0217-sketch/PMserch/config"
	"github.com/sedama0217-sketch/PMserch/models"
	"github.com/sedama0217-sketch/PMserch/utils"
)

const userAgent = "Mozilla/5.0 (compatible; PMserch/1.0; +https://github.com/sedama0217-sketch/PMserch)"

// Scraper fetches the configured page over HTTP and parses item blocks out
// of the returned HTML.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	client *resty.Client
}

// New creates a ready-to-use static-HTML Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", userAgent)

	return &Scraper{cfg: cfg, logger: logger, client: client}
}

// Extract fetches the page and returns one RawItem per item block. Elements
// with neither a name nor a link are skipped; a fetch or HTTP-level failure
// aborts the whole extraction.
func (s *Scraper) Extract(ctx context.Context) ([]models.RawItem, error) {
	s.logger.Info("[static] Fetching %s", s.cfg.URL)

	resp, err := s.client.R().SetContext(ctx).Get(s.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("static: fetch %q: %w", s.cfg.URL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("static: fetch %q: status %d", s.cfg.URL, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("static: parse html: %w", err)
	}

	sel := s.cfg.Selectors
	var items []models.RawItem
	doc.Find(sel.Item).Each(func(_ int, el *goquery.Selection) {
		item := models.RawItem{
			Name:      childText(el, sel.Name),
			URL:       childAttr(el, sel.Link, "href", "data-href", "data-url"),
			Image:     childAttr(el, sel.Image, "src", "data-src"),
			StockText: childText(el, sel.Stock),
		}

		if item.Name == "" && item.URL == "" {
			return
		}
		if item.Name == "" {
			item.Name = "unknown"
		}
		items = append(items, item)
	})

	s.logger.Debug("[static] Matched %d elements with selector %q", len(items), sel.Item)
	return items, nil
}

func childText(el *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(el.Find(selector).First().Text())
}

func childAttr(el *goquery.Selection, selector string, attrs ...string) string {
	if selector == "" {
		return ""
	}
	child := el.Find(selector).First()
	for _, a := range attrs {
		if v, ok := child.Attr(a); ok && v != "" {
			return v
		}
	}
	return ""
}
