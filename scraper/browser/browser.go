// Package browser extracts items from JavaScript-rendered pages using a
// headless Chrome instance.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/sedama0217-sketch/PMserch/config"
	"github.com/sedama0217-sketch/PMserch/models"
	"github.com/sedama0217-sketch/PMserch/utils"
)

const userAgent = "Mozilla/5.0 (compatible; PMserch/1.0; +https://github.com/sedama0217-sketch/PMserch)"

// Scraper drives a headless browser to render the configured page and pull
// item blocks out of the live DOM.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig
}

// New creates a ready-to-use rendered-DOM Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// rawCard mirrors the object shape produced by the in-page extraction script.
type rawCard struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Image     string `json:"image"`
	StockText string `json:"stock_text"`
}

// Extract renders the page and returns one RawItem per matched item block.
func (s *Scraper) Extract(ctx context.Context) ([]models.RawItem, error) {
	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	if chromeBin != "" {
		s.logger.Info("[browser] Using browser binary: %s", chromeBin)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	allocCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()

	script, err := extractionScript(s.cfg.Selectors)
	if err != nil {
		return nil, err
	}

	var cards []rawCard
	err = s.retry.Do("render-page", func() error {
		tabCtx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 90*time.Second)
		defer cancelTimeout()

		s.logger.Info("[browser] Navigating to %s", s.cfg.URL)
		if err := chromedp.Run(tabCtx,
			chromedp.Navigate(s.cfg.URL),
			chromedp.Sleep(3*time.Second),
		); err != nil {
			return fmt.Errorf("chromedp navigate: %w", err)
		}

		s.awaitSelector(tabCtx)

		cards = cards[:0]
		if err := chromedp.Run(tabCtx, chromedp.Evaluate(script, &cards)); err != nil {
			return fmt.Errorf("chromedp extract: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("[browser] Matched %d elements with selector %q", len(cards), s.cfg.Selectors.Item)

	items := make([]models.RawItem, 0, len(cards))
	for _, c := range cards {
		if c.Name == "" && c.URL == "" {
			continue
		}
		if c.Name == "" {
			c.Name = "unknown"
		}
		items = append(items, models.RawItem{
			Name:      c.Name,
			URL:       c.URL,
			Image:     c.Image,
			StockText: c.StockText,
		})
	}
	return items, nil
}

// awaitSelector waits for the configured readiness selector. A timeout is
// tolerated; some pages render the item list without it.
func (s *Scraper) awaitSelector(ctx context.Context) {
	if s.cfg.WaitFor == "" {
		return
	}
	waitCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := chromedp.Run(waitCtx, chromedp.WaitReady(s.cfg.WaitFor, chromedp.ByQuery)); err != nil {
		s.logger.Debug("[browser] wait_for selector %q not found: %v", s.cfg.WaitFor, err)
	}
}

// extractionScript builds the in-page extraction function with the
// configured selectors injected as a JSON literal.
func extractionScript(sel config.Selectors) (string, error) {
	encoded, err := json.Marshal(sel)
	if err != nil {
		return "", fmt.Errorf("browser: encode selectors: %w", err)
	}

	return `
		(function() {
			var sel = ` + string(encoded) + `;
			var text = function(root, s) {
				if (!s) return '';
				var el = root.querySelector(s);
				return el ? el.innerText.trim() : '';
			};
			var attr = function(root, s, names) {
				if (!s) return '';
				var el = root.querySelector(s);
				if (!el) return '';
				for (var i = 0; i < names.length; i++) {
					var v = el.getAttribute(names[i]);
					if (v) return v;
				}
				return '';
			};

			var results = [];
			var blocks = document.querySelectorAll(sel.Item);
			for (var i = 0; i < blocks.length; i++) {
				var b = blocks[i];
				results.push({
					name:       text(b, sel.Name),
					url:        attr(b, sel.Link, ['href', 'data-href', 'data-url']),
					image:      attr(b, sel.Image, ['src', 'data-src']),
					stock_text: text(b, sel.Stock)
				});
			}
			return results;
		})()
	`, nil
}

// findChromeBinary locates a Chrome/Chromium binary, preferring an explicit
// configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
