// Package scraper selects and constructs the extraction backend. The core
// never branches on extraction mode; it only sees the Extractor interface.
package scraper

import (
	"context"
	"fmt"

	"github.com/sedama0217-sketch/PMserch/config"
	"github.com/sedama0217-sketch/PMserch/models"
	"github.com/sedama0217-sketch/PMserch/scraper/browser"
	"github.com/sedama0217-sketch/PMserch/scraper/static"
	"github.com/sedama0217-sketch/PMserch/utils"
)

// Extractor produces raw item records for one check of the target page.
type Extractor interface {
	Extract(ctx context.Context) ([]models.RawItem, error)
}

// New returns the extraction backend selected by cfg.Mode.
func New(cfg *config.Config, logger *utils.Logger) (Extractor, error) {
	switch cfg.Mode {
	case config.ModeStatic:
		return static.New(cfg, logger), nil
	case config.ModeBrowser:
		return browser.New(cfg, logger), nil
	default:
		return nil, fmt.Errorf("scraper: unknown mode %q", cfg.Mode)
	}
}
