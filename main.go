package main

import (
	"context"
	"flag"
	"os"

	"github.com/sedama0217-sketch/PMserch/config"
	"github.com/sedama0217-sketch/PMserch/notify"
	"github.com/sedama0217-sketch/PMserch/scraper"
	"github.com/sedama0217-sketch/PMserch/services"
	"github.com/sedama0217-sketch/PMserch/storage"
	"github.com/sedama0217-sketch/PMserch/utils"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	logger := utils.NewLogger()
	logger.Info("=== Stock monitor starting ===")

	// Configuration problems are the only errors worth a non-zero exit;
	// nothing has been fetched or persisted at this point.
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	logger.Info("Config — url: %s | mode: %s | state: %s", cfg.URL, cfg.Mode, cfg.StateFile)

	extractor, err := scraper.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to create extractor: %v", err)
		os.Exit(1)
	}

	var store storage.StateStore = storage.NewJSONStateStore(cfg.StateFile)
	notifier := notify.NewDiscordNotifier(cfg.DiscordWebhookURL, cfg.MentionRole, cfg.URL)
	classifier := services.NewClassifier(cfg.InStockPatterns, cfg.SoldOutPatterns, cfg.AssumeInStockIfNoLabel)
	engine := services.NewTransitionEngine(cfg.NotifyOnNewInStock(), cfg.NotifyNew)

	monitor := services.NewMonitor(extractor, store, notifier, classifier, engine, cfg.NotifyPause(), logger)

	report, err := monitor.Run(context.Background())
	if err != nil {
		logger.Error("Run failed: %v", err)
		return
	}

	services.PrintReport(report)
	logger.Info("Done. Notifications sent: %d", report.Notifications)
}
