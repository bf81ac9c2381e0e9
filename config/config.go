package config

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Extraction backend modes.
const (
	ModeStatic  = "static"
	ModeBrowser = "browser"
)

// Selectors are the CSS selectors handed opaquely to the extractor. Only the
// item block selector is required; an empty sub-selector leaves the
// corresponding field unset.
type Selectors struct {
	Item  string `yaml:"item"`
	Name  string `yaml:"name"`
	Link  string `yaml:"link"`
	Image string `yaml:"image"`
	Stock string `yaml:"stock"`
}

// Config holds all application configuration, loaded once per run.
type Config struct {
	URL       string    `yaml:"url"`
	Mode      string    `yaml:"mode"`
	Selectors Selectors `yaml:"selectors"`
	WaitFor   string    `yaml:"wait_for"`

	InStockPatterns        []string `yaml:"in_stock_patterns"`
	SoldOutPatterns        []string `yaml:"sold_out_patterns"`
	AssumeInStockIfNoLabel bool     `yaml:"assume_in_stock_if_no_label"`

	NotifyNewInStock *bool `yaml:"notify_new_in_stock"`
	NotifyNew        bool  `yaml:"notify_new"`

	DiscordWebhookURL string `yaml:"discord_webhook_url"`
	MentionRole       string `yaml:"mention_role"`
	NotifyIntervalMs  int    `yaml:"notify_interval_ms"`

	StateFile string `yaml:"state_file"`

	ChromeBin string `yaml:"chrome_bin"`
}

// Load reads the YAML config file at path, overlays environment variables
// (a .env file is honoured when present), applies defaults and validates.
// Unknown keys in the file are rejected.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	cfg.applyDefaults()

	if cfg.DiscordWebhookURL == "" {
		cfg.DiscordWebhookURL = os.Getenv("DISCORD_WEBHOOK_URL")
	}
	if cfg.ChromeBin == "" {
		cfg.ChromeBin = os.Getenv("CHROME_BIN")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeBrowser
	}
	if len(c.InStockPatterns) == 0 {
		c.InStockPatterns = []string{"add to cart", "カートに入れる", "在庫あり", "在庫"}
	}
	if len(c.SoldOutPatterns) == 0 {
		c.SoldOutPatterns = []string{"sold out", "売り切れ", "欠品"}
	}
	if c.NotifyNewInStock == nil {
		t := true
		c.NotifyNewInStock = &t
	}
	if c.NotifyIntervalMs <= 0 {
		c.NotifyIntervalMs = 1000
	}
	if c.StateFile == "" {
		c.StateFile = "state.json"
	}
}

func (c *Config) validate() error {
	if c.URL == "" {
		return fmt.Errorf("config: url is required")
	}
	if c.Mode != ModeStatic && c.Mode != ModeBrowser {
		return fmt.Errorf("config: unknown mode %q (want %q or %q)", c.Mode, ModeStatic, ModeBrowser)
	}
	if c.Selectors.Item == "" {
		return fmt.Errorf("config: selectors.item is required")
	}
	if c.DiscordWebhookURL == "" {
		return fmt.Errorf("config: discord webhook URL not configured; set discord_webhook_url or the DISCORD_WEBHOOK_URL env var")
	}
	return nil
}

// NotifyOnNewInStock reports whether a brand-new item that is already in
// stock should trigger a notification.
func (c *Config) NotifyOnNewInStock() bool {
	return c.NotifyNewInStock != nil && *c.NotifyNewInStock
}

// NotifyPause is the delay between consecutive webhook deliveries.
func (c *Config) NotifyPause() time.Duration {
	return time.Duration(c.NotifyIntervalMs) * time.Millisecond
}
