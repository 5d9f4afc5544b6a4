package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/soocke/threshold-tuner/app"
	"github.com/soocke/threshold-tuner/config"
)

func main() {
	var (
		cfgPath    = flag.String("config", "tuner.json", "path to the JSON config file")
		baseURL    = flag.String("base-url", "", "backend root URL (overrides config)")
		types      = flag.String("types", "", "comma-separated settings types, e.g. ball,bg or ball,hand")
		dialect    = flag.String("dialect", "", "push dialect: per-type or typed")
		pollMs     = flag.Int("poll", 0, "preview poll interval in milliseconds")
		metrics    = flag.String("metrics", "", "address to serve Prometheus /metrics on")
		open       = flag.Bool("open", false, "open the backend web page in the system browser")
		dark       = flag.Bool("dark", false, "use the dark palette")
		debugFlag  = flag.Bool("debug", false, "debug logging and periodic runtime stats")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
		saveConfig = flag.Bool("save-config", false, "write the effective config back to -config")
	)
	flag.Parse()

	level, levelErr := ParseLevel(*logLevel)
	cfg, err := config.Load(*cfgPath)

	// Flags override file values
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["base-url"] {
		cfg.BaseURL = *baseURL
	}
	if set["types"] {
		cfg.Types = strings.Split(*types, ",")
	}
	if set["dialect"] {
		cfg.Dialect = *dialect
	}
	if set["poll"] {
		cfg.PollIntervalMs = *pollMs
	}
	if set["metrics"] {
		cfg.MetricsAddr = *metrics
	}
	if set["open"] {
		cfg.OpenBrowser = *open
	}
	if set["dark"] {
		cfg.DarkMode = *dark
	}
	if set["debug"] {
		cfg.Debug = *debugFlag
	}
	_ = cfg.Validate()
	if cfg.Debug {
		level = slog.LevelDebug
	}

	logger := NewLogger(level)
	if levelErr != nil {
		logger.Warn("log level", "error", levelErr)
	}
	if err != nil {
		logger.Warn("config load failed; using defaults", "path", *cfgPath, "error", err)
	}
	if *saveConfig {
		if err := cfg.Save(*cfgPath); err != nil {
			logger.Error("config save failed", "path", *cfgPath, "error", err)
			os.Exit(1)
		}
		logger.Info("config saved", "path", *cfgPath)
	}
	logger.Info("starting", "base_url", cfg.BaseURL, "types", cfg.Types, "dialect", cfg.Dialect)

	application := app.NewApp("Threshold Tuner", 1100, 560, cfg, logger)
	application.Start()
}
