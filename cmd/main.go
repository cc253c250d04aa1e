package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/xhad/partscan/internal/types"
	cfgPkg "github.com/xhad/partscan/pkg/config"
	"github.com/xhad/partscan/pkg/clipboard"
	"github.com/xhad/partscan/pkg/console"
	"github.com/xhad/partscan/pkg/extractor"
	"github.com/xhad/partscan/pkg/partscan"
	"github.com/xhad/partscan/pkg/scraper"
)

type Config struct {
	ConfigPath  string
	Profile     string
	File        string
	URLs        []string
	Render      bool
	NoClipboard bool
	Timeout     int
}

func main() {
	config := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	found, err := run(ctx, config)
	if err != nil {
		log.Fatal(err)
	}
	if !found {
		stop()
		os.Exit(1)
	}
}

func parseFlags() Config {
	var config Config
	var pageURL string

	flag.StringVar(&config.ConfigPath, "config", "", "Path to config file")
	flag.StringVar(&config.Profile, "profile", "", "Storefront profile (hk, cn)")
	flag.StringVar(&config.File, "file", "", "Saved page to scan, - for stdin")
	flag.StringVar(&pageURL, "url", "", "Page URL to scan")
	flag.BoolVar(&config.Render, "render", false, "Render the page in headless Chrome before scanning")
	flag.BoolVar(&config.NoClipboard, "no-clipboard", false, "Do not copy the JSON summary to the clipboard")
	flag.IntVar(&config.Timeout, "timeout", 0, "Fetch timeout in seconds")
	flag.Parse()

	if pageURL != "" {
		config.URLs = append(config.URLs, pageURL)
	}
	config.URLs = append(config.URLs, flag.Args()...)

	return config
}

// loadSettings overlays command line flags on the config file.
func loadSettings(config Config) (*cfgPkg.Config, error) {
	if config.File != "" && len(config.URLs) > 0 {
		return nil, fmt.Errorf("-file cannot be combined with page URLs (%d given)", len(config.URLs))
	}

	cfg, err := cfgPkg.LoadConfig(config.ConfigPath)
	if err != nil {
		return nil, err
	}

	if config.Profile != "" && config.Profile != cfg.Profile {
		cfg.UseProfile(config.Profile)
	}
	if config.Render {
		cfg.Source.Render = true
	}
	if config.NoClipboard {
		disabled := false
		cfg.Clipboard.Enabled = &disabled
	}
	if config.Timeout > 0 {
		cfg.Source.TimeoutSeconds = config.Timeout
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			color.Red("config: %v", e)
		}
		return nil, fmt.Errorf("invalid configuration (%d errors)", len(errs))
	}

	return cfg, nil
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

func newFetcher(cfg *cfgPkg.Config) types.Fetcher {
	timeout := time.Duration(cfg.Source.TimeoutSeconds) * time.Second

	if cfg.Source.Render {
		return scraper.NewRenderer(scraper.RendererConfig{
			UserAgent: cfg.Source.UserAgent,
			Timeout:   timeout,
			Settle:    time.Duration(cfg.Source.SettleMillis) * time.Millisecond,
			Headless:  cfg.HeadlessEnabled(),
		})
	}

	return scraper.NewWithConfig(scraper.ScraperConfig{
		UserAgent:      cfg.Source.UserAgent,
		AcceptLanguage: cfg.Source.AcceptLanguage,
		RateLimit:      cfg.Source.RateLimit,
		Timeout:        timeout,
	})
}

func fetchSnapshot(ctx context.Context, fetcher types.Fetcher, pageURL string) (string, error) {
	spinner := getSpinner(fmt.Sprintf(" Loading %s", pageURL))
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				spinner.Add(1)
			}
		}
	}()

	markup, err := fetcher.Fetch(ctx, pageURL)
	close(done)
	spinner.Finish()
	return markup, err
}

func readSnapshot(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	return scraper.ReadSnapshot(r)
}

func newClipboard(cfg *cfgPkg.Config) clipboard.Clipboard {
	if !cfg.ClipboardEnabled() {
		return clipboard.Disabled{}
	}
	return clipboard.System{}
}

// run scans every requested page and reports whether any of them yielded
// part numbers.
func run(ctx context.Context, config Config) (bool, error) {
	cfg, err := loadSettings(config)
	if err != nil {
		return false, err
	}

	ex, err := extractor.NewWithConfig(extractor.ExtractorConfig{
		Pattern:          cfg.Extractor.Pattern,
		Region:           cfg.Extractor.Region,
		Device:           cfg.Extractor.Device,
		PartNumberFormat: cfg.Extractor.PartNumberFormat,
		NamePlaceholder:  cfg.Extractor.NamePlaceholder,
	})
	if err != nil {
		return false, fmt.Errorf("failed to initialize extractor: %w", err)
	}

	con := console.New(os.Stdout)
	scanner := partscan.New(ex, con, newClipboard(cfg))

	scan := func(origin, markup string) bool {
		con.Source(origin)
		result, err := scanner.Scan(markup)
		if err != nil {
			if !partscan.IsNoMatches(err) {
				con.Error("Scan failed: %v", err)
			}
			return false
		}
		if err := result.Wait(ctx); err != nil {
			con.Error("Clipboard: %v", err)
		}
		return true
	}

	if config.File != "" {
		markup, err := readSnapshot(config.File)
		if err != nil {
			return false, err
		}
		return scan(config.File, markup), nil
	}

	urls := config.URLs
	if len(urls) == 0 && cfg.Source.URL != "" {
		urls = []string{cfg.Source.URL}
	}
	if len(urls) == 0 {
		urls = []string{cfg.DefaultURL()}
	}

	fetcher := newFetcher(cfg)
	found := false
	for _, pageURL := range urls {
		if ctx.Err() != nil {
			return found, ctx.Err()
		}

		markup, err := fetchSnapshot(ctx, fetcher, pageURL)
		if err != nil {
			con.Error("Failed to load %s: %v", pageURL, err)
			continue
		}
		if scan(pageURL, markup) {
			found = true
		}
	}

	return found, nil
}
