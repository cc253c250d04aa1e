package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/xhad/partscan/internal/types"
	"gopkg.in/yaml.v3"
)

const DefaultProfile = "hk"

// Profiles bundles pattern and fixed metadata per storefront.
var Profiles = map[string]types.Profile{
	"hk": {
		Name:             "hk",
		Pattern:          `[A-Z0-9]{5,6}ZA/A`,
		Region:           "Hong Kong",
		Device:           "iPhone 17 Series",
		PartNumberFormat: "ZA/A",
		NamePlaceholder:  "Unknown (需要从API获取)",
		DefaultURL:       "https://www.apple.com/hk/shop/buy-iphone",
	},
	"cn": {
		Name:             "cn",
		Pattern:          `[A-Z0-9]{5,6}CH/A`,
		Region:           "China Mainland",
		Device:           "iPhone 17 Series",
		PartNumberFormat: "CH/A",
		NamePlaceholder:  "Unknown (需要从API获取)",
		DefaultURL:       "https://www.apple.com.cn/shop/buy-iphone",
	},
}

type Config struct {
	Profile string `yaml:"profile"`

	Extractor struct {
		Pattern          string `yaml:"pattern"`
		Region           string `yaml:"region"`
		Device           string `yaml:"device"`
		PartNumberFormat string `yaml:"part_number_format"`
		NamePlaceholder  string `yaml:"name_placeholder"`
	} `yaml:"extractor"`

	Source struct {
		URL            string  `yaml:"url"`
		Render         bool    `yaml:"render"`
		Headless       *bool   `yaml:"headless"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		SettleMillis   int     `yaml:"settle_ms"`
		RateLimit      float64 `yaml:"rate_limit"`
		UserAgent      string  `yaml:"user_agent"`
		AcceptLanguage string  `yaml:"accept_language"`
	} `yaml:"source"`

	Clipboard struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"clipboard"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"partscan.yaml",
			"partscan.yml",
			filepath.Join(os.Getenv("HOME"), ".config/partscan/config.yaml"),
			"/etc/partscan/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	mergeWithEnv(&config)
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	mergeWithEnv(config)
	applyDefaults(config)
	return config, nil
}

// applyDefaults fills unset extractor fields from the selected profile. An
// unknown profile is left for Validate to report.
func applyDefaults(config *Config) {
	if config.Profile == "" {
		config.Profile = DefaultProfile
	}

	if profile, ok := Profiles[config.Profile]; ok {
		if config.Extractor.Pattern == "" {
			config.Extractor.Pattern = profile.Pattern
		}
		if config.Extractor.Region == "" {
			config.Extractor.Region = profile.Region
		}
		if config.Extractor.Device == "" {
			config.Extractor.Device = profile.Device
		}
		if config.Extractor.PartNumberFormat == "" {
			config.Extractor.PartNumberFormat = profile.PartNumberFormat
		}
		if config.Extractor.NamePlaceholder == "" {
			config.Extractor.NamePlaceholder = profile.NamePlaceholder
		}
	}

	if config.Source.TimeoutSeconds == 0 {
		config.Source.TimeoutSeconds = 30
	}
	if config.Source.SettleMillis == 0 {
		config.Source.SettleMillis = 3000
	}
	if config.Source.RateLimit == 0 {
		config.Source.RateLimit = 1.0
	}
	if config.Source.Headless == nil {
		config.Source.Headless = boolPtr(true)
	}

	if config.Clipboard.Enabled == nil {
		config.Clipboard.Enabled = boolPtr(true)
	}
}

func mergeWithEnv(config *Config) {
	if profile := os.Getenv("PARTSCAN_PROFILE"); profile != "" {
		config.Profile = profile
	}
	if pageURL := os.Getenv("PARTSCAN_URL"); pageURL != "" {
		config.Source.URL = pageURL
	}
	if render, err := strconv.ParseBool(os.Getenv("PARTSCAN_RENDER")); err == nil {
		config.Source.Render = render
	}
	if disabled, err := strconv.ParseBool(os.Getenv("PARTSCAN_NO_CLIPBOARD")); err == nil {
		config.Clipboard.Enabled = boolPtr(!disabled)
	}
}

// UseProfile switches to another storefront profile. Extractor fields are
// reset and refilled from the new profile.
func (c *Config) UseProfile(name string) {
	c.Profile = name
	c.Extractor.Pattern = ""
	c.Extractor.Region = ""
	c.Extractor.Device = ""
	c.Extractor.PartNumberFormat = ""
	c.Extractor.NamePlaceholder = ""
	applyDefaults(c)
}

// DefaultURL is the storefront page scanned when no source is given.
func (c *Config) DefaultURL() string {
	if profile, ok := Profiles[c.Profile]; ok {
		return profile.DefaultURL
	}
	return Profiles[DefaultProfile].DefaultURL
}

func (c *Config) ClipboardEnabled() bool {
	return c.Clipboard.Enabled == nil || *c.Clipboard.Enabled
}

func (c *Config) HeadlessEnabled() bool {
	return c.Source.Headless == nil || *c.Source.Headless
}

func boolPtr(b bool) *bool {
	return &b
}
