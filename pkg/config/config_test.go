package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partscan.yaml")

	configData := `
profile: cn

extractor:
  device: "iPhone 17 Pro"

source:
  url: "https://www.apple.com.cn/shop/buy-iphone/iphone-17-pro"
  render: true
  headless: false
  timeout_seconds: 45
  settle_ms: 1500
  rate_limit: 0.5

clipboard:
  enabled: false
`
	err := os.WriteFile(configPath, []byte(configData), 0644)
	require.NoError(t, err)

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "cn", config.Profile)
	assert.Equal(t, `[A-Z0-9]{5,6}CH/A`, config.Extractor.Pattern)
	assert.Equal(t, "China Mainland", config.Extractor.Region)
	assert.Equal(t, "iPhone 17 Pro", config.Extractor.Device)
	assert.Equal(t, "CH/A", config.Extractor.PartNumberFormat)
	assert.Equal(t, "https://www.apple.com.cn/shop/buy-iphone/iphone-17-pro", config.Source.URL)
	assert.True(t, config.Source.Render)
	assert.False(t, config.HeadlessEnabled())
	assert.Equal(t, 45, config.Source.TimeoutSeconds)
	assert.Equal(t, 1500, config.Source.SettleMillis)
	assert.Equal(t, 0.5, config.Source.RateLimit)
	assert.False(t, config.ClipboardEnabled())
	assert.Empty(t, config.Validate())
}

func TestDefaultConfig(t *testing.T) {
	config, err := getDefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, "hk", config.Profile)
	assert.Equal(t, `[A-Z0-9]{5,6}ZA/A`, config.Extractor.Pattern)
	assert.Equal(t, "Hong Kong", config.Extractor.Region)
	assert.Equal(t, "iPhone 17 Series", config.Extractor.Device)
	assert.Equal(t, "ZA/A", config.Extractor.PartNumberFormat)
	assert.Equal(t, "Unknown (需要从API获取)", config.Extractor.NamePlaceholder)
	assert.Equal(t, "https://www.apple.com/hk/shop/buy-iphone", config.DefaultURL())
	assert.True(t, config.ClipboardEnabled())
	assert.True(t, config.HeadlessEnabled())
	assert.Empty(t, config.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	config := &Config{Profile: "us"}
	config.Extractor.Pattern = "[A-Z"
	config.Extractor.PartNumberFormat = "LL/A"
	config.Source.URL = "ftp://example.com"
	config.Source.TimeoutSeconds = 0
	config.Source.SettleMillis = -1
	config.Source.RateLimit = 0

	errors := config.Validate()

	expected := []string{
		`profile: unknown profile "us" (expected one of cn, hk)`,
		"extractor.pattern: invalid pattern",
		`extractor.part_number_format: pattern does not end with format "LL/A"`,
		"source.url: invalid page URL",
		"source.timeout_seconds: timeout_seconds must be positive",
		"source.settle_ms: settle_ms must not be negative",
		"source.rate_limit: rate_limit must be positive",
	}
	require.Len(t, errors, len(expected))
	for i, msg := range expected {
		assert.Contains(t, errors[i].Error(), msg)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PARTSCAN_PROFILE", "cn")
	t.Setenv("PARTSCAN_URL", "https://www.apple.com.cn/shop/buy-iphone/iphone-17")
	t.Setenv("PARTSCAN_RENDER", "true")
	t.Setenv("PARTSCAN_NO_CLIPBOARD", "1")

	config := &Config{}
	mergeWithEnv(config)
	applyDefaults(config)

	assert.Equal(t, "cn", config.Profile)
	assert.Equal(t, "China Mainland", config.Extractor.Region)
	assert.Equal(t, "https://www.apple.com.cn/shop/buy-iphone/iphone-17", config.Source.URL)
	assert.True(t, config.Source.Render)
	assert.False(t, config.ClipboardEnabled())
}

func TestUseProfile(t *testing.T) {
	config, err := getDefaultConfig()
	require.NoError(t, err)
	config.Extractor.Device = "iPad Pro"

	config.UseProfile("cn")

	assert.Equal(t, "cn", config.Profile)
	assert.Equal(t, `[A-Z0-9]{5,6}CH/A`, config.Extractor.Pattern)
	assert.Equal(t, "CH/A", config.Extractor.PartNumberFormat)
	assert.Equal(t, "iPhone 17 Series", config.Extractor.Device)
	assert.Equal(t, "https://www.apple.com.cn/shop/buy-iphone", config.DefaultURL())
	assert.Empty(t, config.Validate())
}
