package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunWithSavedPage(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "partscan.yaml", "profile: hk\n")
	page := writeFile(t, dir, "page.html",
		`<html><body><div data-part-number="MG8H4ZA/A"></div><div>MFYQ4ZA/A MG8H4ZA/A</div></body></html>`)

	found, err := run(context.Background(), Config{
		ConfigPath:  configPath,
		File:        page,
		NoClipboard: true,
	})
	require.NoError(t, err)
	assert.True(t, found)
}

func TestRunWithoutMatches(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "partscan.yaml", "profile: hk\n")
	page := writeFile(t, dir, "page.html", `<html><body><p>MG8H4CH/A</p></body></html>`)

	found, err := run(context.Background(), Config{
		ConfigPath:  configPath,
		File:        page,
		NoClipboard: true,
	})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoadSettingsOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "partscan.yaml", "profile: hk\nsource:\n  timeout_seconds: 20\n")

	cfg, err := loadSettings(Config{
		ConfigPath:  configPath,
		Profile:     "cn",
		Render:      true,
		NoClipboard: true,
		Timeout:     90,
	})
	require.NoError(t, err)

	assert.Equal(t, "cn", cfg.Profile)
	assert.Equal(t, "CH/A", cfg.Extractor.PartNumberFormat)
	assert.True(t, cfg.Source.Render)
	assert.False(t, cfg.ClipboardEnabled())
	assert.Equal(t, 90, cfg.Source.TimeoutSeconds)
}

func TestLoadSettingsRejectsUnknownProfile(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "partscan.yaml", "profile: hk\n")

	_, err := loadSettings(Config{ConfigPath: configPath, Profile: "jp"})
	assert.Error(t, err)
}

func TestLoadSettingsRejectsFileWithURLs(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "partscan.yaml", "profile: hk\n")

	_, err := loadSettings(Config{
		ConfigPath: configPath,
		File:       filepath.Join(dir, "page.html"),
		URLs:       []string{"https://www.apple.com/hk/shop/buy-iphone"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-file cannot be combined with page URLs")
}
