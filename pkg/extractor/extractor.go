package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/xhad/partscan/internal/models"
)

const (
	DefaultPattern          = `[A-Z0-9]{5,6}ZA/A`
	DefaultRegion           = "Hong Kong"
	DefaultDevice           = "iPhone 17 Series"
	DefaultPartNumberFormat = "ZA/A"
	DefaultNamePlaceholder  = "Unknown (需要从API获取)"

	timestampLayout = "2006-01-02T15:04:05.000Z"
)

// ErrNoMatches is returned by Build when the snapshot held no part numbers.
var ErrNoMatches = errors.New("no part numbers found")

type ExtractorConfig struct {
	Pattern          string
	Region           string
	Device           string
	PartNumberFormat string
	NamePlaceholder  string
	Now              func() time.Time
}

type Extractor struct {
	config  ExtractorConfig
	pattern *regexp.Regexp
}

func NewWithConfig(config ExtractorConfig) (*Extractor, error) {
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	if config.Region == "" {
		config.Region = DefaultRegion
	}
	if config.Device == "" {
		config.Device = DefaultDevice
	}
	if config.PartNumberFormat == "" {
		config.PartNumberFormat = DefaultPartNumberFormat
	}
	if config.NamePlaceholder == "" {
		config.NamePlaceholder = DefaultNamePlaceholder
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	re, err := regexp.Compile(config.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid part number pattern %q: %w", config.Pattern, err)
	}

	return &Extractor{
		config:  config,
		pattern: re,
	}, nil
}

func New() *Extractor {
	e, _ := NewWithConfig(ExtractorConfig{})
	return e
}

// Extract scans markup for non-overlapping pattern matches and keeps the
// first occurrence of each.
func (e *Extractor) Extract(markup string) models.ExtractionResult {
	matches := e.pattern.FindAllString(markup, -1)

	seen := make(map[string]bool, len(matches))
	var unique []models.PartNumber
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		unique = append(unique, models.PartNumber(m))
	}

	return models.ExtractionResult{
		PartNumbers: unique,
		Total:       len(unique),
	}
}

// Build wraps an extraction result in the output document, stamped with
// the current UTC time.
func (e *Extractor) Build(result models.ExtractionResult) (*models.OutputDocument, error) {
	if result.Empty() {
		return nil, ErrNoMatches
	}

	entries := make([]models.Model, 0, len(result.PartNumbers))
	for _, pn := range result.PartNumbers {
		entries = append(entries, models.Model{
			PartNumber: pn,
			Name:       e.config.NamePlaceholder,
		})
	}

	return &models.OutputDocument{
		Region:           e.config.Region,
		Device:           e.config.Device,
		PartNumberFormat: e.config.PartNumberFormat,
		ExtractedAt:      e.config.Now().UTC().Format(timestampLayout),
		Models:           entries,
		Total:            result.Total,
	}, nil
}

// Marshal renders doc as two-space indented JSON without a trailing newline.
func Marshal(doc *models.OutputDocument) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode output document: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
