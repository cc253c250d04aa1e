package config

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if _, ok := Profiles[c.Profile]; !ok {
		names := make([]string, 0, len(Profiles))
		for name := range Profiles {
			names = append(names, name)
		}
		sort.Strings(names)
		errors = append(errors, ValidationError{
			Field:   "profile",
			Message: fmt.Sprintf("unknown profile %q (expected one of %s)", c.Profile, strings.Join(names, ", ")),
		})
	}

	// Validate extractor config
	if c.Extractor.Pattern == "" {
		errors = append(errors, ValidationError{
			Field:   "extractor.pattern",
			Message: "pattern is required",
		})
	} else if _, err := regexp.Compile(c.Extractor.Pattern); err != nil {
		errors = append(errors, ValidationError{
			Field:   "extractor.pattern",
			Message: fmt.Sprintf("invalid pattern: %v", err),
		})
	}

	if c.Extractor.PartNumberFormat != "" && !strings.HasSuffix(c.Extractor.Pattern, c.Extractor.PartNumberFormat) {
		errors = append(errors, ValidationError{
			Field:   "extractor.part_number_format",
			Message: fmt.Sprintf("pattern does not end with format %q", c.Extractor.PartNumberFormat),
		})
	}

	// Validate source config
	if c.Source.URL != "" {
		parsed, err := url.Parse(c.Source.URL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			errors = append(errors, ValidationError{
				Field:   "source.url",
				Message: "invalid page URL",
			})
		}
	}

	if c.Source.TimeoutSeconds < 1 {
		errors = append(errors, ValidationError{
			Field:   "source.timeout_seconds",
			Message: "timeout_seconds must be positive",
		})
	}

	if c.Source.SettleMillis < 0 {
		errors = append(errors, ValidationError{
			Field:   "source.settle_ms",
			Message: "settle_ms must not be negative",
		})
	}

	if c.Source.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "source.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	return errors
}
