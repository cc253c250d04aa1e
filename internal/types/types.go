package types

import (
	"context"

	"github.com/xhad/partscan/internal/models"
)

// Core interfaces
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

type Extractor interface {
	Extract(markup string) models.ExtractionResult
	Build(result models.ExtractionResult) (*models.OutputDocument, error)
}

type Profile struct {
	Name             string
	Pattern          string
	Region           string
	Device           string
	PartNumberFormat string
	NamePlaceholder  string
	DefaultURL       string
}
