package models

// PartNumber is a vendor part number as it appears in page markup.
type PartNumber string

// ExtractionResult holds the unique part numbers of one snapshot in the
// order they were first seen.
type ExtractionResult struct {
	PartNumbers []PartNumber
	Total       int
}

func (r ExtractionResult) Empty() bool {
	return r.Total == 0
}

// Strings returns the part numbers as plain strings.
func (r ExtractionResult) Strings() []string {
	out := make([]string, len(r.PartNumbers))
	for i, pn := range r.PartNumbers {
		out[i] = string(pn)
	}
	return out
}

type Model struct {
	PartNumber PartNumber `json:"part_number"`
	Name       string     `json:"name"`
}

// OutputDocument is the JSON summary copied to the clipboard. Field order
// is the serialized order.
type OutputDocument struct {
	Region           string  `json:"region"`
	Device           string  `json:"device"`
	PartNumberFormat string  `json:"part_number_format"`
	ExtractedAt      string  `json:"extracted_at"`
	Models           []Model `json:"models"`
	Total            int     `json:"total"`
}
