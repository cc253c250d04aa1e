// Package partscan runs one extraction against one page snapshot: it logs
// the part numbers it finds, builds the JSON summary and hands that summary
// to the clipboard.
package partscan

import (
	"context"
	"errors"

	"github.com/xhad/partscan/internal/models"
	"github.com/xhad/partscan/internal/types"
	"github.com/xhad/partscan/pkg/clipboard"
	"github.com/xhad/partscan/pkg/console"
	"github.com/xhad/partscan/pkg/extractor"
)

type Scanner struct {
	extractor types.Extractor
	console   *console.Console
	clipboard clipboard.Clipboard
}

func New(ex types.Extractor, con *console.Console, clip clipboard.Clipboard) *Scanner {
	if ex == nil {
		ex = extractor.New()
	}
	if con == nil {
		con = console.New(nil)
	}
	if clip == nil {
		clip = clipboard.Disabled{}
	}
	return &Scanner{
		extractor: ex,
		console:   con,
		clipboard: clip,
	}
}

// Result is what a successful scan hands back to the caller.
type Result struct {
	Models   []models.PartNumber
	Document *models.OutputDocument
	JSON     string

	scanner *Scanner
	copied  chan struct{}
}

// CopyToClipboard writes the JSON summary to the clipboard again.
func (r *Result) CopyToClipboard() error {
	if !r.scanner.clipboard.Available() {
		return clipboard.ErrUnavailable
	}
	if err := r.scanner.clipboard.WriteAll(r.JSON); err != nil {
		return err
	}
	r.scanner.console.Recopied()
	return nil
}

// Wait blocks until the clipboard outcome of the scan has been logged.
func (r *Result) Wait(ctx context.Context) error {
	select {
	case <-r.copied:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Scan extracts part numbers from markup. It returns extractor.ErrNoMatches
// when there are none, in which case nothing else is produced.
func (s *Scanner) Scan(markup string) (*Result, error) {
	s.console.Banner()

	found := s.extractor.Extract(markup)
	if found.Empty() {
		s.console.NotFound()
		return nil, extractor.ErrNoMatches
	}

	s.console.Found(found)

	doc, err := s.extractor.Build(found)
	if err != nil {
		return nil, err
	}
	jsonText, err := extractor.Marshal(doc)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Models:   found.PartNumbers,
		Document: doc,
		JSON:     jsonText,
		scanner:  s,
		copied:   make(chan struct{}),
	}

	// listed is closed once the plain list is out; the clipboard outcome is
	// only logged after it.
	listed := make(chan struct{})
	if s.clipboard.Available() {
		outcome := clipboard.WriteAsync(s.clipboard, jsonText)
		go func() {
			defer close(result.copied)
			err := <-outcome
			<-listed
			if err != nil {
				s.console.CopyFailed(jsonText, err)
				return
			}
			s.console.Copied()
		}()
	} else {
		s.console.ManualCopy(jsonText)
		close(result.copied)
	}

	s.console.PlainList(found)
	close(listed)

	return result, nil
}

// IsNoMatches reports whether err means the snapshot held no part numbers.
func IsNoMatches(err error) bool {
	return errors.Is(err, extractor.ErrNoMatches)
}
