package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/xhad/partscan/internal/models"
)

var (
	titleColor   = color.New(color.FgBlue, color.Bold)
	infoColor    = color.New(color.FgBlue)
	mutedColor   = color.New(color.FgHiBlack)
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// Console writes status lines. It is safe for concurrent use so that the
// asynchronous clipboard outcome never splits another line.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func New(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out}
}

// write runs fn with exclusive access to the output so a multi-line block
// is never split by a concurrent writer.
func (c *Console) write(fn func(w io.Writer)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.out)
}

func printLine(w io.Writer, col *color.Color, format string, args ...interface{}) {
	if col == nil {
		fmt.Fprintf(w, format+"\n", args...)
		return
	}
	col.Fprintf(w, format, args...)
	fmt.Fprintln(w)
}

func (c *Console) line(col *color.Color, format string, args ...interface{}) {
	c.write(func(w io.Writer) {
		printLine(w, col, format, args...)
	})
}

func (c *Console) Banner() {
	c.write(func(w io.Writer) {
		printLine(w, titleColor, "🍎 iPhone Part Number extractor")
		printLine(w, mutedColor, "Scanning page...")
	})
}

func (c *Console) NotFound() {
	c.write(func(w io.Writer) {
		printLine(w, errorColor, "❌ No part numbers found")
		printLine(w, nil, "Hint: make sure the page has fully loaded, or try selecting a different product configuration")
	})
}

func (c *Console) Found(result models.ExtractionResult) {
	noun := "part numbers"
	if result.Total == 1 {
		noun = "part number"
	}

	c.write(func(w io.Writer) {
		printLine(w, successColor, "✅ Found %d %s", result.Total, noun)
		printLine(w, nil, "")
		printLine(w, infoColor, "📋 Part numbers:")
		for i, pn := range result.PartNumbers {
			printLine(w, nil, "  %d. %s", i+1, pn)
		}
		printLine(w, nil, "")
	})
}

// ManualCopy prints the JSON for manual copying when no clipboard exists.
func (c *Console) ManualCopy(jsonText string) {
	c.write(func(w io.Writer) {
		printLine(w, infoColor, "📄 JSON output (copy manually):")
		fmt.Fprintln(w, jsonText)
	})
}

func (c *Console) Copied() {
	c.write(func(w io.Writer) {
		printLine(w, successColor, "✅ JSON copied to clipboard!")
		printLine(w, nil, "You can paste it straight into a file")
	})
}

// CopyFailed prints the JSON for manual copying after a rejected write.
func (c *Console) CopyFailed(jsonText string, err error) {
	c.write(func(w io.Writer) {
		printLine(w, warnColor, "⚠️  Could not copy automatically (%v), copy the content below:", err)
		fmt.Fprintln(w, jsonText)
	})
}

func (c *Console) PlainList(result models.ExtractionResult) {
	c.write(func(w io.Writer) {
		printLine(w, nil, "")
		printLine(w, infoColor, "📝 Plain list (ready to use):")
		fmt.Fprintln(w, strings.Join(result.Strings(), "\n"))
	})
}

func (c *Console) Recopied() {
	c.line(nil, "✅ Copied")
}

// Source announces where the snapshot came from.
func (c *Console) Source(origin string) {
	c.line(mutedColor, "Source: %s", origin)
}

func (c *Console) Error(format string, args ...interface{}) {
	c.line(errorColor, format, args...)
}
