// Package clipboard exposes the host clipboard as a write-only capability.
// Callers must treat a missing or failing clipboard as non-fatal.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

var ErrUnavailable = errors.New("clipboard is not available")

type Clipboard interface {
	Available() bool
	WriteAll(text string) error
}

// System writes to the host clipboard (pbcopy, xclip/xsel/wl-copy, or the
// Windows API, depending on platform).
type System struct{}

func (System) Available() bool {
	return !clipboard.Unsupported
}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Disabled is a clipboard that is never available.
type Disabled struct{}

func (Disabled) Available() bool { return false }

func (Disabled) WriteAll(string) error { return ErrUnavailable }

// Memory keeps the last written text in process. Err, when set, is
// returned from every write.
type Memory struct {
	mu     sync.Mutex
	text   string
	writes int
	Err    error
}

func (m *Memory) Available() bool { return true }

func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.Err != nil {
		return m.Err
	}
	m.text = text
	return nil
}

func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// WriteAsync starts a write in the background. The returned channel
// receives exactly one outcome and is then closed.
func WriteAsync(c Clipboard, text string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		if !c.Available() {
			done <- ErrUnavailable
			return
		}
		done <- c.WriteAll(text)
	}()
	return done
}
