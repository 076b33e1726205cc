// Package wedge reconstructs scanner frames from raw keystrokes. A
// keyboard-wedge scanner emits its decoded value as a keystroke burst
// terminated by Enter, indistinguishable from typing except for speed: the
// inter-key gap of a wedge device is well under 50 ms per character.
package wedge

import (
	"strings"
	"sync"
	"time"
)

// InterKeyGap is the reset heuristic: a gap above it between two keystrokes
// discards the buffer before the new character is appended, separating
// machine-generated bursts from human typing.
const InterKeyGap = 50 * time.Millisecond

// EnterKey is the frame terminator.
const EnterKey = "Enter"

// KeyEvent is one raw key press. At carries the press time so tests can feed
// synthetic sequences with controlled timing.
type KeyEvent struct {
	Key string
	At  time.Time
}

// KeySource delivers raw key events. Subscribe returns the cancel function
// detaching the handler.
type KeySource interface {
	Subscribe(handler func(KeyEvent)) (cancel func())
}

// Channel accumulates keystrokes into frames and emits each completed frame
// as a scanned code. Buffer and timing state are owned per instance so
// concurrent scan surfaces do not interfere.
type Channel struct {
	mu      sync.Mutex
	buf     strings.Builder
	lastKey time.Time
	enabled bool
	emit    func(code string)
	cancel  func()
}

// NewChannel creates an enabled channel emitting frames into emit.
func NewChannel(emit func(code string)) *Channel {
	return &Channel{
		enabled: true,
		emit:    emit,
	}
}

// Attach subscribes the channel to a key source. Any previous subscription is
// cancelled first.
func (c *Channel) Attach(src KeySource) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = src.Subscribe(c.HandleKey)
	c.mu.Unlock()
}

// HandleKey consumes one key event. Exported so tests can drive the channel
// without a source.
func (c *Channel) HandleKey(ev KeyEvent) {
	c.mu.Lock()

	if !c.enabled {
		c.mu.Unlock()
		return
	}

	if ev.Key == EnterKey {
		frame := strings.TrimSpace(c.buf.String())
		c.buf.Reset()
		c.lastKey = time.Time{}
		emit := c.emit
		c.mu.Unlock()

		if frame != "" && emit != nil {
			emit(frame)
		}
		return
	}

	// Multi-character keys (Shift, Tab, arrows) are not part of a code.
	if len(ev.Key) != 1 {
		c.mu.Unlock()
		return
	}

	if !c.lastKey.IsZero() && ev.At.Sub(c.lastKey) > InterKeyGap {
		c.buf.Reset()
	}
	c.buf.WriteString(ev.Key)
	c.lastKey = ev.At
	c.mu.Unlock()
}

// Enable resumes frame accumulation.
func (c *Channel) Enable() {
	c.mu.Lock()
	c.enabled = true
	c.mu.Unlock()
}

// Disable drops the buffer and ignores keys until Enable.
func (c *Channel) Disable() {
	c.mu.Lock()
	c.enabled = false
	c.buf.Reset()
	c.lastKey = time.Time{}
	c.mu.Unlock()
}

// Close detaches from the key source and disables the channel. Safe to call
// more than once.
func (c *Channel) Close() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.enabled = false
	c.buf.Reset()
	c.lastKey = time.Time{}
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
