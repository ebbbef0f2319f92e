package station

import (
	"log/slog"
	"sync"
	"time"
)

// Pages is the ordered set of routes the physical buttons cycle through.
var Pages = []string{"/", "/config", "/temperatura", "/umidade", "/pressao", "/altitude"}

// Button identifies which physical button fired.
type Button int

const (
	ButtonPrev Button = iota
	ButtonNext
)

// Navigator owns the current page index and the single-slot pending
// navigation target. Press is called from the GPIO watcher goroutine and
// PollAndClear from the connection handler, so all state lives under one
// mutex. A press landing between a poll's read and clear is preserved; a
// press replacing an undelivered target simply overwrites it.
type Navigator struct {
	mu        sync.Mutex
	pages     []string
	index     int
	pending   string // empty means no pending target
	lastPress time.Time
	debounce  time.Duration
	now       func() time.Time
}

func NewNavigator(debounce time.Duration) *Navigator {
	return &Navigator{
		pages:    Pages,
		debounce: debounce,
		now:      time.Now,
	}
}

// Press moves the page index one step, wrapping at both ends, and arms the
// pending target. Presses inside the debounce window are ignored entirely.
func (n *Navigator) Press(b Button) {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	if !n.lastPress.IsZero() && now.Sub(n.lastPress) < n.debounce {
		return
	}
	n.lastPress = now

	switch b {
	case ButtonPrev:
		n.index--
		if n.index < 0 {
			n.index = len(n.pages) - 1
		}
	case ButtonNext:
		n.index++
		if n.index >= len(n.pages) {
			n.index = 0
		}
	}
	n.pending = n.pages[n.index]
	slog.Debug("button press", "button", int(b), "page", n.pending)
}

// PollAndClear returns the pending navigation target and clears it in the
// same critical section. The second return is false when nothing is pending.
func (n *Navigator) PollAndClear() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending == "" {
		return "", false
	}
	target := n.pending
	n.pending = ""
	return target, true
}

// Current returns the page the index points at, mainly for logging.
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pages[n.index]
}
