// Package buttons feeds physical button presses into the Navigator using
// GPIO edge detection.
package buttons

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/CarlosHenriqueSL/WebDisplay/internal/station"
)

// Watcher waits for falling edges on the two navigation buttons. Debouncing
// happens in the Navigator, not here.
type Watcher struct {
	prev gpio.PinIO
	next gpio.PinIO
	nav  *station.Navigator
}

// NewWatcher resolves and configures both pins (pull-up, falling edge).
func NewWatcher(prevPin, nextPin string, nav *station.Navigator) (*Watcher, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	prev, err := openPin(prevPin)
	if err != nil {
		return nil, err
	}
	next, err := openPin(nextPin)
	if err != nil {
		return nil, err
	}
	return &Watcher{prev: prev, next: next, nav: nav}, nil
}

func openPin(name string) (gpio.PinIO, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("unknown gpio pin %q", name)
	}
	if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return nil, fmt.Errorf("configure pin %s: %w", name, err)
	}
	return pin, nil
}

// Run blocks until ctx is canceled, delivering presses as they arrive.
func (w *Watcher) Run(ctx context.Context) error {
	go w.watch(ctx, w.prev, station.ButtonPrev)
	go w.watch(ctx, w.next, station.ButtonNext)
	<-ctx.Done()
	if err := w.prev.Halt(); err != nil {
		slog.Debug("halt pin", "pin", w.prev.Name(), "error", err)
	}
	if err := w.next.Halt(); err != nil {
		slog.Debug("halt pin", "pin", w.next.Name(), "error", err)
	}
	return ctx.Err()
}

func (w *Watcher) watch(ctx context.Context, pin gpio.PinIO, b station.Button) {
	// Bounded wait so cancellation is noticed between edges.
	for {
		if !pin.WaitForEdge(time.Second) {
			select {
			case <-ctx.Done():
				return
			default:
				continue
			}
		}
		w.nav.Press(b)
	}
}
