// Package indicator abstracts the 5x5 LED matrix used as the alert display.
package indicator

import "log/slog"

// NumPixels is the size of the LED matrix.
const NumPixels = 25

// Pattern is a per-pixel intensity map, row-major, values in [0,1].
type Pattern [NumPixels]float64

// Color scales a pattern's intensity per channel, values in [0,1].
type Color struct {
	R, G, B float64
}

var (
	// Yellow is the warning color used while an alert is active.
	Yellow = Color{R: 1, G: 1, B: 0}

	// Alert is an exclamation mark.
	Alert = Pattern{
		0, 0, 1, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 1, 0, 0,
	}

	// Clear blanks the matrix.
	Clear = Pattern{}
)

// Indicator is the display collaborator driven by the sampler.
type Indicator interface {
	Display(p Pattern, c Color)
}

// Log is an Indicator for builds without the matrix attached; it records
// alert transitions instead of driving hardware.
type Log struct {
	lastAlert bool
	hasState  bool
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Display(p Pattern, c Color) {
	alert := p != Clear
	if l.hasState && alert == l.lastAlert {
		return
	}
	l.hasState = true
	l.lastAlert = alert
	if alert {
		slog.Warn("indicator alert on")
		return
	}
	slog.Info("indicator cleared")
}
