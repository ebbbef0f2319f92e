package station

import "sync"

// Limits is the per-quantity calibration offset plus alert band.
type Limits struct {
	Offset float64
	Min    float64
	Max    float64
}

// Thresholds groups the limits for all four measured quantities.
type Thresholds struct {
	Temperature Limits
	Humidity    Limits
	Pressure    Limits
	Altitude    Limits
}

// DefaultThresholds returns the power-on configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Temperature: Limits{Offset: 0, Min: 10, Max: 40},
		Humidity:    Limits{Offset: 0, Min: 60, Max: 85},
		Pressure:    Limits{Offset: 0, Min: 85, Max: 105},
		Altitude:    Limits{Offset: 0, Min: 800, Max: 900},
	}
}

// ThresholdStore holds the live configuration. It is written by the config
// form handler and read by the sampler, which run on different goroutines.
type ThresholdStore struct {
	mu sync.Mutex
	t  Thresholds
}

func NewThresholdStore() *ThresholdStore {
	return &ThresholdStore{t: DefaultThresholds()}
}

// Snapshot returns a copy of the current thresholds.
func (s *ThresholdStore) Snapshot() Thresholds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t
}

// Apply assigns value to the field named by key. The key set is fixed to the
// twelve names used by the config form; anything else is silently dropped.
// Values are not range-checked, so min may end up above max. That mirrors the
// form's behavior and is left as-is.
func (s *ThresholdStore) Apply(key string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch key {
	case "temp_offset":
		s.t.Temperature.Offset = value
	case "temp_min":
		s.t.Temperature.Min = value
	case "temp_max":
		s.t.Temperature.Max = value
	case "umid_offset":
		s.t.Humidity.Offset = value
	case "umid_min":
		s.t.Humidity.Min = value
	case "umid_max":
		s.t.Humidity.Max = value
	case "press_offset":
		s.t.Pressure.Offset = value
	case "press_min":
		s.t.Pressure.Min = value
	case "press_max":
		s.t.Pressure.Max = value
	case "alt_offset":
		s.t.Altitude.Offset = value
	case "alt_min":
		s.t.Altitude.Min = value
	case "alt_max":
		s.t.Altitude.Max = value
	}
}
