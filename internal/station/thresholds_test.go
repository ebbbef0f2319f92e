package station

import "testing"

func TestThresholdStore_Apply(t *testing.T) {
	t.Run("recognized key updates only its field", func(t *testing.T) {
		s := NewThresholdStore()
		s.Apply("temp_offset", 1.5)

		got := s.Snapshot()
		want := DefaultThresholds()
		want.Temperature.Offset = 1.5
		if got != want {
			t.Errorf("Snapshot() = %+v; want %+v", got, want)
		}
	})

	t.Run("unknown key is silently dropped", func(t *testing.T) {
		s := NewThresholdStore()
		s.Apply("bogus", 9)
		s.Apply("temp_offsetX", 9)
		s.Apply("", 9)

		if got := s.Snapshot(); got != DefaultThresholds() {
			t.Errorf("Snapshot() = %+v; want defaults unchanged", got)
		}
	})

	t.Run("all twelve keys are recognized", func(t *testing.T) {
		s := NewThresholdStore()
		keys := []string{
			"temp_offset", "temp_min", "temp_max",
			"umid_offset", "umid_min", "umid_max",
			"press_offset", "press_min", "press_max",
			"alt_offset", "alt_min", "alt_max",
		}
		for i, k := range keys {
			s.Apply(k, float64(i+1))
		}
		got := s.Snapshot()
		want := Thresholds{
			Temperature: Limits{Offset: 1, Min: 2, Max: 3},
			Humidity:    Limits{Offset: 4, Min: 5, Max: 6},
			Pressure:    Limits{Offset: 7, Min: 8, Max: 9},
			Altitude:    Limits{Offset: 10, Min: 11, Max: 12},
		}
		if got != want {
			t.Errorf("Snapshot() = %+v; want %+v", got, want)
		}
	})

	// Open question carried from the original firmware: values are not
	// range-checked, so an inverted band is accepted and every sample then
	// trips the alert. Kept as-is for compatibility.
	t.Run("min above max is accepted without validation", func(t *testing.T) {
		s := NewThresholdStore()
		s.Apply("temp_min", 50)
		s.Apply("temp_max", 10)

		got := s.Snapshot()
		if got.Temperature.Min != 50 || got.Temperature.Max != 10 {
			t.Errorf("Temperature = %+v; want inverted band stored verbatim", got.Temperature)
		}
	})
}
