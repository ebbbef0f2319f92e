package station

import (
	"math"
	"sync"
)

// SeaLevelPressurePa is the reference pressure used for altitude estimation.
const SeaLevelPressurePa = 101325.0

// Reading is one completed set of calibrated sensor values: temperature in
// degrees Celsius, relative humidity in %, pressure in kPa and altitude in
// meters. Field names on the wire match the dashboard contract.
type Reading struct {
	Temperatura float64 `json:"temperatura"`
	Umidade     float64 `json:"umidade"`
	Pressao     float64 `json:"pressao"`
	Altitude    float64 `json:"altitude"`
}

// Altitude estimates altitude in meters from absolute pressure in Pascal
// using the international barometric formula.
func Altitude(pressurePa float64) float64 {
	return 44330.0 * (1.0 - math.Pow(pressurePa/SeaLevelPressurePa, 0.1903))
}

// Calibrate converts raw sensor values (temperature °C, humidity %RH,
// pressure Pa) into a Reading with the given offsets applied. Pressure is
// reported in kPa; altitude is derived from the uncorrected pressure before
// its own offset is added.
func Calibrate(temperature, humidity, pressurePa float64, t Thresholds) Reading {
	return Reading{
		Temperatura: temperature + t.Temperature.Offset,
		Umidade:     humidity + t.Humidity.Offset,
		Pressao:     pressurePa/1000.0 + t.Pressure.Offset,
		Altitude:    Altitude(pressurePa) + t.Altitude.Offset,
	}
}

// Snapshot holds the most recently completed Reading. All four fields are
// replaced in a single critical section so readers never observe a
// half-written sample.
type Snapshot struct {
	mu sync.Mutex
	r  Reading
}

func (s *Snapshot) Set(r Reading) {
	s.mu.Lock()
	s.r = r
	s.mu.Unlock()
}

func (s *Snapshot) Get() Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r
}
