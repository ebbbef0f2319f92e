// Package sensor defines the sensor collaborators the sampler reads from and
// the available driver implementations.
package sensor

import (
	"math"
	"sync"
)

// TempHumidity reads ambient temperature in °C and relative humidity in %RH.
type TempHumidity interface {
	ReadTempHumidity() (temperature, humidity float64, err error)
}

// Pressure reads absolute pressure in Pascal.
type Pressure interface {
	ReadPressure() (pressurePa float64, err error)
}

// Sim is a deterministic stand-in for the real sensors, for running the node
// without hardware. Values wander slowly around indoor conditions.
type Sim struct {
	mu   sync.Mutex
	step int
}

func NewSim() *Sim {
	return &Sim{}
}

func (s *Sim) ReadTempHumidity() (float64, float64, error) {
	phase := s.advance()
	return 24.0 + 2.0*math.Sin(phase), 55.0 + 10.0*math.Sin(phase/3), nil
}

func (s *Sim) ReadPressure() (float64, error) {
	phase := s.advance()
	return 100200.0 + 300.0*math.Sin(phase/5), nil
}

func (s *Sim) advance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step++
	return float64(s.step) / 20.0
}
