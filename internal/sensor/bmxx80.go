package sensor

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"
)

// BMxx80 drives a BME280/BMP280 over I2C. One device serves both the
// temperature/humidity and the pressure collaborator.
type BMxx80 struct {
	mu  sync.Mutex
	bus i2c.BusCloser
	dev *bmxx80.Dev
}

// OpenBMxx80 opens the default I2C bus and probes the sensor at addr
// (typically 0x76 or 0x77).
func OpenBMxx80(addr uint16) (*BMxx80, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		return nil, fmt.Errorf("open i2c bus: %w", err)
	}
	dev, err := bmxx80.NewI2C(bus, addr, &bmxx80.DefaultOpts)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("probe bmxx80 at 0x%02x: %w", addr, err)
	}
	return &BMxx80{bus: bus, dev: dev}, nil
}

func (s *BMxx80) ReadTempHumidity() (float64, float64, error) {
	env, err := s.sense()
	if err != nil {
		return 0, 0, err
	}
	// env.Humidity is fixed point at 0.00001 %rH per unit.
	return env.Temperature.Celsius(), float64(env.Humidity) / 100000.0, nil
}

func (s *BMxx80) ReadPressure() (float64, error) {
	env, err := s.sense()
	if err != nil {
		return 0, err
	}
	return float64(env.Pressure) / float64(physic.Pascal), nil
}

func (s *BMxx80) sense() (physic.Env, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var env physic.Env
	if err := s.dev.Sense(&env); err != nil {
		return physic.Env{}, fmt.Errorf("sense: %w", err)
	}
	return env, nil
}

func (s *BMxx80) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dev.Halt(); err != nil {
		_ = s.bus.Close()
		return err
	}
	return s.bus.Close()
}
