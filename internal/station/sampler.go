package station

import (
	"context"
	"log/slog"
	"time"

	"github.com/CarlosHenriqueSL/WebDisplay/internal/indicator"
	"github.com/CarlosHenriqueSL/WebDisplay/internal/sensor"
)

// Publisher forwards completed readings to a telemetry sink. Best effort:
// the sampler logs failures and moves on.
type Publisher interface {
	PublishReading(r Reading) error
}

// Recorder persists completed readings for the history endpoint.
type Recorder interface {
	Insert(ts time.Time, r Reading) error
}

// Sampler reads the sensors on a fixed interval, applies the current
// calibration, replaces the snapshot and drives the alert indicator.
type Sampler struct {
	TempHumidity sensor.TempHumidity
	Pressure     sensor.Pressure
	Thresholds   *ThresholdStore
	Snapshot     *Snapshot
	Indicator    indicator.Indicator
	Publisher    Publisher // optional
	Recorder     Recorder  // optional
	Interval     time.Duration
}

// Run blocks sampling until ctx is canceled. The first sample is taken
// immediately so the dashboard has data before the first full interval.
func (s *Sampler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.tick(time.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

func (s *Sampler) tick(now time.Time) {
	temperature, humidity, err := s.TempHumidity.ReadTempHumidity()
	if err != nil {
		slog.Warn("temp/humidity read failed, skipping sample", "error", err)
		return
	}
	pressurePa, err := s.Pressure.ReadPressure()
	if err != nil {
		slog.Warn("pressure read failed, skipping sample", "error", err)
		return
	}

	thresholds := s.Thresholds.Snapshot()
	reading := Calibrate(temperature, humidity, pressurePa, thresholds)
	s.Snapshot.Set(reading)

	// Only temperature and humidity trigger the alert. Pressure and
	// altitude limits are configurable but do not contribute; the chart
	// pages still draw them as reference lines.
	alert := reading.Temperatura > thresholds.Temperature.Max ||
		reading.Temperatura < thresholds.Temperature.Min ||
		reading.Umidade > thresholds.Humidity.Max ||
		reading.Umidade < thresholds.Humidity.Min

	if alert {
		s.Indicator.Display(indicator.Alert, indicator.Yellow)
	} else {
		s.Indicator.Display(indicator.Clear, indicator.Yellow)
	}

	if s.Publisher != nil {
		if err := s.Publisher.PublishReading(reading); err != nil {
			slog.Warn("telemetry publish failed", "error", err)
		}
	}
	if s.Recorder != nil {
		if err := s.Recorder.Insert(now, reading); err != nil {
			slog.Warn("history insert failed", "error", err)
		}
	}

	slog.Debug("sample",
		"temperatura", reading.Temperatura,
		"umidade", reading.Umidade,
		"pressao", reading.Pressao,
		"altitude", reading.Altitude,
		"alert", alert,
	)
}
