package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/CarlosHenriqueSL/WebDisplay/internal/buttons"
	"github.com/CarlosHenriqueSL/WebDisplay/internal/config"
	"github.com/CarlosHenriqueSL/WebDisplay/internal/db"
	"github.com/CarlosHenriqueSL/WebDisplay/internal/history"
	"github.com/CarlosHenriqueSL/WebDisplay/internal/httpd"
	"github.com/CarlosHenriqueSL/WebDisplay/internal/indicator"
	"github.com/CarlosHenriqueSL/WebDisplay/internal/sensor"
	"github.com/CarlosHenriqueSL/WebDisplay/internal/station"
	"github.com/CarlosHenriqueSL/WebDisplay/internal/telemetry"
)

func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"stationId", cfg.StationID,
		"sampleInterval", cfg.SampleInterval,
		"buttonDebounce", cfg.ButtonDebounce,
		"sensorDriver", cfg.SensorDriver,
		"mqttBroker", cfg.MQTTBroker,
		"sqlitePath", cfg.SQLitePath,
	)

	dbConn, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(dbConn); closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()

	if err := db.Migrate(dbConn); err != nil {
		return err
	}

	tempHumidity, pressure, cleanup, err := openSensors(cfg)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	thresholds := station.NewThresholdStore()
	snapshot := &station.Snapshot{}
	nav := station.NewNavigator(cfg.ButtonDebounce)
	repo := history.NewRepository(dbConn)

	// MQTT is optional: no broker configured means no telemetry, and a
	// down broker must not keep the dashboard from starting.
	var publisher station.Publisher
	var mqttClient *telemetry.Client
	if cfg.MQTTBroker != "" {
		mqttClient = telemetry.NewClient(cfg)
		connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
		err := mqttClient.Connect(connectCtx)
		connectCancel()
		if err != nil {
			slog.Warn("mqtt not connected yet (retrying in background)", "error", err)
		}
		publisher = mqttClient
		defer mqttClient.Disconnect()
	}

	sampler := &station.Sampler{
		TempHumidity: tempHumidity,
		Pressure:     pressure,
		Thresholds:   thresholds,
		Snapshot:     snapshot,
		Indicator:    indicator.NewLog(),
		Publisher:    publisher,
		Recorder:     repo,
		Interval:     cfg.SampleInterval,
	}

	srv := &httpd.Server{
		Addr: cfg.HTTPAddr,
		Router: &httpd.Router{
			Nav:          nav,
			Thresholds:   thresholds,
			Snapshot:     snapshot,
			History:      repo,
			HistoryLimit: cfg.HistoryLimit,
		},
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := sampler.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("sampler stopped", "error", err)
		}
	}()

	if cfg.ButtonPrevPin != "" {
		watcher, err := buttons.NewWatcher(cfg.ButtonPrevPin, cfg.ButtonNextPin, nav)
		if err != nil {
			slog.Warn("buttons unavailable; navigation via web only", "error", err)
		} else {
			go func() {
				if err := watcher.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
					slog.Error("button watcher stopped", "error", err)
				}
			}()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(runCtx)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	cancel()
	err = <-errCh
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return ctx.Err()
}

func openSensors(cfg config.Config) (sensor.TempHumidity, sensor.Pressure, func(), error) {
	switch cfg.SensorDriver {
	case "bmxx80":
		dev, err := sensor.OpenBMxx80(cfg.BME280Address)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open bmxx80: %w", err)
		}
		cleanup := func() {
			if err := dev.Close(); err != nil {
				slog.Error("sensor close", "error", err)
			}
		}
		return dev, dev, cleanup, nil
	default:
		sim := sensor.NewSim()
		return sim, sim, nil, nil
	}
}
