package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadFromEnv()
		if err != nil {
			t.Fatalf("LoadFromEnv: %v", err)
		}
		if cfg.AppEnv != "dev" {
			t.Errorf("AppEnv = %q; want dev", cfg.AppEnv)
		}
		if cfg.HTTPAddr != ":80" {
			t.Errorf("HTTPAddr = %q; want :80", cfg.HTTPAddr)
		}
		if cfg.SampleInterval != 2*time.Second {
			t.Errorf("SampleInterval = %v; want 2s", cfg.SampleInterval)
		}
		if cfg.ButtonDebounce != 500*time.Millisecond {
			t.Errorf("ButtonDebounce = %v; want 500ms", cfg.ButtonDebounce)
		}
		if cfg.SensorDriver != "sim" {
			t.Errorf("SensorDriver = %q; want sim", cfg.SensorDriver)
		}
		if cfg.LogLevel != slog.LevelInfo {
			t.Errorf("LogLevel = %v; want info", cfg.LogLevel)
		}
		if cfg.HistoryLimit != 100 {
			t.Errorf("HistoryLimit = %d; want 100", cfg.HistoryLimit)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("APP_ENV", "prod")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("HTTP_ADDR", ":8080")
		t.Setenv("SAMPLE_INTERVAL", "500ms")
		t.Setenv("SENSOR_DRIVER", "bmxx80")
		t.Setenv("BME280_ADDRESS", "0x77")
		t.Setenv("MQTT_BROKER", "broker.local")

		cfg, err := LoadFromEnv()
		if err != nil {
			t.Fatalf("LoadFromEnv: %v", err)
		}
		if cfg.AppEnv != "prod" || cfg.LogLevel != slog.LevelDebug {
			t.Errorf("env/level = %q/%v", cfg.AppEnv, cfg.LogLevel)
		}
		if cfg.SampleInterval != 500*time.Millisecond {
			t.Errorf("SampleInterval = %v; want 500ms", cfg.SampleInterval)
		}
		if cfg.BME280Address != 0x77 {
			t.Errorf("BME280Address = %#x; want 0x77", cfg.BME280Address)
		}
		if cfg.MQTTBroker != "broker.local" {
			t.Errorf("MQTTBroker = %q", cfg.MQTTBroker)
		}
	})

	invalid := []struct {
		name  string
		key   string
		value string
	}{
		{"bad app env", "APP_ENV", "staging"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad sample interval", "SAMPLE_INTERVAL", "soon"},
		{"negative sample interval", "SAMPLE_INTERVAL", "-1s"},
		{"bad sensor driver", "SENSOR_DRIVER", "dht22"},
		{"bad bme280 address", "BME280_ADDRESS", "grove"},
		{"bad mqtt port", "MQTT_PORT", "the-usual"},
		{"bad history limit", "HISTORY_LIMIT", "0"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := LoadFromEnv(); err == nil {
				t.Errorf("LoadFromEnv accepted %s=%q", tc.key, tc.value)
			}
		})
	}

	t.Run("button pins must be set together", func(t *testing.T) {
		t.Setenv("BUTTON_PREV_PIN", "GPIO5")
		if _, err := LoadFromEnv(); err == nil {
			t.Error("LoadFromEnv accepted a single button pin")
		}
	})
}
