package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	HTTPAddr string

	StationID      string
	SampleInterval time.Duration
	ButtonDebounce time.Duration

	// SensorDriver selects the hardware backend: "sim" or "bmxx80".
	SensorDriver  string
	BME280Address uint16

	// Button pins are periph pin names (e.g. "GPIO5"). Empty disables the
	// physical buttons.
	ButtonPrevPin string
	ButtonNextPin string

	MQTTBroker   string
	MQTTPort     int
	MQTTClientID string

	DBDriver          string
	SQLitePath        string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	HistoryLimit      int
}

func LoadFromEnv() (Config, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	logLevelStr := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := parseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	httpAddr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = ":80"
	}

	stationID := strings.TrimSpace(os.Getenv("STATION_ID"))
	if stationID == "" {
		stationID = "estacao"
	}

	sampleIntervalStr := strings.TrimSpace(os.Getenv("SAMPLE_INTERVAL"))
	if sampleIntervalStr == "" {
		sampleIntervalStr = "2s"
	}
	sampleInterval, err := time.ParseDuration(sampleIntervalStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid SAMPLE_INTERVAL %q: %w", sampleIntervalStr, err)
	}
	if sampleInterval <= 0 {
		return Config{}, fmt.Errorf("SAMPLE_INTERVAL must be positive, got %v", sampleInterval)
	}

	debounceStr := strings.TrimSpace(os.Getenv("BUTTON_DEBOUNCE"))
	if debounceStr == "" {
		debounceStr = "500ms"
	}
	debounce, err := time.ParseDuration(debounceStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid BUTTON_DEBOUNCE %q: %w", debounceStr, err)
	}
	if debounce < 0 {
		return Config{}, fmt.Errorf("BUTTON_DEBOUNCE must not be negative, got %v", debounce)
	}

	sensorDriver := strings.TrimSpace(os.Getenv("SENSOR_DRIVER"))
	if sensorDriver == "" {
		sensorDriver = "sim"
	}
	switch sensorDriver {
	case "sim", "bmxx80":
	default:
		return Config{}, fmt.Errorf("invalid SENSOR_DRIVER %q (allowed: sim, bmxx80)", sensorDriver)
	}

	bme280AddressStr := strings.TrimSpace(os.Getenv("BME280_ADDRESS"))
	if bme280AddressStr == "" {
		bme280AddressStr = "0x76"
	}
	bme280Address, err := strconv.ParseUint(bme280AddressStr, 0, 16)
	if err != nil {
		return Config{}, fmt.Errorf("invalid BME280_ADDRESS %q: %w", bme280AddressStr, err)
	}

	buttonPrevPin := strings.TrimSpace(os.Getenv("BUTTON_PREV_PIN"))
	buttonNextPin := strings.TrimSpace(os.Getenv("BUTTON_NEXT_PIN"))
	if (buttonPrevPin == "") != (buttonNextPin == "") {
		return Config{}, fmt.Errorf("BUTTON_PREV_PIN and BUTTON_NEXT_PIN must be set together")
	}

	mqttBroker := strings.TrimSpace(os.Getenv("MQTT_BROKER"))

	mqttPortStr := strings.TrimSpace(os.Getenv("MQTT_PORT"))
	if mqttPortStr == "" {
		mqttPortStr = "1883"
	}
	mqttPort, err := strconv.Atoi(mqttPortStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid MQTT_PORT %q: %w", mqttPortStr, err)
	}

	mqttClientID := strings.TrimSpace(os.Getenv("MQTT_CLIENT_ID"))
	if mqttClientID == "" {
		mqttClientID = "webdisplay-" + stationID
	}

	dbDriver := strings.TrimSpace(os.Getenv("DB_DRIVER"))
	if dbDriver == "" {
		dbDriver = "sqlite3"
	}
	sqlitePath := strings.TrimSpace(os.Getenv("SQLITE_PATH"))
	if sqlitePath == "" {
		sqlitePath = "data/estacao.db"
	}

	maxOpenConnsStr := strings.TrimSpace(os.Getenv("DB_MAX_OPEN_CONNS"))
	if maxOpenConnsStr == "" {
		maxOpenConnsStr = "1"
	}
	maxOpenConns, err := strconv.Atoi(maxOpenConnsStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid DB_MAX_OPEN_CONNS %q: %w", maxOpenConnsStr, err)
	}

	maxIdleConnsStr := strings.TrimSpace(os.Getenv("DB_MAX_IDLE_CONNS"))
	if maxIdleConnsStr == "" {
		maxIdleConnsStr = "1"
	}
	maxIdleConns, err := strconv.Atoi(maxIdleConnsStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid DB_MAX_IDLE_CONNS %q: %w", maxIdleConnsStr, err)
	}

	connMaxLifetimeStr := strings.TrimSpace(os.Getenv("DB_CONN_MAX_LIFETIME"))
	if connMaxLifetimeStr == "" {
		connMaxLifetimeStr = "0s"
	}
	connMaxLifetime, err := time.ParseDuration(connMaxLifetimeStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME %q: %w", connMaxLifetimeStr, err)
	}

	historyLimitStr := strings.TrimSpace(os.Getenv("HISTORY_LIMIT"))
	if historyLimitStr == "" {
		historyLimitStr = "100"
	}
	historyLimit, err := strconv.Atoi(historyLimitStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid HISTORY_LIMIT %q: %w", historyLimitStr, err)
	}
	if historyLimit <= 0 {
		return Config{}, fmt.Errorf("HISTORY_LIMIT must be positive, got %d", historyLimit)
	}

	return Config{
		AppEnv:            appEnv,
		LogLevel:          level,
		HTTPAddr:          httpAddr,
		StationID:         stationID,
		SampleInterval:    sampleInterval,
		ButtonDebounce:    debounce,
		SensorDriver:      sensorDriver,
		BME280Address:     uint16(bme280Address),
		ButtonPrevPin:     buttonPrevPin,
		ButtonNextPin:     buttonNextPin,
		MQTTBroker:        mqttBroker,
		MQTTPort:          mqttPort,
		MQTTClientID:      mqttClientID,
		DBDriver:          dbDriver,
		SQLitePath:        sqlitePath,
		DBMaxOpenConns:    maxOpenConns,
		DBMaxIdleConns:    maxIdleConns,
		DBConnMaxLifetime: connMaxLifetime,
		HistoryLimit:      historyLimit,
	}, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
