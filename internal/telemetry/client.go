// Package telemetry publishes completed samples to an MQTT broker so an
// upstream collector can aggregate readings from many nodes.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/CarlosHenriqueSL/WebDisplay/internal/config"
	"github.com/CarlosHenriqueSL/WebDisplay/internal/station"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Telemetry is the message published per sample.
type Telemetry struct {
	StationID   string    `json:"station_id"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature *float64  `json:"temperature_c,omitempty"`
	Humidity    *float64  `json:"humidity_pct,omitempty"`
	Pressure    *float64  `json:"pressure_hpa,omitempty"`
	Altitude    *float64  `json:"altitude_m,omitempty"`
	Sequence    *int      `json:"sequence,omitempty"`
}

type Client struct {
	client    mqtt.Client
	cfg       config.Config
	mu        sync.RWMutex
	connected bool
	seq       int

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewClient(cfg config.Config) *Client {
	c := &Client{
		cfg:    cfg,
		stopCh: make(chan struct{}),
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.MQTTBroker, cfg.MQTTPort))
	opts.SetClientID(cfg.MQTTClientID)

	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(60 * time.Second)

	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	// Callbacks keep internal state accurate
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		c.setConnected(true)
		slog.Info("mqtt connected", "broker", cfg.MQTTBroker, "port", cfg.MQTTPort)
	})

	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		c.setConnected(false)
		slog.Warn("mqtt connection lost", "error", err)
	})

	c.client = mqtt.NewClient(opts)
	return c
}

// Connect establishes the broker connection. It waits for the initial
// connection and respects ctx and Disconnect().
func (c *Client) Connect(ctx context.Context) error {
	// Fail fast if already stopped.
	select {
	case <-c.stopCh:
		return fmt.Errorf("client stopped")
	default:
	}

	if c.IsConnected() {
		return nil
	}

	// With ConnectRetry(true) the token may keep retrying internally.
	token := c.client.Connect()

	const poll = 200 * time.Millisecond
	for {
		if token.WaitTimeout(poll) {
			if err := token.Error(); err != nil {
				return fmt.Errorf("mqtt connect: %w", err)
			}
			// OnConnectHandler sets connected=true.
			return nil
		}

		select {
		case <-ctx.Done():
			// Give up waiting but leave the client alone: the connect
			// token keeps retrying in the background, and a later
			// broker appearance still brings the link up.
			return ctx.Err()
		case <-c.stopCh:
			c.client.Disconnect(0)
			return fmt.Errorf("client stopped")
		default:
		}
	}
}

// PublishReading publishes one sample to the station's telemetry topic.
func (c *Client) PublishReading(r station.Reading) error {
	if !c.IsConnected() {
		return fmt.Errorf("mqtt client not connected")
	}

	topic := fmt.Sprintf("stations/%s/telemetry", c.cfg.StationID)

	pressureHpa := r.Pressao * 10 // kPa -> hPa

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	msg := Telemetry{
		StationID:   c.cfg.StationID,
		Timestamp:   time.Now(),
		Temperature: &r.Temperatura,
		Humidity:    &r.Umidade,
		Pressure:    &pressureHpa,
		Altitude:    &r.Altitude,
		Sequence:    &seq,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal telemetry: %w", err)
	}

	token := c.client.Publish(topic, 1, false, data)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout for topic %s", topic)
	}
	if token.Error() != nil {
		return fmt.Errorf("publish telemetry: %w", token.Error())
	}

	slog.Debug("published telemetry", "topic", topic, "sequence", seq)
	return nil
}

// IsConnected returns whether the client is connected.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	connected := c.connected
	c.mu.RUnlock()
	return connected && c.client.IsConnected()
}

// Disconnect stops the client and closes the MQTT connection. Idempotent;
// after Disconnect, Connect() returns "client stopped".
func (c *Client) Disconnect() {
	c.stopOnce.Do(func() { close(c.stopCh) })

	// Disconnect without holding c.mu to avoid lock contention.
	if c.client != nil {
		c.client.Disconnect(250)
	}

	c.setConnected(false)
	slog.Info("mqtt disconnected")
}

func (c *Client) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}
