package recorder

import (
	"context"
	"fmt"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-lander/config"
)

// Measurement is the InfluxDB measurement of sampled ticks
const Measurement = "lander_telemetry"

const influxPingTimeout = 3 * time.Second

// InfluxSink streams sampled ticks to an InfluxDB bucket through the non-blocking write API
type InfluxSink struct {
	client influxdb2.Client
	writer influxdb2_api.WriteAPI
	log    zerolog.Logger
}

// NewInfluxSink connects to the configured server, failing when it does not answer ping
func NewInfluxSink(cfg config.InfluxConfig, log zerolog.Logger) (*InfluxSink, error) {
	client := influxdb2.NewClientWithOptions(
		cfg.URL,
		cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)

	ctx, cancel := context.WithTimeout(context.Background(), influxPingTimeout)
	defer cancel()
	running, err := client.Ping(ctx)
	if err != nil || !running {
		client.Close()
		if err == nil {
			err = fmt.Errorf("server not ready")
		}
		return nil, fmt.Errorf("influxdb at %s unavailable: %w", cfg.URL, err)
	}

	s := &InfluxSink{
		client: client,
		writer: client.WriteAPI(cfg.Org, cfg.Bucket),
		log:    log.With().Str("component", "influx").Str("bucket", cfg.Bucket).Logger(),
	}

	errorsCh := s.writer.Errors()
	go func() {
		for writeErr := range errorsCh {
			s.log.Error().Err(writeErr).Msg("Error sending telemetry to InfluxDB")
		}
	}()

	s.log.Info().Str("url", cfg.URL).Msg("InfluxDB sink connected")
	return s, nil
}

// Point builds the line-protocol point of one sample
func Point(flightID uint, t Telemetry) *influxdb2_write.Point {
	thrusting := 0
	if t.Thrusting {
		thrusting = 1
	}
	return influxdb2_write.NewPoint(
		Measurement,
		map[string]string{
			"flight": strconv.FormatUint(uint64(flightID), 10),
			"state":  t.State,
		},
		map[string]interface{}{
			"frame":     t.Frame,
			"x":         t.Position.X,
			"y":         t.Position.Y,
			"z":         t.Position.Z,
			"vx":        t.Velocity.X,
			"vy":        t.Velocity.Y,
			"vz":        t.Velocity.Z,
			"fuel":      t.Fuel,
			"altitude":  t.Altitude,
			"thrusting": thrusting,
		},
		t.Time,
	)
}

func (s *InfluxSink) Write(flightID uint, t Telemetry) {
	s.writer.WritePoint(Point(flightID, t))
}

// Close flushes buffered points and shuts the client down
func (s *InfluxSink) Close() error {
	s.writer.Flush()
	s.client.Close()
	return nil
}
