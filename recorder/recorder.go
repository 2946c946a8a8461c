package recorder

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lixenwraith/vi-lander/config"
	"github.com/lixenwraith/vi-lander/engine"
	"github.com/lixenwraith/vi-lander/event"
)

var (
	// ErrDisabled is returned by Open when no driver is configured
	ErrDisabled = errors.New("recorder disabled")
	// ErrNoFlight is returned when recording without an active flight
	ErrNoFlight = errors.New("no active flight")
)

// Sink receives every sampled tick alongside the database
type Sink interface {
	Write(flightID uint, t Telemetry)
	Close() error
}

// Recorder persists flights and their sampled telemetry
// Not safe for concurrent use; driven from the simulation loop
type Recorder struct {
	db        *gorm.DB
	log       zerolog.Logger
	interval  int64
	batchSize int

	flight *Flight
	start  int64
	began  time.Time
	batch  []Sample
	track  trackBuilder
	sinks  []Sink

	failed bool
}

// Open connects to the configured database and migrates the schema
func Open(cfg config.RecorderConfig, log zerolog.Logger) (*Recorder, error) {
	gcfg := &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        cfg.BatchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.Path), gcfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite %s: %w", cfg.Path, err)
		}
		if cfg.Path == ":memory:" {
			// Each connection would see its own empty memory database
			sqlDB, err := db.DB()
			if err != nil {
				return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
			}
			sqlDB.SetMaxOpenConns(1)
		}
	case "postgres":
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		}), gcfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
	default:
		return nil, ErrDisabled
	}

	return New(db, cfg, log)
}

// New wraps an open database
func New(db *gorm.DB, cfg config.RecorderConfig, log zerolog.Logger) (*Recorder, error) {
	if err := db.AutoMigrate(&Flight{}, &Sample{}); err != nil {
		return nil, fmt.Errorf("failed to migrate recorder schema: %w", err)
	}

	interval := int64(cfg.SampleInterval)
	if interval < 1 {
		interval = 1
	}
	batchSize := cfg.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	r := &Recorder{
		db:        db,
		log:       log.With().Str("component", "recorder").Logger(),
		interval:  interval,
		batchSize: batchSize,
		batch:     make([]Sample, 0, batchSize),
	}
	r.log.Info().
		Str("driver", db.Dialector.Name()).
		Int64("interval", interval).
		Int("batch", batchSize).
		Msg("Flight recorder ready")
	return r, nil
}

// AddSink attaches a secondary telemetry destination, closed with the recorder
func (r *Recorder) AddSink(s Sink) {
	r.sinks = append(r.sinks, s)
}

// DB returns the underlying connection
func (r *Recorder) DB() *gorm.DB {
	return r.db
}

// Active reports whether a flight is being recorded
func (r *Recorder) Active() bool {
	return r.flight != nil
}

// BeginFlight opens a flight row storing settings as JSON
func (r *Recorder) BeginFlight(settings any, frame int64, now time.Time) error {
	if r.flight != nil {
		return fmt.Errorf("flight %d still active", r.flight.ID)
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode flight settings: %w", err)
	}

	f := &Flight{
		StartedAt: now.UTC(),
		Settings:  datatypes.JSON(raw),
		Outcome:   engine.OutcomeNone.String(),
	}
	if err := r.db.Create(f).Error; err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}

	r.flight = f
	r.start = frame
	r.began = now
	r.batch = r.batch[:0]
	r.track.Reset()
	r.log.Debug().Uint("flight", f.ID).Int64("frame", frame).Msg("Flight started")
	return nil
}

// Record samples t every interval frames, flushing full batches
func (r *Recorder) Record(t Telemetry) error {
	if r.flight == nil {
		return ErrNoFlight
	}
	if (t.Frame-r.start)%r.interval != 0 {
		return nil
	}

	r.track.Add(t)
	for _, s := range r.sinks {
		s.Write(r.flight.ID, t)
	}

	r.batch = append(r.batch, Sample{
		FlightID:  r.flight.ID,
		Frame:     t.Frame,
		Time:      t.Time.UTC(),
		Position:  point3(t.Position),
		Velocity:  point3(t.Velocity),
		Fuel:      t.Fuel,
		Altitude:  t.Altitude,
		State:     t.State,
		Thrusting: t.Thrusting,
	})
	if len(r.batch) >= r.batchSize {
		return r.flush()
	}
	return nil
}

func (r *Recorder) flush() error {
	if len(r.batch) == 0 {
		return nil
	}
	if err := r.db.CreateInBatches(r.batch, r.batchSize).Error; err != nil {
		return fmt.Errorf("failed to write %d samples: %w", len(r.batch), err)
	}
	r.batch = r.batch[:0]
	return nil
}

// Finish closes the active flight with its outcome and touchdown contact
func (r *Recorder) Finish(outcome string, td event.TouchdownPayload, frame int64, now time.Time) (*Flight, error) {
	if r.flight == nil {
		return nil, ErrNoFlight
	}
	f := r.flight
	r.flight = nil

	if err := r.flush(); err != nil {
		r.batch = r.batch[:0]
		return nil, err
	}

	ended := now.UTC()
	f.EndedAt = &ended
	f.Outcome = outcome
	f.Impulse = td.Impulse
	f.InZone = td.InZone
	f.FuelLeft = td.Fuel
	f.Ticks = frame - r.start
	f.Touchdown = point3(td.Position)
	f.Track, f.TrackLength = r.track.Summary()

	if err := r.db.Save(f).Error; err != nil {
		return nil, fmt.Errorf("failed to finish flight %d: %w", f.ID, err)
	}

	r.log.Info().
		Uint("flight", f.ID).
		Str("outcome", outcome).
		Float64("impulse", td.Impulse).
		Int64("ticks", f.Ticks).
		Float64("track_length", f.TrackLength).
		Msg("Flight recorded")
	return f, nil
}

// Observe records the simulation after a tick: flights begin on the first
// flying tick and finish when the lifecycle reaches a terminal state
// Database errors disable the recorder for the rest of the session
func (r *Recorder) Observe(s *engine.Simulation) {
	if r.failed {
		return
	}
	now := time.Now()

	switch {
	case s.State() == engine.StateFlying:
		if r.flight == nil {
			if err := r.BeginFlight(s.Settings(), s.Frame(), now); err != nil {
				r.fail(err)
				return
			}
		}
		if err := r.Record(r.telemetry(s, now)); err != nil {
			r.fail(err)
		}
	case s.Terminal() && r.flight != nil:
		if _, err := r.Finish(s.Outcome().String(), s.Touchdown(), s.Frame(), now); err != nil {
			r.fail(err)
		}
	}
}

func (r *Recorder) telemetry(s *engine.Simulation, now time.Time) Telemetry {
	elapsed := time.Duration(float64(s.Frame()-r.start) * s.Settings().Dt * float64(time.Second))
	return Telemetry{
		Frame:     s.Frame(),
		Time:      now,
		Elapsed:   elapsed,
		Position:  s.Ship.Position,
		Velocity:  s.Ship.Velocity,
		Fuel:      s.Ship.Fuel,
		Altitude:  s.Sensor().Altitude,
		State:     s.StateName(),
		Thrusting: s.Thrusting(),
	}
}

// fail disables the recorder and discards buffered samples so Close writes nothing for the abandoned flight
func (r *Recorder) fail(err error) {
	r.failed = true
	r.flight = nil
	r.batch = r.batch[:0]
	r.track.Reset()
	r.log.Error().Err(err).Msg("Flight recorder disabled")
}

// Flights returns the most recent flights, newest first
func (r *Recorder) Flights(limit int) ([]Flight, error) {
	var flights []Flight
	if err := r.db.Order("id desc").Limit(limit).Find(&flights).Error; err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	return flights, nil
}

// Samples returns the recorded ticks of a flight in frame order
func (r *Recorder) Samples(flightID uint) ([]Sample, error) {
	var samples []Sample
	if err := r.db.Where("flight_id = ?", flightID).Order("frame").Find(&samples).Error; err != nil {
		return nil, fmt.Errorf("failed to load samples of flight %d: %w", flightID, err)
	}
	return samples, nil
}

// Close flushes pending samples, closes sinks and the connection
func (r *Recorder) Close() error {
	var errs []error
	if err := r.flush(); err != nil {
		errs = append(errs, err)
	}
	for _, s := range r.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if sqlDB, err := r.db.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	} else {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
