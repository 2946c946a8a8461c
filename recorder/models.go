package recorder

import (
	"time"

	"gorm.io/datatypes"

	"github.com/lixenwraith/vi-lander/vmath"
)

// Point3 is a vector stored as three columns
type Point3 struct {
	X float64
	Y float64
	Z float64
}

func point3(v vmath.Vec3F) Point3 {
	return Point3{X: v.X, Y: v.Y, Z: v.Z}
}

// Flight is one launch-to-touchdown run
type Flight struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	StartedAt time.Time      `json:"startedAt" gorm:"index:idx_flight_started"`
	EndedAt   *time.Time     `json:"endedAt"`
	Settings  datatypes.JSON `json:"settings"`

	Outcome   string  `json:"outcome" gorm:"size:32;index:idx_flight_outcome"`
	Impulse   float64 `json:"impulse"`
	InZone    bool    `json:"inZone"`
	FuelLeft  float64 `json:"fuelLeft"`
	Ticks     int64   `json:"ticks"`
	Touchdown Point3  `json:"touchdown" gorm:"embedded;embeddedPrefix:touchdown_"`

	// Track is the sampled path as WKT LINESTRING ZM: X/Y ground plane, Z altitude, M seconds
	Track       string  `json:"track" gorm:"type:text"`
	TrackLength float64 `json:"trackLength"`

	Samples []Sample `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:FlightID"`
}

// Sample is one recorded tick
type Sample struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	FlightID  uint      `json:"flightId" gorm:"index:idx_sample_flight"`
	Frame     int64     `json:"frame"`
	Time      time.Time `json:"time"`
	Position  Point3    `json:"position" gorm:"embedded;embeddedPrefix:pos_"`
	Velocity  Point3    `json:"velocity" gorm:"embedded;embeddedPrefix:vel_"`
	Fuel      float64   `json:"fuel"`
	Altitude  float64   `json:"altitude"`
	State     string    `json:"state" gorm:"size:16"`
	Thrusting bool      `json:"thrusting"`
}

// Telemetry is the per-tick flight state handed to the recorder
type Telemetry struct {
	Frame     int64
	Time      time.Time
	Elapsed   time.Duration // Simulated time since launch
	Position  vmath.Vec3F
	Velocity  vmath.Vec3F
	Fuel      float64
	Altitude  float64
	State     string
	Thrusting bool
}
