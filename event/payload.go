package event

import "github.com/lixenwraith/vi-lander/vmath"

// TouchdownPayload describes the contact that ended a flight
type TouchdownPayload struct {
	Impulse  float64
	Position vmath.Vec3F
	Velocity vmath.Vec3F
	InZone   bool
	Fuel     float64
}

// ContactPayload describes one tick of terrain contact
type ContactPayload struct {
	Impulse float64
	Leaves  int
}

// PickPayload is a terrain vertex hit by a pick ray
type PickPayload struct {
	Point    int
	Position vmath.Vec3F
	Distance float64
}
