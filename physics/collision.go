package physics

import (
	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/vmath"
)

// ContactClass is the severity of a terrain contact
type ContactClass uint8

const (
	// ContactNone means no impulse was produced
	ContactNone ContactClass = iota
	// ContactSoft is a landing: 0 < impulse < LandingMax
	ContactSoft
	// ContactFirm sits between the landing and explosion thresholds; the lander bounces
	ContactFirm
	// ContactHard is destructive: impulse > ExplosionMin
	ContactHard
)

func (c ContactClass) String() string {
	switch c {
	case ContactSoft:
		return "soft"
	case ContactFirm:
		return "firm"
	case ContactHard:
		return "hard"
	default:
		return "none"
	}
}

// ContactProfile defines contact resolution parameters
// Profiles are typically pre-defined as package variables for zero allocation
type ContactProfile struct {
	Stiffness    float64     // k in impulse = k * (-v·n) * n
	LandingMax   float64     // Exclusive upper bound of a soft contact
	ExplosionMin float64     // Exclusive lower bound of a hard contact
	Normal       vmath.Vec3F // Unit ground normal
}

// GroundContact is the lander-to-terrain profile
var GroundContact = ContactProfile{
	Stiffness:    parameter.ImpulseStiffness,
	LandingMax:   parameter.LandingImpulseMax,
	ExplosionMin: parameter.ExplosionImpulseMin,
	Normal:       parameter.ContactNormal,
}

// ContactImpulse returns k * (-v·n) * n for a body moving with velocity v
func ContactImpulse(v vmath.Vec3F, p *ContactProfile) vmath.Vec3F {
	return vmath.V3FScale(p.Normal, p.Stiffness*-vmath.V3FDot(v, p.Normal))
}

// Classify grades the magnitude of an impulse along the normal
func Classify(magnitude float64, p *ContactProfile) ContactClass {
	switch {
	case magnitude <= 0:
		return ContactNone
	case magnitude < p.LandingMax:
		return ContactSoft
	case magnitude > p.ExplosionMin:
		return ContactHard
	default:
		return ContactFirm
	}
}
