package engine

import (
	"context"
	"time"

	"github.com/lixenwraith/vi-lander/physics"
	"github.com/lixenwraith/vi-lander/spatial"
	"github.com/lixenwraith/vi-lander/telemetry"
	"github.com/lixenwraith/vi-lander/vmath"
)

// Contact is the result of one resolver pass
type Contact struct {
	Class     physics.ContactClass
	Impulse   vmath.Vec3F
	Magnitude float64 // Impulse along the contact normal
	Leaves    int     // Overlapping terrain leaves
}

// Resolver tests the lander box against terrain leaves and grades the contact impulse
type Resolver struct {
	tree    *spatial.Octree
	profile physics.ContactProfile
	metrics *telemetry.Metrics

	// Overlapping leaf boxes of the last pass, reused across ticks
	hits []spatial.AABB
}

func NewResolver(tree *spatial.Octree, profile physics.ContactProfile, metrics *telemetry.Metrics) *Resolver {
	if metrics == nil {
		metrics = telemetry.Noop()
	}
	return &Resolver{
		tree:    tree,
		profile: profile,
		metrics: metrics,
		hits:    make([]spatial.AABB, 0, 16),
	}
}

// Resolve runs one contact pass for ship
// An impulse is produced only while the ship overlaps terrain and is descending
func (r *Resolver) Resolve(ctx context.Context, ship *physics.Ship) Contact {
	start := time.Now()
	r.hits = r.tree.AppendOverlapping(r.hits[:0], ship.Bounds)
	r.metrics.BoxQuery(ctx, time.Since(start))

	c := Contact{Leaves: len(r.hits)}
	if len(r.hits) == 0 || ship.Velocity.Y >= 0 {
		return c
	}

	c.Impulse = physics.ContactImpulse(ship.Velocity, &r.profile)
	c.Magnitude = vmath.V3FDot(c.Impulse, r.profile.Normal)
	c.Class = physics.Classify(c.Magnitude, &r.profile)
	return c
}

// Hits returns the leaf boxes overlapped by the last pass, valid until the next Resolve
func (r *Resolver) Hits() []spatial.AABB {
	return r.hits
}

// Clear drops the last pass's hits
func (r *Resolver) Clear() {
	r.hits = r.hits[:0]
}

// Profile returns the contact thresholds in use
func (r *Resolver) Profile() physics.ContactProfile {
	return r.profile
}
