package recorder

import (
	geom "github.com/peterstace/simplefeatures/geom"
)

// trackBuilder accumulates XYZM coordinates of a flight path
type trackBuilder struct {
	coords []float64
}

// Add appends a sample: ground position as X/Y, altitude as Z, elapsed seconds as M
func (b *trackBuilder) Add(t Telemetry) {
	b.coords = append(b.coords, t.Position.X, t.Position.Z, t.Position.Y, t.Elapsed.Seconds())
}

func (b *trackBuilder) Len() int {
	return len(b.coords) / 4
}

func (b *trackBuilder) Reset() {
	b.coords = b.coords[:0]
}

// LineString returns the track, ok is false with fewer than two samples
func (b *trackBuilder) LineString() (geom.LineString, bool) {
	if b.Len() < 2 {
		return geom.LineString{}, false
	}
	coords := make([]float64, len(b.coords))
	copy(coords, b.coords)
	seq := geom.NewSequence(coords, geom.DimXYZM)
	return geom.NewLineString(seq), true
}

// Summary returns the WKT track and its ground-plane length, empty for short tracks
func (b *trackBuilder) Summary() (wkt string, length float64) {
	ls, ok := b.LineString()
	if !ok {
		return "", 0
	}
	return ls.AsText(), ls.Length()
}
