package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-lander/camera"
	"github.com/lixenwraith/vi-lander/effects"
	"github.com/lixenwraith/vi-lander/engine"
	"github.com/lixenwraith/vi-lander/event"
	"github.com/lixenwraith/vi-lander/parameter"
	"github.com/lixenwraith/vi-lander/vmath"
)

// Options are the display toggles driven by keyboard intents
type Options struct {
	Octree   bool // Bounded octree levels
	Leaves   bool // All octree leaves
	Contacts bool // Leaves overlapped by the lander
	Sensor   bool // Altitude ray
	HUD      bool
	Levels   int // Octree depth shown with Octree, 1..10
}

// DefaultOptions returns the startup display state
func DefaultOptions() Options {
	return Options{HUD: true, Levels: parameter.DebugLevelsDefault}
}

// AdjustLevels moves the octree depth slider by delta within bounds
func (o *Options) AdjustLevels(delta int) {
	o.Levels = min(max(o.Levels+delta, parameter.DebugLevelsMin), parameter.DebugLevelsMax)
}

// Frame is everything drawn in one frame
type Frame struct {
	Sim        *engine.Simulation
	Camera     camera.Camera
	CameraMode camera.Mode
	Effects    *effects.Manager
	FPS        float64
	Muted      bool
}

// Renderer composes the scene into a RenderBuffer and flushes it to the terminal
type Renderer struct {
	screen tcell.Screen
	buf    *RenderBuffer

	Options Options

	// Directory screenshots are written to
	ScreenshotDir string

	picked    vmath.Vec3F
	hasPicked bool
	status    string

	// Terrain height range for shading, computed once per mesh
	heightMin, heightMax float64
	shadeReady           bool
}

// NewRenderer creates a renderer sized to screen
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen:        screen,
		buf:           NewRenderBuffer(w, h),
		Options:       DefaultOptions(),
		ScreenshotDir: ".",
	}
}

// Resize follows the terminal size
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	if bw, bh := r.buf.Size(); bw != w || bh != h {
		r.buf.Resize(w, h)
	}
}

// Viewport returns the scene area, the bottom row is the status bar
func (r *Renderer) Viewport() camera.Viewport {
	w, h := r.buf.Size()
	return camera.NewViewport(w, max(h-1, 1))
}

// Buffer exposes the composited frame
func (r *Renderer) Buffer() *RenderBuffer {
	return r.buf
}

// SetPicked marks a terrain vertex
func (r *Renderer) SetPicked(p vmath.Vec3F) {
	r.picked = p
	r.hasPicked = true
}

// SetStatus shows msg in the status bar until replaced
func (r *Renderer) SetStatus(msg string) {
	r.status = msg
}

// Subscribe wires pick and screenshot events
func (r *Renderer) Subscribe(router *event.Router) {
	router.Subscribe(event.EventPick, func(ev event.GameEvent) {
		if p, ok := ev.Payload.(*event.PickPayload); ok {
			r.SetPicked(p.Position)
			r.SetStatus(formatPick(p))
		}
	})
	router.Subscribe(event.EventScreenshot, func(event.GameEvent) {
		path, err := r.Screenshot(r.ScreenshotDir)
		if err != nil {
			r.SetStatus("Screenshot failed: " + err.Error())
			return
		}
		r.SetStatus("Saved " + path)
	})
	router.Subscribe(event.EventReset, func(event.GameEvent) {
		r.hasPicked = false
	})
}

// Draw composes f into the buffer
func (r *Renderer) Draw(f *Frame) {
	r.buf.Clear()
	sim := f.Sim
	c := NewCanvas(r.buf, f.Camera, r.Viewport())

	r.drawTerrain(c, sim)
	c.Box(sim.Zone(), '.', RgbZone)

	if r.Options.Leaves {
		sim.Tree.DrawLeaves(c)
	} else if r.Options.Octree {
		sim.Tree.DrawBounded(c, r.Options.Levels)
	}
	if r.Options.Contacts {
		for _, box := range sim.ContactBoxes() {
			c.Box(box, '#', RgbContact)
		}
	}

	r.drawLander(c, sim)

	if r.Options.Sensor {
		if s := sim.Sensor(); s.Valid {
			c.Line(s.Origin, s.Hit.Position, '|', RgbSensor)
		}
	}
	if r.hasPicked {
		c.Point(r.picked, 'X', RgbPick)
	}
	if f.Effects != nil {
		r.drawParticles(c, f.Effects)
	}

	if r.Options.HUD {
		r.drawHUD(f)
	}
	r.drawBanner(sim)
	r.drawStatusBar(f)
}

// Show flushes the buffer to the terminal
func (r *Renderer) Show() {
	r.buf.FlushToScreen(r.screen)
	r.screen.Show()
}

func (r *Renderer) drawTerrain(c *Canvas, sim *engine.Simulation) {
	mesh := sim.Tree.Mesh()
	n := mesh.VertexCount()
	if n == 0 {
		return
	}
	if !r.shadeReady {
		box, _ := sim.Tree.Bounds()
		r.heightMin, r.heightMax = box.Min.Y, box.Max.Y
		r.shadeReady = true
	}
	span := r.heightMax - r.heightMin

	for i := 0; i < n; i++ {
		p := mesh.Vertex(i)
		progress := 0.5
		if span > 0 {
			progress = (p.Y - r.heightMin) / span
		}
		ch := '.'
		switch {
		case progress > 0.75:
			ch = '^'
		case progress > 0.5:
			ch = ':'
		case progress < 0.2:
			ch = '_'
		}
		c.Point(p, ch, HeightColor(progress))
	}
}

func (r *Renderer) drawLander(c *Canvas, sim *engine.Simulation) {
	ship := sim.Ship
	color := RgbLander
	if sim.State() == engine.StateExploded {
		color = RgbExplosion
	}
	c.Box(ship.Bounds, '.', RgbLanderBox)

	model := sim.Model()
	heading := ship.Rotation * degToRad
	for _, local := range model.Outline {
		p := vmath.V3FAdd(ship.Position, vmath.V3FRotateY(local, heading))
		c.Point(p, '#', color)
	}
	c.Point(ship.Position, '@', color)
}

func (r *Renderer) drawParticles(c *Canvas, fx *effects.Manager) {
	exhaust := fx.Exhaust.Particles()
	for i := range exhaust {
		p := &exhaust[i]
		c.Point(p.Position, '*', Fade(RgbExhaust, p.Life()))
	}
	explosion := fx.Explosion.Particles()
	for i := range explosion {
		p := &explosion[i]
		ch := '*'
		if p.Life() > 0.6 {
			ch = '@'
		}
		c.Point(p.Position, ch, Fade(RgbExplosion, p.Life()))
	}
}

const degToRad = math.Pi / 180
