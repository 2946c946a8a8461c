package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-lander/engine"
	"github.com/lixenwraith/vi-lander/event"
	"github.com/lixenwraith/vi-lander/vmath"
)

const (
	standbyMessage = "Press SPACE to launch"
	hudX           = 1
	hudY           = 0
)

type hudRow struct {
	label string
	value string
	color RGB
}

// drawHUD renders the telemetry block in the top-left corner
func (r *Renderer) drawHUD(f *Frame) {
	sim := f.Sim
	ship := sim.Ship
	sensor := sim.Sensor()

	altitude := "----"
	if sensor.Valid {
		altitude = fmt.Sprintf("%7.2f", sensor.Altitude)
	}

	fuelColor := RgbHudText
	if ship.Fuel <= ship.Spawn().Fuel*0.2 {
		fuelColor = RgbHudWarn
	}

	rows := []hudRow{
		{"ALT", altitude, RgbHudText},
		{"VEL", fmt.Sprintf("%6.2f %6.2f %6.2f", ship.Velocity.X, ship.Velocity.Y, ship.Velocity.Z), RgbHudText},
		{"SPD", fmt.Sprintf("%7.2f", vmath.V3FMag(ship.Velocity)), RgbHudText},
		{"HDG", fmt.Sprintf("%7.1f", ship.Rotation), RgbHudText},
		{"FUEL", fmt.Sprintf("%7.1f", ship.Fuel), fuelColor},
		{"STATE", sim.StateName(), RgbHudText},
		{"ZONE", zoneLabel(sim.InZone()), RgbHudText},
		{"CAM", f.CameraMode.String(), RgbHudText},
		{"FPS", fmt.Sprintf("%5.1f", f.FPS), RgbHudText},
	}
	if r.Options.Octree || r.Options.Leaves {
		rows = append(rows, hudRow{"TREE", fmt.Sprintf("lv %d  %d leaves", r.Options.Levels, sim.Tree.LeafCount()), RgbHudText})
	}

	for i, row := range rows {
		y := hudY + i
		n := r.buf.Text(hudX, y, fmt.Sprintf("%-6s", row.label), RgbHudLabel, RGBBlack, tcell.AttrNone)
		r.buf.Text(hudX+n, y, row.value, row.color, RGBBlack, tcell.AttrBold)
	}
}

func zoneLabel(in bool) string {
	if in {
		return "inside"
	}
	return "outside"
}

// drawBanner centres the standby or game-over message
func (r *Renderer) drawBanner(sim *engine.Simulation) {
	vp := r.Viewport()
	switch sim.State() {
	case engine.StateStandby:
		r.centered(vp.Height/2, standbyMessage, RgbBannerPlain)
	case engine.StateLanded, engine.StateExploded:
		o := sim.Outcome()
		color := RgbBannerLose
		if o.Won() {
			color = RgbBannerWin
		}
		r.centered(vp.Height/2-1, o.Message(), color)
		r.centered(vp.Height/2+1, engine.RetryMessage, RgbBannerPlain)
	}
}

func (r *Renderer) centered(y int, s string, fg RGB) {
	w, _ := r.buf.Size()
	x := (w - len([]rune(s))) / 2
	r.buf.Text(max(x, 0), y, s, fg, RGBBlack, tcell.AttrBold)
}

// drawStatusBar renders the last status message and mute state on the bottom row
func (r *Renderer) drawStatusBar(f *Frame) {
	w, h := r.buf.Size()
	if h < 2 {
		return
	}
	y := h - 1
	r.buf.FillRow(y, RgbStatusBg)

	right := fmt.Sprintf(" frame %d ", f.Sim.Frame())
	if f.Muted {
		right = " muted" + right
	}
	r.buf.Text(0, y, " "+r.status, RgbStatusText, RgbStatusBg, tcell.AttrNone)
	r.buf.Text(max(w-len(right), 0), y, right, RgbStatusText, RgbStatusBg, tcell.AttrNone)
}

func formatPick(p *event.PickPayload) string {
	return fmt.Sprintf("Picked vertex %d at (%.2f, %.2f, %.2f)", p.Point, p.Position.X, p.Position.Y, p.Position.Z)
}
