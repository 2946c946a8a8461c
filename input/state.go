package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-lander/vmath"
)

// Snapshot is the input state applied by one simulation tick
type Snapshot struct {
	// Thrust is the summed unit directions of held movement controls
	Thrust vmath.Vec3F
	// Turn is -1, 0 or +1
	Turn    float64
	Intents []Intent
}

// Has reports whether the snapshot carries an intent of type t
func (s *Snapshot) Has(t IntentType) bool {
	for _, in := range s.Intents {
		if in.Type == t {
			return true
		}
	}
	return false
}

// Tracker turns terminal events into per-tick snapshots
// Terminals report key presses only, so a control stays held for holdWindow after its last press
// Not safe for concurrent use; events are fed from the loop that calls Snapshot
type Tracker struct {
	table      *KeyTable
	holdWindow time.Duration

	lastPress [controlCount]time.Time
	pending   []Intent
	// Mouse button state for edge detection of clicks
	buttons tcell.ButtonMask
}

func NewTracker(table *KeyTable, holdWindow time.Duration) *Tracker {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Tracker{
		table:      table,
		holdWindow: holdWindow,
		pending:    make([]Intent, 0, 8),
	}
}

// HandleEvent records a terminal event observed at now
func (t *Tracker) HandleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		entry, ok := t.table.Lookup(ev)
		if !ok {
			return
		}
		if entry.Control != ControlNone {
			t.Press(entry.Control, now)
		}
		if entry.Intent != IntentNone {
			t.pending = append(t.pending, Intent{Type: entry.Intent, Arg: entry.Arg})
		}

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		// Fire on press edge only; tcell repeats the mask while held or dragged
		if buttons&tcell.Button1 != 0 && t.buttons&tcell.Button1 == 0 {
			x, y := ev.Position()
			t.pending = append(t.pending, Intent{Type: IntentPick, X: x, Y: y})
		}
		t.buttons = buttons

	case *tcell.EventResize:
		t.pending = append(t.pending, Intent{Type: IntentResize})
	}
}

// Press marks control as held starting at now
func (t *Tracker) Press(c Control, now time.Time) {
	if c > ControlNone && c < controlCount {
		t.lastPress[c] = now
	}
}

// Release drops a held control immediately
func (t *Tracker) Release(c Control) {
	if c > ControlNone && c < controlCount {
		t.lastPress[c] = time.Time{}
	}
}

// Push queues a one-shot intent for the next snapshot
func (t *Tracker) Push(in Intent) {
	t.pending = append(t.pending, in)
}

// Held reports whether c was pressed within the hold window before now
func (t *Tracker) Held(c Control, now time.Time) bool {
	last := t.lastPress[c]
	if last.IsZero() {
		return false
	}
	return now.Sub(last) <= t.holdWindow
}

// Snapshot resolves held controls at now and drains pending intents
func (t *Tracker) Snapshot(now time.Time) Snapshot {
	var s Snapshot
	axis := func(neg, pos Control) float64 {
		v := 0.0
		if t.Held(pos, now) {
			v++
		}
		if t.Held(neg, now) {
			v--
		}
		return v
	}
	s.Thrust = vmath.Vec3F{
		X: axis(ControlLeft, ControlRight),
		Y: axis(ControlDown, ControlUp),
		Z: axis(ControlForward, ControlBack),
	}
	s.Turn = axis(ControlTurnLeft, ControlTurnRight)

	s.Intents = append(s.Intents, t.pending...)
	t.pending = t.pending[:0]
	return s
}
