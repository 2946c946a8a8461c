package input

// IntentType discriminates one-shot actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit   // q, Esc, Ctrl+C
	IntentResize // Terminal resize event
	IntentMute   // m

	// Flight
	IntentLaunch // Space in Standby
	IntentReset  // r after touchdown

	// Debug display
	IntentToggleOctree   // o
	IntentToggleLeaves   // n
	IntentToggleContacts // b
	IntentToggleSensor   // e
	IntentToggleHUD      // j
	IntentLevelUp        // +
	IntentLevelDown      // -

	// Camera
	IntentCamera     // F1-F5, Arg = camera mode
	IntentOrbitLeft  // z
	IntentOrbitRight // x
	IntentZoomIn     // ]
	IntentZoomOut    // [

	// Capture
	IntentScreenshot // p
	IntentPick       // Mouse click, X/Y = cell
)

var intentNames = [...]string{
	IntentNone:           "none",
	IntentQuit:           "quit",
	IntentResize:         "resize",
	IntentMute:           "mute",
	IntentLaunch:         "launch",
	IntentReset:          "reset",
	IntentToggleOctree:   "toggle_octree",
	IntentToggleLeaves:   "toggle_leaves",
	IntentToggleContacts: "toggle_contacts",
	IntentToggleSensor:   "toggle_sensor",
	IntentToggleHUD:      "toggle_hud",
	IntentLevelUp:        "level_up",
	IntentLevelDown:      "level_down",
	IntentCamera:         "camera",
	IntentOrbitLeft:      "orbit_left",
	IntentOrbitRight:     "orbit_right",
	IntentZoomIn:         "zoom_in",
	IntentZoomOut:        "zoom_out",
	IntentScreenshot:     "screenshot",
	IntentPick:           "pick",
}

func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is a resolved one-shot action
type Intent struct {
	Type IntentType
	Arg  int
	X, Y int
}

// Control is a held flight input
type Control uint8

const (
	ControlNone Control = iota
	ControlUp           // Space, Up
	ControlDown         // Down
	ControlForward      // w, -Z
	ControlBack         // s, +Z
	ControlLeft         // a, -X
	ControlRight        // d, +X
	ControlTurnLeft     // Left
	ControlTurnRight    // Right
	controlCount
)
