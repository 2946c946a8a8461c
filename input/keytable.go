package input

import "github.com/gdamore/tcell/v2"

// KeyEntry describes what a key does: a held control, a one-shot intent, or both
type KeyEntry struct {
	Control Control
	Intent  IntentType
	Arg     int
}

// KeyTable maps keys to entries
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, function keys)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable runes, matched case-insensitively
	Runes map[rune]KeyEntry
}

// Camera mode arguments carried by IntentCamera, matching camera.Mode order
const (
	CameraArgOrbit = iota
	CameraArgTop
	CameraArgFollow
	CameraArgFront
	CameraArgGround
)

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  {Intent: IntentQuit},
			tcell.KeyEscape: {Intent: IntentQuit},
			tcell.KeyUp:     {Control: ControlUp},
			tcell.KeyDown:   {Control: ControlDown},
			tcell.KeyLeft:   {Control: ControlTurnLeft},
			tcell.KeyRight:  {Control: ControlTurnRight},
			tcell.KeyF1:     {Intent: IntentCamera, Arg: CameraArgOrbit},
			tcell.KeyF2:     {Intent: IntentCamera, Arg: CameraArgTop},
			tcell.KeyF3:     {Intent: IntentCamera, Arg: CameraArgFollow},
			tcell.KeyF4:     {Intent: IntentCamera, Arg: CameraArgFront},
			tcell.KeyF5:     {Intent: IntentCamera, Arg: CameraArgGround},
		},

		Runes: map[rune]KeyEntry{
			' ': {Control: ControlUp, Intent: IntentLaunch},
			'w': {Control: ControlForward},
			's': {Control: ControlBack},
			'a': {Control: ControlLeft},
			'd': {Control: ControlRight},
			'r': {Intent: IntentReset},
			'o': {Intent: IntentToggleOctree},
			'n': {Intent: IntentToggleLeaves},
			'b': {Intent: IntentToggleContacts},
			'e': {Intent: IntentToggleSensor},
			'j': {Intent: IntentToggleHUD},
			'+': {Intent: IntentLevelUp},
			'=': {Intent: IntentLevelUp},
			'-': {Intent: IntentLevelDown},
			'z': {Intent: IntentOrbitLeft},
			'x': {Intent: IntentOrbitRight},
			']': {Intent: IntentZoomIn},
			'[': {Intent: IntentZoomOut},
			'p': {Intent: IntentScreenshot},
			'm': {Intent: IntentMute},
			'q': {Intent: IntentQuit},
		},
	}
}

// Lookup resolves a key event, ok is false for unbound keys
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (KeyEntry, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		e, ok := kt.Runes[r]
		return e, ok
	}
	e, ok := kt.SpecialKeys[ev.Key()]
	return e, ok
}
