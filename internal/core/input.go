package core

// Action is a semantic input, independent of the physical key.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionJump           // Space: jump, flap, launch, hard drop, reveal
	ActionFlag           // F: secondary action (flag a mine)
	ActionConfirm        // Enter
	ActionBack           // Esc, B
	ActionRestart        // R
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionJump:    "Jump",
	ActionFlag:    "Flag",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "Unknown"
}

// PointerButton identifies a mouse button.
type PointerButton int

const (
	PointerPrimary PointerButton = iota
	PointerSecondary
)

// Pointer is a click at screen coordinates.
type Pointer struct {
	X, Y   int
	Button PointerButton
}

// InputFrame is the input sampled for one frame.
//
// Actions holds keys pressed since the previous frame. Held holds keys that
// are still considered down; terminals report no key release, so the
// session layer keeps a key held for a short window after its last press.
type InputFrame struct {
	Actions map[Action]bool
	Held    map[Action]bool
	Clicks  []Pointer
}

// NewInputFrame creates an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks a as pressed this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Hold marks a as held this frame.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Click appends a pointer event.
func (f *InputFrame) Click(p Pointer) {
	f.Clicks = append(f.Clicks, p)
}

// Has reports whether a was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// IsHeld reports whether a was pressed this frame or is still held.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Actions[a] || f.Held[a]
}

// Clear empties the frame for reuse.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.Held)
	f.Clicks = f.Clicks[:0]
}

// Clone returns a deep copy.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Actions {
		c.Actions[k] = v
	}
	for k, v := range f.Held {
		c.Held[k] = v
	}
	c.Clicks = append([]Pointer(nil), f.Clicks...)
	return c
}
