package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// DefaultHoldWindow covers the gap between terminal autorepeat events
const DefaultHoldWindow = 150 * time.Millisecond

// State tracks which actions are held
// Terminals report presses and autorepeats but never releases, so an action
// stays active for the hold window after its last press
type State struct {
	hold    time.Duration
	pressed [actionCount]time.Time
}

// NewState creates input state with the given hold window
func NewState(hold time.Duration) *State {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &State{hold: hold}
}

// Press records a press or autorepeat of an action
func (s *State) Press(a Action, now time.Time) {
	if a == ActionNone || a >= actionCount {
		return
	}
	s.pressed[a] = now
}

// Release drops an action immediately
func (s *State) Release(a Action) {
	if a < actionCount {
		s.pressed[a] = time.Time{}
	}
}

// ReleaseAll drops every held action
func (s *State) ReleaseAll() {
	s.pressed = [actionCount]time.Time{}
}

// Snapshot freezes the held actions as of now
func (s *State) Snapshot(now time.Time) Snapshot {
	var snap Snapshot
	for a := ActionNone + 1; a < actionCount; a++ {
		t := s.pressed[a]
		if !t.IsZero() && now.Sub(t) < s.hold {
			snap.active[a] = true
		}
	}
	return snap
}

// HandleKey routes a key event: actions are pressed, commands are returned
func (s *State) HandleKey(t *KeyTable, ev *tcell.EventKey, now time.Time) Command {
	entry, ok := t.Lookup(ev)
	if !ok {
		return CommandNone
	}
	if entry.Action != ActionNone {
		s.Press(entry.Action, now)
	}
	return entry.Command
}

// Snapshot is the immutable per-frame view of held actions
type Snapshot struct {
	active [actionCount]bool
}

// SnapshotOf builds a snapshot with the given actions active
func SnapshotOf(actions ...Action) Snapshot {
	var snap Snapshot
	for _, a := range actions {
		if a < actionCount {
			snap.active[a] = true
		}
	}
	return snap
}

// Active reports whether an action is held this frame
func (s Snapshot) Active(a Action) bool {
	return a < actionCount && s.active[a]
}

// Moving reports whether any movement action is held
func (s Snapshot) Moving() bool {
	return s.active[ActionLeft] || s.active[ActionRight] || s.active[ActionUp] || s.active[ActionDown]
}
