package model

import "time"

// HuntID uniquely identifies a hunt session
type HuntID string

// HuntPhase represents the current phase of a hunt session
type HuntPhase string

const (
	HuntPhaseRoomActive HuntPhase = "room_active" // Hunting objects in the current room
	HuntPhaseDoor       HuntPhase = "door_transition"
	HuntPhaseEnded      HuntPhase = "ended"
)

// Vec3 is a point or Euler rotation in scene space
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Room is a static scene description. Objects is the required discovery
// sequence: the engine only ever accepts the object at the current cursor.
// FakeObjects are decoys; clicking one always penalizes and never advances
// the cursor. DoorPosition is nil for the terminal room.
type Room struct {
	Name         string
	Background   string
	Objects      []string
	FakeObjects  []string
	DoorPosition *Vec3
	DoorRotation *Vec3
}

// HasFake reports whether name is one of the room's decoys
func (r *Room) HasFake(name string) bool {
	for _, f := range r.FakeObjects {
		if f == name {
			return true
		}
	}
	return false
}

// SceneItem is the static placement of a nameable item: a textured plane
// of Width x Height scene units positioned in the 360-degree scene.
type SceneItem struct {
	Name     string
	Image    string
	Width    float64
	Height   float64
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// Camera is the per-session view orientation in degrees
type Camera struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// HuntSession is the runtime state of one player's hunt. All countdowns are
// deadlines evaluated against the clock on each operation; RoomDeadline is
// the active room's expiry and TransitionDeadline the forced end of a door
// transition.
type HuntSession struct {
	ID       HuntID
	UserID   UserID
	DeviceID string
	Phase    HuntPhase

	RoomIndex   int
	TargetIndex int
	Clue        string

	Score      int
	RoomScores []int

	Camera Camera

	// Set of object names already found and hidden this run, plus the
	// in-flight found animation (object name -> animation end time).
	Found     map[string]bool
	Animating map[string]time.Time

	// Transient decoy message; Clue reverts when the deadline passes
	FakeMessageUntil time.Time

	StartedAt          time.Time
	RoomDeadline       time.Time
	TransitionDeadline time.Time
	TimedOut           bool // last room ended by countdown rather than completion

	JumpscareAt    time.Time
	JumpscareFired bool

	UpdatedAt time.Time
}

// HuntProgress is the persisted room-unlock high-water-mark, keyed by an
// opaque device ID. It is deliberately independent of User.Stage: the two
// progress trackers are never reconciled.
type HuntProgress struct {
	DeviceID      string
	RoomsUnlocked int
	UpdatedAt     time.Time
}

// HuntSummary is the frozen result of a finished hunt
type HuntSummary struct {
	FinalScore int
	RoomScores []int
	RoomNames  []string
	NextRoute  string
	RoundToken string
}

// ClickVerdict classifies the outcome of a single click
type ClickVerdict string

const (
	ClickVerdictFound   ClickVerdict = "found"
	ClickVerdictFake    ClickVerdict = "fake"
	ClickVerdictMiss    ClickVerdict = "miss"
	ClickVerdictDrag    ClickVerdict = "drag"    // pointer moved past the drag threshold: camera pan, no game logic
	ClickVerdictIgnored ClickVerdict = "ignored" // session not in an interactive phase
)
