package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState tracks mouse and keyboard state per frame. Screens only read
// this snapshot, so tests can drive them by filling the fields directly.
type InputState struct {
	// Mouse
	MouseX, MouseY    int
	MouseDX, MouseDY  int // delta since last frame
	prevMouseX        int
	prevMouseY        int
	LeftPressed       bool
	RightPressed      bool
	LeftJustPressed   bool
	RightJustPressed  bool
	LeftJustReleased  bool
	RightJustReleased bool
	ScrollY           float64

	// Drag
	DragStartX, DragStartY int
	Dragging               bool
	DragThreshold          int

	// Keyboard
	KeysPressed     map[ebiten.Key]bool
	KeysJustPressed map[ebiten.Key]bool
	Runes           []rune // characters typed this frame

	keyBuf []ebiten.Key
}

func NewInputState() *InputState {
	return &InputState{
		DragThreshold:   5,
		KeysPressed:     make(map[ebiten.Key]bool),
		KeysJustPressed: make(map[ebiten.Key]bool),
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	// Mouse position
	s.prevMouseX = s.MouseX
	s.prevMouseY = s.MouseY
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.MouseDX = s.MouseX - s.prevMouseX
	s.MouseDY = s.MouseY - s.prevMouseY

	// Mouse buttons
	s.LeftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.RightPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.RightJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	s.LeftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	s.RightJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight)

	// Scroll
	_, s.ScrollY = ebiten.Wheel()

	s.updateDrag()

	// Keys
	clear(s.KeysPressed)
	clear(s.KeysJustPressed)
	s.keyBuf = inpututil.AppendPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.KeysPressed[k] = true
	}
	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.KeysJustPressed[k] = true
	}
	s.Runes = ebiten.AppendInputChars(s.Runes[:0])
}

func (s *InputState) updateDrag() {
	if s.LeftJustPressed {
		s.DragStartX = s.MouseX
		s.DragStartY = s.MouseY
		s.Dragging = false
	}
	if s.LeftPressed && !s.Dragging {
		dx := s.MouseX - s.DragStartX
		dy := s.MouseY - s.DragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.Dragging = true
		}
	}
	if !s.LeftPressed {
		s.Dragging = false
	}
}

// IsKeyJustPressed returns true if key was just pressed this frame
func (s *InputState) IsKeyJustPressed(key ebiten.Key) bool {
	return s.KeysJustPressed[key]
}

// IsKeyPressed returns true while key is held
func (s *InputState) IsKeyPressed(key ebiten.Key) bool {
	return s.KeysPressed[key]
}

// Press marks key as pressed this frame. Used by tests and replays.
func (s *InputState) Press(key ebiten.Key) {
	s.KeysPressed[key] = true
	s.KeysJustPressed[key] = true
}

// Click places a left click at x, y for this frame
func (s *InputState) Click(x, y int) {
	s.MouseX, s.MouseY = x, y
	s.LeftJustPressed = true
	s.LeftPressed = true
}

// EndFrame clears the one-frame flags so the snapshot can be reused
func (s *InputState) EndFrame() {
	s.LeftJustPressed = false
	s.RightJustPressed = false
	s.LeftJustReleased = false
	s.RightJustReleased = false
	s.ScrollY = 0
	clear(s.KeysJustPressed)
	s.Runes = s.Runes[:0]
}

// DragRect returns the selection rectangle if dragging
func (s *InputState) DragRect() (x1, y1, x2, y2 int, active bool) {
	if !s.Dragging {
		return 0, 0, 0, 0, false
	}
	return s.DragStartX, s.DragStartY, s.MouseX, s.MouseY, true
}

// Typed returns the runes entered this frame
func (s *InputState) Typed() []rune {
	return s.Runes
}
