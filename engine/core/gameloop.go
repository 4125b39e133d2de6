package core

import "time"

// GameState represents the overall simulation state
type GameState uint8

const (
	StateMenu GameState = iota
	StatePlaying
	StatePaused
	StateLoading
)

func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateLoading:
		return "loading"
	}
	return "unknown"
}

// Ticker is the simulation driven by the loop. The real world model lives
// outside the screens; anything that advances in fixed steps fits here.
type Ticker interface {
	Tick(dt float64)
}

// GameLoop manages the fixed-timestep game loop for deterministic simulation
type GameLoop struct {
	Sim       Ticker
	State     GameState
	TickRate  float64 // fixed ticks per second
	TickCount uint64

	accumulator float64
	lastTime    time.Time
	now         func() time.Time

	// pause reasons currently held, and the state to return to once all
	// of them are released
	pauses   map[string]struct{}
	resumeTo GameState
}

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(sim Ticker, tickRate float64) *GameLoop {
	return &GameLoop{
		Sim:      sim,
		TickRate: tickRate,
		now:      time.Now,
		lastTime: time.Now(),
		pauses:   make(map[string]struct{}),
	}
}

// Update should be called every render frame. It runs the simulation
// at fixed timestep. Returns the interpolation alpha for smooth rendering.
func (gl *GameLoop) Update() float64 {
	now := gl.now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	return gl.Step(frameTime)
}

// Step advances the loop by frameTime seconds of wall time
func (gl *GameLoop) Step(frameTime float64) float64 {
	// Cap frame time to avoid spiral of death
	if frameTime > 0.25 {
		frameTime = 0.25
	}

	dt := 1.0 / gl.TickRate
	gl.accumulator += frameTime

	for gl.accumulator >= dt {
		if gl.State == StatePlaying {
			if gl.Sim != nil {
				gl.Sim.Tick(dt)
			}
			gl.TickCount++
		}
		gl.accumulator -= dt
	}

	return gl.accumulator / dt
}

// Play starts or resumes the game
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.lastTime = gl.now()
}

// Pause pauses the game
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}

// PauseFor pauses the simulation on behalf of reason. Several reasons can
// hold the pause at once; the loop only runs again after all are released.
func (gl *GameLoop) PauseFor(reason string) {
	if _, held := gl.pauses[reason]; held {
		return
	}
	if len(gl.pauses) == 0 {
		gl.resumeTo = gl.State
		if gl.State == StatePlaying {
			gl.State = StatePaused
		}
	}
	gl.pauses[reason] = struct{}{}
}

// ResumeFrom releases reason. It returns true when this release restarted
// a simulation that was playing before the pause.
func (gl *GameLoop) ResumeFrom(reason string) bool {
	if _, held := gl.pauses[reason]; !held {
		return false
	}
	delete(gl.pauses, reason)
	if len(gl.pauses) > 0 {
		return false
	}
	if gl.resumeTo == StatePlaying && gl.State == StatePaused {
		gl.Play()
		return true
	}
	return false
}

// PausedFor reports whether reason currently holds a pause
func (gl *GameLoop) PausedFor(reason string) bool {
	_, held := gl.pauses[reason]
	return held
}

// CurrentTick returns the current simulation tick
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.TickCount
}

// GameTime is the in-game time elapsed, derived from the tick counter
func (gl *GameLoop) GameTime() time.Duration {
	return time.Duration(float64(gl.TickCount) / gl.TickRate * float64(time.Second))
}

// SetGameTime moves the tick counter to match d, used after loading a save
func (gl *GameLoop) SetGameTime(d time.Duration) {
	d = max(d, 0)
	gl.TickCount = uint64(d.Seconds() * gl.TickRate)
	gl.accumulator = 0
}
