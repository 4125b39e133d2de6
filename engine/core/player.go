package core

import "time"

// Player represents a participant whose money is tracked in saves
type Player struct {
	ID    int
	Name  string
	Money int
	IsAI  bool
}

// PlayerManager manages all players in a game
type PlayerManager struct {
	Players []*Player
}

func NewPlayerManager() *PlayerManager {
	return &PlayerManager{}
}

func (pm *PlayerManager) AddPlayer(p *Player) {
	pm.Players = append(pm.Players, p)
}

func (pm *PlayerManager) GetPlayer(id int) *Player {
	for _, p := range pm.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Reset drops every player
func (pm *PlayerManager) Reset() {
	pm.Players = nil
}

// Session is the running campaign the screens read from and write to
type Session struct {
	CampaignID string
	Level      string
	Difficulty string
	Traits     []string
	Loop       *GameLoop
	Players    *PlayerManager
}

// NewSession creates an empty session around loop
func NewSession(loop *GameLoop) *Session {
	return &Session{
		Loop:    loop,
		Players: NewPlayerManager(),
	}
}

// Snapshot is the flat view of a session that gets persisted
type Snapshot struct {
	Level      string
	Difficulty string
	GameTime   time.Duration
	Players    []Player
}

// Snapshot copies the persisted parts of the session
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Level:      s.Level,
		Difficulty: s.Difficulty,
	}
	if s.Loop != nil {
		snap.GameTime = s.Loop.GameTime()
	}
	for _, p := range s.Players.Players {
		snap.Players = append(snap.Players, *p)
	}
	return snap
}

// Restore replaces the session state with a snapshot
func (s *Session) Restore(snap Snapshot) {
	s.Level = snap.Level
	s.Difficulty = snap.Difficulty
	if s.Loop != nil {
		s.Loop.SetGameTime(snap.GameTime)
	}
	s.Players.Reset()
	for i := range snap.Players {
		p := snap.Players[i]
		s.Players.AddPlayer(&p)
	}
}
