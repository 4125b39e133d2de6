package screens

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/1siamBot/rts-screens/engine/audio"
	"github.com/1siamBot/rts-screens/engine/core"
	"github.com/1siamBot/rts-screens/engine/input"
	"github.com/1siamBot/rts-screens/engine/savegame"
	"github.com/1siamBot/rts-screens/engine/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// SaveMode selects what the save/load screen does with the list
type SaveMode int

const (
	ModeLoad SaveMode = iota
	ModeSave
)

func (m SaveMode) String() string {
	if m == ModeSave {
		return "save"
	}
	return "load"
}

// pendingScan is one background listing. gen ties it to the refresh that
// started it so a late answer from an older scan is thrown away.
type pendingScan struct {
	gen    int
	ch     <-chan savegame.ScanResult
	cancel context.CancelFunc
}

// SaveLoadScreen lists the save directory, newest first
type SaveLoadScreen struct {
	env  *Env
	dir  string
	mode SaveMode
	log  *slog.Logger
	tick float64

	entries []savegame.Meta
	list    *ui.ListBox
	name    *ui.TextField
	scan    *pendingScan
	gen     int

	btnAction  *ui.Button
	btnDelete  *ui.Button
	btnRefresh *ui.Button
	btnBack    *ui.Button

	status    string
	statusBad bool

	// World returns the opaque world payload stored with a new save
	World func() []byte
	// OnLoad takes over a save's world payload. The session is restored
	// from the save only when it returns nil.
	OnLoad func(meta savegame.Meta, world []byte) error
}

func NewSaveLoadScreen(env *Env, dir string, mode SaveMode) *SaveLoadScreen {
	s := &SaveLoadScreen{env: env, dir: dir, mode: mode, log: env.logger("save_" + mode.String())}
	listW := env.Width/2 - 80
	listH := env.Height - 240
	s.list = ui.NewListBox(ui.Rect{X: 60, Y: 100, W: listW, H: listH})
	s.list.Focused = true
	s.name = &ui.TextField{Rect: ui.Rect{X: 60, Y: 110 + listH, W: listW, H: 26}, Max: 40}

	by := env.Height - 90
	bw, bh, gap := 140, 36, 10
	label := "LOAD"
	if mode == ModeSave {
		label = "SAVE"
	}
	s.btnAction = ui.NewButton(ui.Rect{X: 60, Y: by, W: bw, H: bh}, label)
	s.btnDelete = ui.NewButton(ui.Rect{X: 60 + (bw + gap), Y: by, W: bw, H: bh}, "DELETE")
	s.btnRefresh = ui.NewButton(ui.Rect{X: 60 + 2*(bw+gap), Y: by, W: bw, H: bh}, "REFRESH")
	s.btnBack = ui.NewButton(ui.Rect{X: env.Width - 60 - bw, Y: by, W: bw, H: bh}, "BACK")
	return s
}

func (s *SaveLoadScreen) Name() string { return "save_" + s.mode.String() }

func (s *SaveLoadScreen) OnEnter() {
	s.status = ""
	s.Refresh()
}

// OnExit drops any scan still running; its result is never looked at
func (s *SaveLoadScreen) OnExit() {
	s.stopScan()
}

// Refresh starts a new background listing of the save directory
func (s *SaveLoadScreen) Refresh() {
	s.stopScan()
	s.gen++
	ctx, cancel := context.WithCancel(context.Background())
	s.scan = &pendingScan{
		gen:    s.gen,
		ch:     savegame.ScanAsync(ctx, s.dir, s.log),
		cancel: cancel,
	}
}

func (s *SaveLoadScreen) stopScan() {
	if s.scan != nil {
		s.scan.cancel()
		s.scan = nil
	}
}

// Scanning reports whether a listing is in flight
func (s *SaveLoadScreen) Scanning() bool {
	return s.scan != nil
}

// Entries returns the current listing
func (s *SaveLoadScreen) Entries() []savegame.Meta {
	return s.entries
}

// Status returns the message line and whether it reports a failure
func (s *SaveLoadScreen) Status() (string, bool) {
	return s.status, s.statusBad
}

// Select highlights entry i
func (s *SaveLoadScreen) Select(i int) {
	if i >= 0 && i < len(s.entries) {
		s.list.Selected = i
		s.selected()
	}
}

// SetSaveName fills in the name field
func (s *SaveLoadScreen) SetSaveName(name string) {
	s.name.Text = name
}

func (s *SaveLoadScreen) pollScan() {
	if s.scan == nil {
		return
	}
	select {
	case res, ok := <-s.scan.ch:
		gen := s.scan.gen
		s.scan.cancel()
		s.scan = nil
		if !ok || gen != s.gen {
			return
		}
		if res.Err != nil {
			s.log.Error("listing saves failed", "dir", s.dir, "error", res.Err)
			s.setStatus("Could not list saves", true)
			return
		}
		s.setEntries(res.Entries)
	default:
	}
}

func (s *SaveLoadScreen) setEntries(entries []savegame.Meta) {
	s.entries = entries
	items := make([]string, len(entries))
	for i, m := range entries {
		items[i] = fmt.Sprintf("%s  %s", savegame.FormatSavedAt(m.SavedAt), displayName(m.Filename))
	}
	s.list.SetItems(items)
	if s.list.Selected < 0 && len(items) > 0 {
		s.list.Selected = 0
	}
}

func displayName(filename string) string {
	return strings.TrimSuffix(filename, savegame.Ext)
}

func (s *SaveLoadScreen) setStatus(msg string, bad bool) {
	s.status, s.statusBad = msg, bad
}

func (s *SaveLoadScreen) current() (savegame.Meta, bool) {
	i := s.list.Selected
	if i < 0 || i >= len(s.entries) {
		return savegame.Meta{}, false
	}
	return s.entries[i], true
}

func (s *SaveLoadScreen) Update(in *input.InputState) error {
	s.tick += frameDT
	s.pollScan()

	if in.IsKeyJustPressed(ebiten.KeyEscape) {
		s.env.Audio.PlayCue(audio.SndClick)
		s.env.pop()
		return nil
	}

	prev := s.list.Selected
	activated := false
	if s.mode == ModeSave {
		// Enter belongs to the name field while it has focus
		s.list.Focused = !s.name.Focused
		if s.name.Update(in) {
			s.Save()
			return nil
		}
	}
	if s.list.Update(in) {
		activated = true
	}
	if s.list.Selected != prev {
		s.selected()
	}

	_, has := s.current()
	s.btnDelete.Disabled = !has
	if s.mode == ModeLoad {
		s.btnAction.Disabled = !has
	}

	action := s.btnAction.Update(in)
	del := s.btnDelete.Update(in)
	refresh := s.btnRefresh.Update(in)
	back := s.btnBack.Update(in)

	switch {
	case activated || action:
		s.env.Audio.PlayCue(audio.SndClick)
		if s.mode == ModeSave {
			s.Save()
		} else {
			s.Load()
		}
	case del || (in.IsKeyJustPressed(ebiten.KeyDelete) && !s.name.Focused):
		s.Delete()
	case refresh:
		s.env.Audio.PlayCue(audio.SndClick)
		s.Refresh()
	case back:
		s.env.Audio.PlayCue(audio.SndClick)
		s.env.pop()
	}
	return nil
}

// selected copies the highlighted save's name into the name field so it
// can be overwritten
func (s *SaveLoadScreen) selected() {
	if m, ok := s.current(); ok && s.mode == ModeSave {
		s.name.Text = displayName(m.Filename)
	}
}

// Load restores the session from the highlighted save
func (s *SaveLoadScreen) Load() {
	m, ok := s.current()
	if !ok {
		return
	}
	world, err := savegame.ReadWorld(filepath.Join(s.dir, m.Filename))
	if err == nil && s.OnLoad != nil {
		err = s.OnLoad(m, world)
	}
	if err != nil {
		s.log.Error("loading save failed", "file", m.Filename, "error", err)
		s.setStatus("Could not load "+displayName(m.Filename), true)
		s.env.Audio.PlayCue(audio.SndDenied)
		return
	}
	if s.env.Session != nil {
		s.env.Session.Restore(m.Snapshot())
	}
	s.log.Info("save loaded", "file", m.Filename, "level", m.Level)
	s.env.emit(core.EvtSaveLoaded, m)
}

// Save writes the session under the name in the name field, or a
// generated one when it is empty
func (s *SaveLoadScreen) Save() {
	var meta savegame.Meta
	if s.env.Session != nil {
		meta = savegame.MetaFromSnapshot(s.env.Session.Snapshot())
	}
	var world []byte
	if s.World != nil {
		world = s.World()
	}
	filename, err := savegame.Write(s.dir, strings.TrimSpace(s.name.Text), meta, world)
	if err != nil {
		s.env.Audio.PlayCue(audio.SndDenied)
		if errors.Is(err, savegame.ErrInvalidName) {
			s.setStatus("Invalid save name", true)
			return
		}
		s.log.Error("writing save failed", "name", s.name.Text, "error", err)
		s.setStatus("Could not save", true)
		return
	}
	s.log.Info("game saved", "file", filename)
	s.env.emit(core.EvtSaveWritten, filename)
	s.name.Text = displayName(filename)
	s.setStatus("Saved "+displayName(filename), false)
	s.Refresh()
}

// Delete removes the highlighted save. Failure is reported but the screen
// stays usable.
func (s *SaveLoadScreen) Delete() {
	m, ok := s.current()
	if !ok {
		return
	}
	if err := savegame.Delete(s.dir, m.Filename); err != nil {
		s.log.Warn("deleting save failed", "file", m.Filename, "error", err)
		s.setStatus("Could not delete "+displayName(m.Filename), true)
		s.env.Audio.PlayCue(audio.SndDenied)
		return
	}
	s.log.Info("save deleted", "file", m.Filename)
	s.env.emit(core.EvtSaveDeleted, m.Filename)
	s.setStatus("Deleted "+displayName(m.Filename), false)
	s.Refresh()
}

func (s *SaveLoadScreen) Draw(screen *ebiten.Image) {
	drawBackground(screen, nil, s.env.Width, s.env.Height, s.tick)
	title := "LOAD GAME"
	if s.mode == ModeSave {
		title = "SAVE GAME"
	}
	ui.DrawPanel(screen, ui.Rect{X: 40, Y: 40, W: s.env.Width - 80, H: s.env.Height - 80}, title)

	s.list.Draw(screen)
	if s.scan != nil {
		ui.DrawText(screen, "Scanning...", s.list.X+8, s.list.Y+s.list.H-20, ui.ColorTextDim)
	} else if len(s.entries) == 0 {
		ui.DrawText(screen, "No saved games", s.list.X+8, s.list.Y+8, ui.ColorTextDim)
	}
	if s.mode == ModeSave {
		s.name.Draw(screen)
	}
	s.drawDetails(screen)

	for _, b := range []*ui.Button{s.btnAction, s.btnDelete, s.btnRefresh, s.btnBack} {
		b.Draw(screen)
	}
	if s.status != "" {
		clr := ui.ColorGreen
		if s.statusBad {
			clr = ui.ColorRed
		}
		ui.DrawText(screen, s.status, 60, s.env.Height-40-ui.LineHeight, clr)
	}
}

func (s *SaveLoadScreen) drawDetails(screen *ebiten.Image) {
	m, ok := s.current()
	if !ok {
		return
	}
	x := s.env.Width/2 + 20
	y := s.list.Y
	rows := [][2]string{
		{"Saved", savegame.FormatSavedAt(m.SavedAt)},
		{"Game time", savegame.FormatGameTime(m.GameTime)},
		{"Difficulty", m.Difficulty.Label()},
		{"Level", m.Level},
		{"Money", savegame.FormatMoney(m.Money())},
	}
	ui.DrawText(screen, displayName(m.Filename), x, y, ui.ColorGold)
	y += 2 * ui.LineHeight
	for _, r := range rows {
		ui.DrawText(screen, r[0], x, y, ui.ColorTextDim)
		ui.DrawText(screen, r[1], x+110, y, ui.ColorText)
		y += ui.LineHeight + 6
	}
}
