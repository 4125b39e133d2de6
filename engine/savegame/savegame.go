// Package savegame reads and writes the XML save files listed by the
// save/load screen.
package savegame

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/1siamBot/rts-screens/engine/core"
)

const (
	// Ext is the extension of save files
	Ext           = ".xml"
	formatVersion = 1
	maxNameLen    = 64
)

var ErrInvalidName = errors.New("invalid save name")

// Difficulty of the saved campaign
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

var difficultyNames = []string{"easy", "normal", "hard"}

func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return "unknown"
	}
	return difficultyNames[d]
}

// Label is the capitalised name shown in the UI
func (d Difficulty) Label() string {
	s := d.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseDifficulty accepts the names written by String, case-insensitively
func ParseDifficulty(s string) (Difficulty, error) {
	for i, name := range difficultyNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Difficulty(i), nil
		}
	}
	return Normal, fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// PlayerMoney is one player's bank in a save
type PlayerMoney struct {
	ID    int    `xml:"id,attr"`
	Name  string `xml:"name,attr,omitempty"`
	Money int    `xml:"money,attr"`
}

// Meta is the listing data of a save file
type Meta struct {
	Filename   string
	SavedAt    time.Time
	GameTime   time.Duration
	Difficulty Difficulty
	Level      string
	Players    []PlayerMoney
}

// Money returns the local player's money, the first player in the file
func (m Meta) Money() int {
	if len(m.Players) == 0 {
		return 0
	}
	return m.Players[0].Money
}

// MetaFromSnapshot builds the metadata to write for a running session
func MetaFromSnapshot(snap core.Snapshot) Meta {
	diff, err := ParseDifficulty(snap.Difficulty)
	if err != nil {
		diff = Normal
	}
	m := Meta{
		GameTime:   snap.GameTime,
		Difficulty: diff,
		Level:      snap.Level,
	}
	for _, p := range snap.Players {
		m.Players = append(m.Players, PlayerMoney{ID: p.ID, Name: p.Name, Money: p.Money})
	}
	return m
}

// Snapshot converts the metadata back into session state
func (m Meta) Snapshot() core.Snapshot {
	snap := core.Snapshot{
		Level:      m.Level,
		Difficulty: m.Difficulty.String(),
		GameTime:   m.GameTime,
	}
	for _, p := range m.Players {
		snap.Players = append(snap.Players, core.Player{ID: p.ID, Name: p.Name, Money: p.Money})
	}
	return snap
}

type xmlHeader struct {
	XMLName    xml.Name      `xml:"savegame"`
	Version    int           `xml:"version,attr"`
	Time       string        `xml:"time"`
	GameTime   float64       `xml:"gametime"`
	Difficulty *Difficulty   `xml:"difficulty"`
	Level      string        `xml:"level"`
	Players    []PlayerMoney `xml:"players>player"`
}

type xmlSave struct {
	XMLName    xml.Name      `xml:"savegame"`
	Version    int           `xml:"version,attr"`
	Time       string        `xml:"time"`
	GameTime   float64       `xml:"gametime"`
	Difficulty Difficulty    `xml:"difficulty"`
	Level      string        `xml:"level"`
	Players    []PlayerMoney `xml:"players>player"`
	World      xmlWorld      `xml:"world"`
}

type xmlWorld struct {
	Inner []byte `xml:",innerxml"`
}

// ParseMeta reads the listing fields of a save. The world payload is
// skipped.
func ParseMeta(r io.Reader, filename string) (Meta, error) {
	var h xmlHeader
	if err := xml.NewDecoder(r).Decode(&h); err != nil {
		return Meta{}, fmt.Errorf("decode %s: %w", filename, err)
	}
	if h.Version > formatVersion {
		return Meta{}, fmt.Errorf("%s: unsupported save version %d", filename, h.Version)
	}
	savedAt, err := time.Parse(time.RFC3339, strings.TrimSpace(h.Time))
	if err != nil {
		return Meta{}, fmt.Errorf("%s: bad time: %w", filename, err)
	}
	gameTime, err := parseGameTime(h.GameTime)
	if err != nil {
		return Meta{}, fmt.Errorf("%s: %w", filename, err)
	}
	diff := Normal
	if h.Difficulty != nil {
		diff = *h.Difficulty
	}
	return Meta{
		Filename:   filename,
		SavedAt:    savedAt,
		GameTime:   gameTime,
		Difficulty: diff,
		Level:      h.Level,
		Players:    h.Players,
	}, nil
}

// maxGameSeconds is the longest game time a time.Duration can hold
const maxGameSeconds = float64(math.MaxInt64) / float64(time.Second)

func parseGameTime(secs float64) (time.Duration, error) {
	switch {
	case math.IsNaN(secs) || math.IsInf(secs, 0):
		return 0, fmt.Errorf("game time %v is not a number of seconds", secs)
	case secs < 0:
		return 0, errors.New("negative game time")
	case secs >= maxGameSeconds:
		return 0, fmt.Errorf("game time %v out of range", secs)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// ReadMeta parses the save at path
func ReadMeta(path string) (Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return Meta{}, err
	}
	defer f.Close()
	return ParseMeta(f, filepath.Base(path))
}

// ReadWorld returns the opaque world payload of a save
func ReadWorld(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s xmlSave
	if err := xml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return s.World.Inner, nil
}

// ValidateName checks a user supplied save name
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case len(trimmed) > maxNameLen:
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidName, maxNameLen)
	case strings.ContainsAny(trimmed, `/\:`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.HasPrefix(trimmed, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	}
	return nil
}

// FileName turns a save name into its file name. An empty name gets a
// generated one.
func FileName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "save-" + uuid.NewString()[:8]
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if !strings.EqualFold(filepath.Ext(name), Ext) {
		name += Ext
	}
	return name, nil
}

// Write stores a save in dir and returns its file name. The file is
// written to a temporary name first so a crash never leaves half a save
// in the listing.
func Write(dir, name string, meta Meta, world []byte) (string, error) {
	filename, err := FileName(name)
	if err != nil {
		return "", err
	}
	if meta.SavedAt.IsZero() {
		meta.SavedAt = time.Now()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	doc := xmlSave{
		Version:    formatVersion,
		Time:       meta.SavedAt.UTC().Format(time.RFC3339),
		GameTime:   meta.GameTime.Seconds(),
		Difficulty: meta.Difficulty,
		Level:      meta.Level,
		Players:    meta.Players,
		World:      xmlWorld{Inner: world},
	}

	tmp, err := os.CreateTemp(dir, ".save-*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.WriteString(tmp, xml.Header); err != nil {
		tmp.Close()
		return "", err
	}
	enc := xml.NewEncoder(tmp)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encode save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, filename)); err != nil {
		return "", err
	}
	return filename, nil
}

// Delete removes a save from dir
func Delete(dir, filename string) error {
	if err := ValidateName(filename); err != nil {
		return err
	}
	return os.Remove(filepath.Join(dir, filename))
}
