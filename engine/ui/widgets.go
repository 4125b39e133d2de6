package ui

import (
	"image/color"

	"github.com/1siamBot/rts-screens/engine/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Rect is a screen rectangle in pixels
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inset shrinks r by d on every side
func (r Rect) Inset(d int) Rect {
	return Rect{r.X + d, r.Y + d, max(r.W-2*d, 0), max(r.H-2*d, 0)}
}

// Button is a clickable labelled rectangle
type Button struct {
	Rect
	Label    string
	Disabled bool
	Active   bool
	Hovered  bool
}

func NewButton(r Rect, label string) *Button {
	return &Button{Rect: r, Label: label}
}

// Update returns true when the button was clicked this frame
func (b *Button) Update(in *input.InputState) bool {
	b.Hovered = !b.Disabled && b.Contains(in.MouseX, in.MouseY)
	return b.Hovered && in.LeftJustPressed
}

func (b *Button) Draw(dst *ebiten.Image) {
	bg, fg := ColorBtn, ColorText
	switch {
	case b.Disabled:
		bg, fg = ColorBtnDis, ColorTextDim
	case b.Active:
		bg = ColorBtnAct
	case b.Hovered:
		bg = ColorBtnHov
	}
	x, y, w, h := float32(b.X), float32(b.Y), float32(b.W), float32(b.H)
	drawRoundedRect(dst, x, y, w, h, 6, bg)
	border := ColorBorder
	if b.Hovered {
		border = ColorAccent
	}
	drawRoundedRectStroke(dst, x, y, w, h, 6, border)
	DrawTextCentered(dst, b.Label, b.Rect, fg)
}

// Checkbox is a box with a label. It does not flip itself; the owner
// decides the new state so it can veto the change.
type Checkbox struct {
	Rect
	Label    string
	Checked  bool
	Disabled bool
	Hovered  bool
}

// Update returns true when an enabled checkbox was clicked
func (c *Checkbox) Update(in *input.InputState) bool {
	c.Hovered = c.Contains(in.MouseX, in.MouseY)
	return c.Hovered && !c.Disabled && in.LeftJustPressed
}

func (c *Checkbox) Draw(dst *ebiten.Image) {
	if c.Hovered {
		vector.DrawFilledRect(dst, float32(c.X), float32(c.Y), float32(c.W), float32(c.H), ColorBtnHov, false)
	}
	box := float32(c.H - 8)
	bx, by := float32(c.X+4), float32(c.Y+4)
	border := ColorBorder
	fg := ColorText
	if c.Disabled {
		border, fg = ColorTextDim, ColorTextDim
	}
	vector.StrokeRect(dst, bx, by, box, box, 1, border, false)
	if c.Checked {
		vector.DrawFilledRect(dst, bx+3, by+3, box-6, box-6, ColorAccent, false)
	}
	DrawText(dst, c.Label, c.X+c.H+4, c.Y+(c.H-LineHeight)/2, fg)
}

// ListBox is a scrolling single-selection list
type ListBox struct {
	Rect
	Items    []string
	Selected int
	Hovered  int
	Scroll   int
	RowH     int
	// Focused enables Up/Down/Enter navigation
	Focused bool
	// ItemColor overrides the text colour of a row when set
	ItemColor func(i int) color.Color
}

func NewListBox(r Rect) *ListBox {
	return &ListBox{Rect: r, Selected: -1, Hovered: -1, RowH: 20}
}

// SetItems replaces the rows and keeps the selection in range
func (l *ListBox) SetItems(items []string) {
	l.Items = items
	if l.Selected >= len(items) {
		l.Selected = len(items) - 1
	}
	l.clampScroll()
}

// Rows is how many rows fit in the box
func (l *ListBox) Rows() int {
	return max(1, (l.H-8)/l.RowH)
}

// RowAt returns the item index under x, y or -1
func (l *ListBox) RowAt(x, y int) int {
	if !l.Contains(x, y) || y < l.Y+4 {
		return -1
	}
	i := l.Scroll + (y-l.Y-4)/l.RowH
	if i >= len(l.Items) || i-l.Scroll >= l.Rows() {
		return -1
	}
	return i
}

// RowRect is the on-screen rectangle of visible row i
func (l *ListBox) RowRect(i int) Rect {
	return Rect{l.X + 4, l.Y + 4 + (i-l.Scroll)*l.RowH, l.W - 8, l.RowH}
}

// Update handles hover, scrolling and selection. It returns true when the
// selected row is activated: a click on the already selected row, or Enter.
func (l *ListBox) Update(in *input.InputState) bool {
	l.Hovered = l.RowAt(in.MouseX, in.MouseY)
	if l.Contains(in.MouseX, in.MouseY) {
		switch {
		case in.ScrollY > 0:
			l.Scroll--
		case in.ScrollY < 0:
			l.Scroll++
		}
	}
	activated := false
	if in.LeftJustPressed && l.Hovered >= 0 {
		if l.Hovered == l.Selected {
			activated = true
		}
		l.Selected = l.Hovered
	}
	if l.Focused && len(l.Items) > 0 {
		switch {
		case in.IsKeyJustPressed(ebiten.KeyDown):
			l.Selected = min(l.Selected+1, len(l.Items)-1)
			l.ensureVisible()
		case in.IsKeyJustPressed(ebiten.KeyUp):
			l.Selected = max(l.Selected-1, 0)
			l.ensureVisible()
		case in.IsKeyJustPressed(ebiten.KeyEnter):
			activated = l.Selected >= 0
		}
	}
	l.clampScroll()
	return activated
}

func (l *ListBox) ensureVisible() {
	if l.Selected < l.Scroll {
		l.Scroll = l.Selected
	}
	if l.Selected >= l.Scroll+l.Rows() {
		l.Scroll = l.Selected - l.Rows() + 1
	}
}

func (l *ListBox) clampScroll() {
	l.Scroll = min(l.Scroll, len(l.Items)-l.Rows())
	l.Scroll = max(l.Scroll, 0)
}

func (l *ListBox) Draw(dst *ebiten.Image) {
	vector.DrawFilledRect(dst, float32(l.X), float32(l.Y), float32(l.W), float32(l.H), ColorPanel, false)
	vector.StrokeRect(dst, float32(l.X), float32(l.Y), float32(l.W), float32(l.H), 1, ColorBorder, false)
	end := min(l.Scroll+l.Rows(), len(l.Items))
	for i := l.Scroll; i < end; i++ {
		r := l.RowRect(i)
		switch {
		case i == l.Selected:
			vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), ColorBtnAct, false)
		case i == l.Hovered:
			vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), ColorBtnHov, false)
		}
		var clr color.Color = ColorText
		if l.ItemColor != nil {
			clr = l.ItemColor(i)
		}
		DrawText(dst, l.Items[i], r.X+6, r.Y+(r.H-LineHeight)/2, clr)
	}
	if len(l.Items) > l.Rows() {
		// scrollbar
		track := float32(l.H - 8)
		thumb := track * float32(l.Rows()) / float32(len(l.Items))
		off := track * float32(l.Scroll) / float32(len(l.Items))
		vector.DrawFilledRect(dst, float32(l.X+l.W-6), float32(l.Y+4)+off, 3, thumb, ColorAccent, false)
	}
}

// TextField is a single-line text input
type TextField struct {
	Rect
	Text    string
	Max     int
	Focused bool
	frame   int
}

// Update focuses on click, edits while focused and returns true on Enter
func (f *TextField) Update(in *input.InputState) bool {
	f.frame++
	if in.LeftJustPressed {
		f.Focused = f.Contains(in.MouseX, in.MouseY)
	}
	if !f.Focused {
		return false
	}
	text := []rune(f.Text)
	for _, r := range in.Typed() {
		if r < ' ' || (f.Max > 0 && len(text) >= f.Max) {
			continue
		}
		text = append(text, r)
	}
	if in.IsKeyJustPressed(ebiten.KeyBackspace) && len(text) > 0 {
		text = text[:len(text)-1]
	}
	f.Text = string(text)
	return in.IsKeyJustPressed(ebiten.KeyEnter)
}

func (f *TextField) Draw(dst *ebiten.Image) {
	vector.DrawFilledRect(dst, float32(f.X), float32(f.Y), float32(f.W), float32(f.H), ColorBG, false)
	border := ColorBorder
	if f.Focused {
		border = ColorAccent
	}
	vector.StrokeRect(dst, float32(f.X), float32(f.Y), float32(f.W), float32(f.H), 1, border, false)
	s := f.Text
	if f.Focused && f.frame/30%2 == 0 {
		s += "_"
	}
	DrawText(dst, s, f.X+6, f.Y+(f.H-LineHeight)/2, ColorText)
}
