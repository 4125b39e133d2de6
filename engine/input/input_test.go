package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func TestPressAndEndFrame(t *testing.T) {
	s := NewInputState()
	s.Press(ebiten.KeyEnter)
	s.Runes = append(s.Runes, 'a')
	s.Click(10, 20)

	assert.True(t, s.IsKeyJustPressed(ebiten.KeyEnter))
	assert.True(t, s.IsKeyPressed(ebiten.KeyEnter))
	assert.Equal(t, []rune{'a'}, s.Typed())
	assert.Equal(t, 10, s.MouseX)

	s.EndFrame()
	assert.False(t, s.IsKeyJustPressed(ebiten.KeyEnter))
	assert.True(t, s.IsKeyPressed(ebiten.KeyEnter), "held keys survive the frame")
	assert.False(t, s.LeftJustPressed)
	assert.Empty(t, s.Typed())
}

func TestDragStartsPastThreshold(t *testing.T) {
	s := NewInputState()
	s.Click(100, 100)
	s.updateDrag()
	_, _, _, _, active := s.DragRect()
	assert.False(t, active)

	s.LeftJustPressed = false
	s.MouseX, s.MouseY = 103, 103
	s.updateDrag()
	assert.False(t, s.Dragging, "inside threshold")

	s.MouseX, s.MouseY = 120, 110
	s.updateDrag()
	x1, y1, x2, y2, active := s.DragRect()
	assert.True(t, active)
	assert.Equal(t, [4]int{100, 100, 120, 110}, [4]int{x1, y1, x2, y2})

	s.LeftPressed = false
	s.updateDrag()
	assert.False(t, s.Dragging)
}
