package gesture

import (
	"testing"

	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/stretchr/testify/assert"
)

type recordingSurface struct {
	moves   []geom.Position
	resizes []geom.Size
}

func (s *recordingSurface) MoveTo(p geom.Position) { s.moves = append(s.moves, p) }
func (s *recordingSurface) ResizeTo(z geom.Size)   { s.resizes = append(s.resizes, z) }

var viewport = geom.FixedViewport(geom.Size{Width: 1000, Height: 800})

func TestDragFollowsPointerOffset(t *testing.T) {
	surface := &recordingSurface{}
	d := NewDrag(viewport, surface, nil)

	d.Begin(geom.Point{X: 150, Y: 110}, geom.Position{X: 100, Y: 100}, geom.Size{Width: 500, Height: 300})
	assert.True(t, d.Active())

	d.Continue(geom.Point{X: 250, Y: 210})
	assert.Equal(t, geom.Position{X: 200, Y: 200}, d.Position())
	assert.Equal(t, []geom.Position{{X: 200, Y: 200}}, surface.moves)

	pos, ok := d.End()
	assert.True(t, ok)
	assert.Equal(t, geom.Position{X: 200, Y: 200}, pos)
	assert.False(t, d.Active())
}

func TestDragClampsToViewport(t *testing.T) {
	size := geom.Size{Width: 500, Height: 300}
	tests := []struct {
		name string
		to   geom.Point
		want geom.Position
	}{
		{"inside", geom.Point{X: 300, Y: 300}, geom.Position{X: 300, Y: 300}},
		{"past left and top", geom.Point{X: -50, Y: -50}, geom.Position{X: 0, Y: 0}},
		{"past right and bottom", geom.Point{X: 900, Y: 700}, geom.Position{X: 500, Y: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDrag(viewport, nil, nil)
			d.Begin(geom.Point{}, geom.Position{}, size)
			d.Continue(tt.to)
			assert.Equal(t, tt.want, d.Position())
		})
	}
}

func TestDragWindowLargerThanViewportPinsToOrigin(t *testing.T) {
	d := NewDrag(viewport, nil, nil)
	d.Begin(geom.Point{}, geom.Position{}, geom.Size{Width: 1200, Height: 900})
	d.Continue(geom.Point{X: 40, Y: 40})
	assert.Equal(t, geom.Position{X: 0, Y: 0}, d.Position())
}

func TestDragForwardsRawPointerXToSnap(t *testing.T) {
	var xs []int
	d := NewDrag(viewport, nil, func(x int) { xs = append(xs, x) })

	d.Continue(geom.Point{X: 5}) // inactive
	d.Begin(geom.Point{X: 100, Y: 100}, geom.Position{X: 100, Y: 100}, geom.Size{Width: 500, Height: 300})
	d.Continue(geom.Point{X: -30, Y: 100})
	d.Continue(geom.Point{X: 1100, Y: 100})

	assert.Equal(t, []int{-30, 1100}, xs)
}

func TestDragContinueWhenInactive(t *testing.T) {
	surface := &recordingSurface{}
	d := NewDrag(viewport, surface, nil)
	d.Continue(geom.Point{X: 10, Y: 10})
	assert.Empty(t, surface.moves)

	_, ok := d.End()
	assert.False(t, ok)
}

func TestDragReadsViewportOnEveryMove(t *testing.T) {
	vp := geom.Size{Width: 1000, Height: 800}
	d := NewDrag(geom.ViewportFunc(func() geom.Size { return vp }), nil, nil)
	d.Begin(geom.Point{}, geom.Position{}, geom.Size{Width: 500, Height: 300})

	d.Continue(geom.Point{X: 900, Y: 0})
	assert.Equal(t, 500, d.Position().X)

	vp.Width = 700
	d.Continue(geom.Point{X: 900, Y: 0})
	assert.Equal(t, 200, d.Position().X)
}

func TestResizeByDelta(t *testing.T) {
	surface := &recordingSurface{}
	r := NewResize(viewport, surface, DefaultBounds())

	r.Begin(geom.Point{X: 600, Y: 400}, geom.Size{Width: 500, Height: 300})
	r.Continue(geom.Point{X: 650, Y: 420})

	assert.Equal(t, geom.Size{Width: 550, Height: 320}, r.Size())
	assert.Equal(t, []geom.Size{{Width: 550, Height: 320}}, surface.resizes)

	size, ok := r.End()
	assert.True(t, ok)
	assert.Equal(t, geom.Size{Width: 550, Height: 320}, size)
}

func TestResizeClamps(t *testing.T) {
	start := geom.Size{Width: 500, Height: 300}
	tests := []struct {
		name  string
		delta geom.Point
		want  geom.Size
	}{
		{"floor", geom.Point{X: -1000, Y: -1000}, geom.Size{Width: 300, Height: 42}},
		{"viewport ceiling", geom.Point{X: 2000, Y: 2000}, geom.Size{Width: 1000, Height: 800}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResize(viewport, nil, DefaultBounds())
			r.Begin(geom.Point{}, start)
			r.Continue(tt.delta)
			assert.Equal(t, tt.want, r.Size())
		})
	}
}

func TestResizeFloorWinsOverSmallViewport(t *testing.T) {
	tiny := geom.FixedViewport(geom.Size{Width: 200, Height: 30})
	r := NewResize(tiny, nil, DefaultBounds())
	r.Begin(geom.Point{}, geom.Size{Width: 500, Height: 300})
	r.Continue(geom.Point{X: 10, Y: 10})
	assert.Equal(t, geom.Size{Width: 300, Height: 42}, r.Size())
}

func TestResizeCustomBounds(t *testing.T) {
	r := NewResize(viewport, nil, Bounds{MinWidth: 100, MinHeight: 20})
	r.Begin(geom.Point{}, geom.Size{Width: 500, Height: 300})
	r.Continue(geom.Point{X: -450, Y: -290})
	assert.Equal(t, geom.Size{Width: 100, Height: 20}, r.Size())
}
