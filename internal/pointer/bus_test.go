package pointer

import (
	"testing"

	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestBusDispatchesInAttachOrder(t *testing.T) {
	b := NewBus()
	var got []string
	b.OnMove(func(geom.Point) { got = append(got, "move1") })
	b.OnMove(func(geom.Point) { got = append(got, "move2") })
	b.OnUp(func(geom.Point) { got = append(got, "up") })

	b.Move(geom.Point{X: 1})
	b.Up(geom.Point{X: 2})

	assert.Equal(t, []string{"move1", "move2", "up"}, got)
}

func TestBusCancelIsIdempotent(t *testing.T) {
	b := NewBus()
	calls := 0
	cancel := b.OnMove(func(geom.Point) { calls++ })
	keep := b.OnMove(func(geom.Point) {})
	defer keep()

	cancel()
	cancel()

	b.Move(geom.Point{})
	assert.Equal(t, 0, calls)
	moves, ups := b.Listeners()
	assert.Equal(t, 1, moves)
	assert.Equal(t, 0, ups)
}

func TestBusListenerMayDetachDuringDispatch(t *testing.T) {
	b := NewBus()
	var cancel func()
	calls := 0
	cancel = b.OnUp(func(geom.Point) {
		calls++
		cancel()
	})
	other := 0
	b.OnUp(func(geom.Point) { other++ })

	b.Up(geom.Point{})
	b.Up(geom.Point{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestBusPassesPoint(t *testing.T) {
	b := NewBus()
	var got geom.Point
	b.OnMove(func(p geom.Point) { got = p })
	b.Move(geom.Point{X: 3, Y: 4})
	assert.Equal(t, geom.Point{X: 3, Y: 4}, got)
}
