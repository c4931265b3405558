// Package pointer fans host pointer events out to gesture listeners.
package pointer

import (
	"sync"

	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
)

type listener struct {
	id int
	fn func(geom.Point)
}

// Bus delivers pointer moves and releases to every attached listener, in
// attach order. Listeners run outside the bus lock and may detach themselves.
type Bus struct {
	mu    sync.Mutex
	moves []listener
	ups   []listener
	next  int
}

// NewBus returns an empty bus.
func NewBus() *Bus { return &Bus{} }

// OnMove attaches fn to pointer moves. The returned func detaches it and may
// be called more than once.
func (b *Bus) OnMove(fn func(geom.Point)) (cancel func()) {
	return b.attach(&b.moves, fn)
}

// OnUp attaches fn to pointer releases.
func (b *Bus) OnUp(fn func(geom.Point)) (cancel func()) {
	return b.attach(&b.ups, fn)
}

func (b *Bus) attach(list *[]listener, fn func(geom.Point)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	*list = append(*list, listener{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, l := range *list {
				if l.id == id {
					*list = append((*list)[:i:i], (*list)[i+1:]...)
					return
				}
			}
		})
	}
}

// Move dispatches a pointer move.
func (b *Bus) Move(p geom.Point) { b.dispatch(&b.moves, p) }

// Up dispatches a pointer release.
func (b *Bus) Up(p geom.Point) { b.dispatch(&b.ups, p) }

func (b *Bus) dispatch(list *[]listener, p geom.Point) {
	b.mu.Lock()
	ls := make([]listener, len(*list))
	copy(ls, *list)
	b.mu.Unlock()

	for _, l := range ls {
		l.fn(p)
	}
}

// Listeners returns the number of attached move and up listeners.
func (b *Bus) Listeners() (moves, ups int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.moves), len(b.ups)
}
