package interact

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/Gaurav-Gosain/floatdesk/internal/gesture"
	"github.com/Gaurav-Gosain/floatdesk/internal/logging"
	"github.com/Gaurav-Gosain/floatdesk/internal/pointer"
	"github.com/Gaurav-Gosain/floatdesk/internal/registry"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var desktop = geom.Size{Width: 1000, Height: 800}

type liveSurface struct {
	pos  []geom.Position
	size []geom.Size
}

func (s *liveSurface) MoveTo(p geom.Position) { s.pos = append(s.pos, p) }
func (s *liveSurface) ResizeTo(z geom.Size)   { s.size = append(s.size, z) }

func setup(t *testing.T) (context.Context, *registry.Store, *pointer.Bus) {
	t.Helper()
	store := registry.NewStore(geom.FixedViewport(desktop))
	ctx := registry.WithStore(context.Background(), store)
	return ctx, store, pointer.NewBus()
}

func mount(t *testing.T, ctx context.Context, bus *pointer.Bus, id string, surface gesture.Surface) *Controller {
	t.Helper()
	c, err := New(ctx, id, surface)
	require.NoError(t, err)
	t.Cleanup(c.Mount(ctx, bus))
	return c
}

func window(t *testing.T, store *registry.Store, id string) registry.Instance {
	t.Helper()
	w, ok := store.Windows().Get(id)
	require.True(t, ok, "window %q not found", id)
	return w
}

func TestNewOutsideScope(t *testing.T) {
	_, err := New(context.Background(), "a", nil)
	require.ErrorIs(t, err, registry.ErrNoStore)
}

func TestControllerLogsWithWindowFields(t *testing.T) {
	ctx, store, bus := setup(t)
	var buf bytes.Buffer
	ctx = logging.WithContext(ctx, zerolog.New(&buf).Level(zerolog.DebugLevel))
	store.Open(registry.Definition{ID: "a"})

	c := mount(t, ctx, bus, "a", nil)
	require.True(t, c.Drag(geom.Point{X: 150, Y: 110}))
	bus.Up(geom.Point{X: 150, Y: 110})

	out := buf.String()
	assert.Contains(t, out, `"component":"interact"`)
	assert.Contains(t, out, `"window_id":"a"`)
	assert.Contains(t, out, "drag start")
}

func TestOpenFocusSnapResizeScenario(t *testing.T) {
	ctx, store, bus := setup(t)

	store.Open(registry.Definition{ID: "a"})
	store.Open(registry.Definition{ID: "b"})
	assert.Greater(t, window(t, store, "b").ZIndex, window(t, store, "a").ZIndex)

	store.Focus("a")
	assert.Greater(t, window(t, store, "a").ZIndex, window(t, store, "b").ZIndex)

	var previews []geom.SnapSide
	store.PreviewSlice().Subscribe(func(s geom.SnapSide) { previews = append(previews, s) })

	a := mount(t, ctx, bus, "a", nil)
	require.True(t, a.Drag(geom.Point{X: 150, Y: 110}))
	bus.Move(geom.Point{X: 100, Y: 110})
	bus.Move(geom.Point{X: 10, Y: 110})
	bus.Up(geom.Point{X: 10, Y: 110})

	w := window(t, store, "a")
	assert.True(t, w.Snapped)
	assert.Equal(t, geom.SnapLeft, w.Side)
	assert.Equal(t, desktop.Width/2, w.Size.Width)
	assert.Equal(t, geom.Position{X: 0, Y: 0}, w.Position)
	assert.False(t, w.Maximized)
	assert.Equal(t, []geom.SnapSide{geom.SnapLeft, geom.SnapNone}, previews)
	assert.False(t, a.IsDragging())

	require.True(t, a.Resize(geom.Point{X: 500, Y: 800}))
	assert.True(t, a.IsResizing())
	bus.Move(geom.Point{X: 450, Y: 700})
	bus.Up(geom.Point{X: 450, Y: 700})

	w = window(t, store, "a")
	assert.False(t, w.Snapped)
	assert.Equal(t, geom.Size{Width: 450, Height: 700}, w.Size)
	assert.False(t, a.IsResizing())
}

func TestDragCommitsOnceAtRelease(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})

	commits := 0
	store.WindowsSlice().Subscribe(func(*registry.List) { commits++ })

	surface := &liveSurface{}
	a := mount(t, ctx, bus, "a", surface)
	require.True(t, a.Drag(geom.Point{X: 110, Y: 110}))
	for x := 120; x <= 200; x += 20 {
		bus.Move(geom.Point{X: x, Y: 150})
	}
	assert.Equal(t, 0, commits, "no registry writes while dragging")
	assert.Len(t, surface.pos, 5)
	assert.Equal(t, geom.Position{X: 100, Y: 100}, window(t, store, "a").Position)

	bus.Up(geom.Point{X: 200, Y: 150})
	assert.Equal(t, 1, commits)
	assert.Equal(t, geom.Position{X: 190, Y: 140}, window(t, store, "a").Position)
}

func TestDragMovedSnappedWindowUnsnaps(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})
	store.Snap("a", geom.SnapRight)

	a := mount(t, ctx, bus, "a", nil)
	require.True(t, a.Drag(geom.Point{X: 600, Y: 10}))
	bus.Move(geom.Point{X: 400, Y: 10})
	bus.Up(geom.Point{X: 400, Y: 10})

	w := window(t, store, "a")
	assert.False(t, w.Snapped)
	assert.Equal(t, geom.Position{X: 300, Y: 0}, w.Position)
}

func TestDragSnappedWindowWithoutMovingStaysSnapped(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})
	store.Snap("a", geom.SnapRight)
	before := store.Windows()

	a := mount(t, ctx, bus, "a", nil)
	require.True(t, a.Drag(geom.Point{X: 600, Y: 10}))
	bus.Up(geom.Point{X: 600, Y: 10})

	assert.Same(t, before, store.Windows())
	assert.True(t, window(t, store, "a").Snapped)
}

func TestGesturesRefusedOnMaximizedOrMissingWindow(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})
	store.Maximize("a")

	a := mount(t, ctx, bus, "a", nil)
	assert.False(t, a.Drag(geom.Point{}))
	assert.False(t, a.Resize(geom.Point{}))
	assert.False(t, a.IsDragging())

	ghost := mount(t, ctx, bus, "ghost", nil)
	assert.False(t, ghost.Drag(geom.Point{}))
}

func TestOneGestureAtATime(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})

	a := mount(t, ctx, bus, "a", nil)
	require.True(t, a.Drag(geom.Point{X: 100, Y: 100}))
	assert.False(t, a.Resize(geom.Point{X: 100, Y: 100}))
	assert.False(t, a.Drag(geom.Point{X: 100, Y: 100}))
}

func TestCloseWhileDragging(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})
	store.Open(registry.Definition{ID: "b"})

	a := mount(t, ctx, bus, "a", nil)
	require.True(t, a.Drag(geom.Point{X: 110, Y: 110}))
	bus.Move(geom.Point{X: 5, Y: 110})

	afterClose := store.Close("a")
	assert.Equal(t, 1, afterClose.Len())

	assert.NotPanics(t, func() {
		bus.Move(geom.Point{X: 6, Y: 110})
		bus.Up(geom.Point{X: 6, Y: 110})
	})
	assert.Same(t, afterClose, store.Windows())
	assert.False(t, a.IsDragging())
	assert.Equal(t, geom.SnapNone, store.SnapPreview())
}

func TestCloseWhileResizing(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})

	a := mount(t, ctx, bus, "a", nil)
	require.True(t, a.Resize(geom.Point{X: 600, Y: 400}))
	afterClose := store.Close("a")

	assert.NotPanics(t, func() { bus.Up(geom.Point{X: 700, Y: 500}) })
	assert.Same(t, afterClose, store.Windows())
}

func TestMountDetachIsIdempotentAndDoesNotLeak(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})

	for range 50 {
		c, err := New(ctx, "a", nil)
		require.NoError(t, err)
		detach := c.Mount(ctx, bus)
		detach()
		detach()
	}
	moves, ups := bus.Listeners()
	assert.Zero(t, moves)
	assert.Zero(t, ups)
}

func TestRemountReplacesListeners(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})

	c, err := New(ctx, "a", nil)
	require.NoError(t, err)
	c.Mount(ctx, bus)
	detach := c.Mount(ctx, bus)

	moves, ups := bus.Listeners()
	assert.Equal(t, 1, moves)
	assert.Equal(t, 1, ups)

	detach()
	moves, ups = bus.Listeners()
	assert.Zero(t, moves+ups)
}

func TestMountDetachesWhenContextDone(t *testing.T) {
	_, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})

	ctx, cancel := context.WithCancel(registry.WithStore(context.Background(), store))
	c, err := New(ctx, "a", nil)
	require.NoError(t, err)
	c.Mount(ctx, bus)

	moves, _ := bus.Listeners()
	require.Equal(t, 1, moves)

	cancel()
	assert.Eventually(t, func() bool {
		moves, ups := bus.Listeners()
		return moves == 0 && ups == 0
	}, time.Second, 5*time.Millisecond)
}

func TestSnapThresholdOption(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})

	c, err := New(ctx, "a", nil, WithSnapThreshold(100))
	require.NoError(t, err)
	t.Cleanup(c.Mount(ctx, bus))

	require.True(t, c.Drag(geom.Point{X: 150, Y: 110}))
	bus.Move(geom.Point{X: 950, Y: 110})
	assert.Equal(t, geom.SnapRight, store.SnapPreview())
	bus.Up(geom.Point{X: 950, Y: 110})

	w := window(t, store, "a")
	assert.Equal(t, geom.SnapRight, w.Side)
	assert.Equal(t, geom.Position{X: 500, Y: 0}, w.Position)
}

func TestResizeBoundsOption(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})

	c, err := New(ctx, "a", nil, WithBounds(gesture.Bounds{MinWidth: 50, MinHeight: 10}))
	require.NoError(t, err)
	t.Cleanup(c.Mount(ctx, bus))

	require.True(t, c.Resize(geom.Point{X: 600, Y: 400}))
	bus.Move(geom.Point{X: 0, Y: 0})
	bus.Up(geom.Point{X: 0, Y: 0})

	assert.Equal(t, geom.Size{Width: 50, Height: 10}, window(t, store, "a").Size)
}
