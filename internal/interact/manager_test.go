package interact

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/Gaurav-Gosain/floatdesk/internal/gesture"
	"github.com/Gaurav-Gosain/floatdesk/internal/logging"
	"github.com/Gaurav-Gosain/floatdesk/internal/registry"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerFollowsWindowList(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})

	m, err := NewManager(ctx, bus, nil)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	assert.Equal(t, 1, m.Len())

	store.Open(registry.Definition{ID: "b"})
	assert.Equal(t, 2, m.Len())
	_, ok := m.Controller("b")
	assert.True(t, ok)

	store.Close("a")
	assert.Equal(t, 1, m.Len())
	_, ok = m.Controller("a")
	assert.False(t, ok)

	moves, ups := bus.Listeners()
	assert.Equal(t, 1, moves)
	assert.Equal(t, 1, ups)
}

func TestManagerKeepsDanglingGestureUntilPrune(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})

	m, err := NewManager(ctx, bus, nil)
	require.NoError(t, err)
	t.Cleanup(m.Close)

	c, ok := m.Controller("a")
	require.True(t, ok)
	require.True(t, c.Drag(geom.Point{X: 120, Y: 120}))

	active, ok := m.Active()
	require.True(t, ok)
	assert.Same(t, c, active)

	store.Close("a")
	assert.Equal(t, 1, m.Len(), "controller with a gesture in flight stays mounted")

	bus.Up(geom.Point{X: 130, Y: 130})
	m.Prune()
	assert.Equal(t, 0, m.Len())
	moves, ups := bus.Listeners()
	assert.Zero(t, moves+ups)
}

func TestManagerPassesSurfaces(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})

	surfaces := map[string]*liveSurface{"a": {}}
	m, err := NewManager(ctx, bus, func(id string) gesture.Surface { return surfaces[id] })
	require.NoError(t, err)
	t.Cleanup(m.Close)

	c, _ := m.Controller("a")
	require.True(t, c.Drag(geom.Point{X: 100, Y: 100}))
	bus.Move(geom.Point{X: 120, Y: 100})
	assert.Equal(t, []geom.Position{{X: 120, Y: 100}}, surfaces["a"].pos)
}

func TestManagerCloseDetachesAll(t *testing.T) {
	ctx, store, bus := setup(t)
	store.Open(registry.Definition{ID: "a"})
	store.Open(registry.Definition{ID: "b"})

	m, err := NewManager(ctx, bus, nil)
	require.NoError(t, err)
	m.Close()
	m.Close()

	moves, ups := bus.Listeners()
	assert.Zero(t, moves+ups)

	store.Open(registry.Definition{ID: "c"})
	assert.Equal(t, 0, m.Len())
}

func TestNewManagerOutsideScope(t *testing.T) {
	_, _, bus := setup(t)
	_, err := NewManager(t.Context(), bus, nil)
	require.ErrorIs(t, err, registry.ErrNoStore)
}

func TestManagerStopsFollowingUnmountedStore(t *testing.T) {
	ctx, store, bus := setup(t)
	var buf bytes.Buffer
	ctx = logging.WithContext(ctx, zerolog.New(&buf))
	store.Open(registry.Definition{ID: "a"})

	m, err := NewManager(ctx, bus, nil)
	require.NoError(t, err)
	t.Cleanup(m.Close)

	store.Unmount()
	store.Open(registry.Definition{ID: "b"})
	store.Open(registry.Definition{ID: "c"})

	assert.Equal(t, 1, m.Len())
	_, ok := m.Controller("b")
	assert.False(t, ok)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "no longer following windows"), out)
	assert.Contains(t, out, `"component":"interact"`)
	assert.Contains(t, out, "unmounted")
}
