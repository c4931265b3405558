package registry

import (
	"context"
	"testing"

	"github.com/Gaurav-Gosain/floatdesk/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(vp geom.Size) *Store {
	return NewStore(geom.FixedViewport(vp))
}

func TestStoreNotifiesWindowsOnlyOnChange(t *testing.T) {
	s := newTestStore(desktop)
	var lists []*List
	s.WindowsSlice().Subscribe(func(l *List) { lists = append(lists, l) })

	first := s.Open(Definition{ID: "a"})
	s.Focus("a")   // already front
	s.Close("zzz") // unknown
	second := s.Minimize("a")

	require.Len(t, lists, 2)
	assert.Same(t, first, lists[0])
	assert.Same(t, second, lists[1])
	assert.Same(t, second, s.Windows())
}

func TestStoreSlicesAreIndependent(t *testing.T) {
	s := newTestStore(desktop)
	windowCalls, previewCalls, dispatchCalls := 0, 0, 0
	s.WindowsSlice().Subscribe(func(*List) { windowCalls++ })
	s.PreviewSlice().Subscribe(func(geom.SnapSide) { previewCalls++ })
	s.DispatchSlice().Subscribe(func(Dispatch) { dispatchCalls++ })

	s.Open(Definition{ID: "a"})
	s.Snap("a", geom.SnapLeft)
	assert.Equal(t, 2, windowCalls)
	assert.Equal(t, 0, previewCalls)

	s.SetSnapPreview(geom.SnapRight)
	s.SetSnapPreview(geom.SnapRight)
	s.SetSnapPreview(geom.SnapNone)
	assert.Equal(t, 2, windowCalls)
	assert.Equal(t, 2, previewCalls)
	assert.Equal(t, geom.SnapNone, s.SnapPreview())

	assert.Equal(t, 0, dispatchCalls)
}

func TestStoreReadsViewportPerOperation(t *testing.T) {
	width := 1200
	s := NewStore(geom.ViewportFunc(func() geom.Size { return geom.Size{Width: width, Height: 800} }))

	s.Open(Definition{ID: "wide"})
	width = 600
	s.Open(Definition{ID: "narrow"})
	s.Snap("wide", geom.SnapRight)

	l := s.Windows()
	assert.False(t, mustGet(t, l, "wide").Maximized)
	assert.True(t, mustGet(t, l, "narrow").Maximized)
	assert.Equal(t, geom.Position{X: 300}, mustGet(t, l, "wide").Position)
}

func TestStoreWithRules(t *testing.T) {
	rules := DefaultRules()
	rules.MobileBreakpoint = 0
	rules.DefaultSize = geom.Size{Width: 320, Height: 200}
	s := NewStore(geom.FixedViewport(geom.Size{Width: 400, Height: 300}), WithRules(rules))

	w := mustGet(t, s.Open(Definition{ID: "a"}), "a")
	assert.False(t, w.Maximized)
	assert.Equal(t, rules.DefaultSize, w.Size)
}

func TestStoreWithInitial(t *testing.T) {
	seed := open(NewList(), "a")
	s := NewStore(geom.FixedViewport(desktop), WithInitial(seed))
	assert.Same(t, seed, s.Windows())
}

func TestScopedAccessorsOutsideScope(t *testing.T) {
	ctx := context.Background()

	_, err := Windows(ctx)
	require.ErrorIs(t, err, ErrNoStore)
	assert.Contains(t, err.Error(), "registry.Windows")

	_, err = Actions(ctx)
	require.ErrorIs(t, err, ErrNoStore)
	assert.Contains(t, err.Error(), "registry.Actions")

	_, err = SnapPreview(ctx)
	require.ErrorIs(t, err, ErrNoStore)
	assert.Contains(t, err.Error(), "registry.SnapPreview")

	_, err = FromContext(ctx)
	require.ErrorIs(t, err, ErrNoStore)
}

func TestScopedAccessorsInsideScope(t *testing.T) {
	s := newTestStore(desktop)
	ctx := WithStore(context.Background(), s)

	actions, err := Actions(ctx)
	require.NoError(t, err)
	actions.Open(Definition{ID: "a"})

	windows, err := Windows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, windows.Get().Len())

	preview, err := SnapPreview(ctx)
	require.NoError(t, err)
	actions.SetSnapPreview(geom.SnapLeft)
	assert.Equal(t, geom.SnapLeft, preview.Get())

	again, err := Actions(ctx)
	require.NoError(t, err)
	assert.Same(t, actions.(*Store), again.(*Store), "dispatch handle is stable")
}

func TestScopedAccessorsAfterUnmount(t *testing.T) {
	s := newTestStore(desktop)
	ctx := WithStore(context.Background(), s)
	s.Unmount()
	s.Unmount()

	_, err := Windows(ctx)
	require.ErrorIs(t, err, ErrNoStore)
	assert.Contains(t, err.Error(), "unmounted")
}
