package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi int
		want      int
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -3, 0, 10, 0},
		{"above", 42, 0, 10, 10},
		{"at lower bound", 0, 0, 10, 0},
		{"at upper bound", 10, 0, 10, 10},
		{"inverted range keeps lower bound", 7, 300, 200, 300},
		{"negative ceiling", 50, 0, -100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.v, tt.lo, tt.hi))
		})
	}
}

func TestSnapSideRoundTrip(t *testing.T) {
	for _, side := range []SnapSide{SnapNone, SnapLeft, SnapRight} {
		got, err := ParseSnapSide(side.String())
		require.NoError(t, err)
		assert.Equal(t, side, got)
	}

	_, err := ParseSnapSide("top")
	assert.Error(t, err)
}

func TestViewportAdapters(t *testing.T) {
	fixed := FixedViewport{Width: 1000, Height: 800}
	assert.Equal(t, Size{Width: 1000, Height: 800}, fixed.Size())

	calls := 0
	fn := ViewportFunc(func() Size {
		calls++
		return Size{Width: calls, Height: calls}
	})
	fn.Size()
	assert.Equal(t, Size{Width: 2, Height: 2}, fn.Size(), "viewport must be read on every call")
}
