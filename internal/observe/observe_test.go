package observe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetNotifiesOnlyOnChange(t *testing.T) {
	v := New(0, func(a, b int) bool { return a == b })

	var got []int
	v.Subscribe(func(n int) { got = append(got, n) })

	assert.True(t, v.Set(1))
	assert.False(t, v.Set(1))
	assert.True(t, v.Set(2))

	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 2, v.Get())
}

func TestNilEqualAlwaysNotifies(t *testing.T) {
	v := New("a", nil)
	calls := 0
	v.Subscribe(func(string) { calls++ })

	v.Set("a")
	v.Set("a")
	assert.Equal(t, 2, calls)
}

func TestUnsubscribe(t *testing.T) {
	v := New(0, nil)
	first, second := 0, 0
	unsubFirst := v.Subscribe(func(int) { first++ })
	v.Subscribe(func(int) { second++ })
	assert.Equal(t, 2, v.Subscribers())

	v.Set(1)
	unsubFirst()
	unsubFirst()
	v.Set(2)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 1, v.Subscribers())
}

func TestSubscriberMaySetFromCallback(t *testing.T) {
	v := New(0, func(a, b int) bool { return a == b })
	v.Subscribe(func(n int) {
		if n < 3 {
			v.Set(n + 1)
		}
	})

	v.Set(1)
	assert.Equal(t, 3, v.Get())
}

func TestSame(t *testing.T) {
	a, b := new(int), new(int)
	assert.True(t, Same(a, a))
	assert.False(t, Same(a, b))
}

func TestUpdateComputesFromCurrent(t *testing.T) {
	v := New(1, func(a, b int) bool { return a == b })
	var seen []int
	v.Subscribe(func(n int) { seen = append(seen, n) })

	got, changed := v.Update(func(n int) int { return n * 10 })
	assert.True(t, changed)
	assert.Equal(t, 10, got)

	got, changed = v.Update(func(n int) int { return n })
	assert.False(t, changed)
	assert.Equal(t, 10, got)

	assert.Equal(t, []int{10}, seen)
}

func TestReadableView(t *testing.T) {
	var r Readable[string] = New("x", nil)
	assert.Equal(t, "x", r.Get())
}
