// pkg/physics/store_test.go
package physics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyStore_InsertGetRemove(t *testing.T) {
	s := NewBodyStore()
	h := s.Insert(NewBody(Vector2D{X: 1}))

	assert.NotEqual(t, NilHandle, h)
	assert.Equal(t, 1, s.Len())

	b, ok := s.Get(h)
	require.True(t, ok)
	assert.Equal(t, 1.0, b.PositionCurrent.X)

	b.PositionCurrent.X = 9
	b2, _ := s.Get(h)
	assert.Equal(t, 9.0, b2.PositionCurrent.X, "Get must return the stored body")

	assert.True(t, s.Remove(h))
	assert.False(t, s.Remove(h))
	assert.False(t, s.Contains(h))
	assert.Equal(t, 0, s.Len())
}

func TestBodyStore_StaleHandleAfterReuse(t *testing.T) {
	s := NewBodyStore()
	old := s.Insert(NewBody(Vector2D{}))
	require.True(t, s.Remove(old))

	fresh := s.Insert(NewBody(Vector2D{X: 2}))
	assert.NotEqual(t, old, fresh)
	assert.Equal(t, old.index(), fresh.index(), "slot is reused")

	_, ok := s.Get(old)
	assert.False(t, ok)
	b, ok := s.Get(fresh)
	require.True(t, ok)
	assert.Equal(t, 2.0, b.PositionCurrent.X)
}

func TestBodyStore_NilHandleNeverResolves(t *testing.T) {
	s := NewBodyStore()
	s.Insert(NewBody(Vector2D{}))

	_, ok := s.Get(NilHandle)
	assert.False(t, ok)
}

func TestBodyStore_Pair(t *testing.T) {
	s := NewBodyStore()
	a := s.Insert(NewBody(Vector2D{X: 1}))
	b := s.Insert(NewBody(Vector2D{X: 2}))
	gone := s.Insert(NewBody(Vector2D{X: 3}))
	s.Remove(gone)

	tests := []struct {
		name    string
		a, b    Handle
		wantErr error
	}{
		{"distinct", a, b, nil},
		{"same", a, a, ErrSameHandle},
		{"stale_first", gone, b, ErrStaleHandle},
		{"stale_second", a, gone, ErrStaleHandle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodyA, bodyB, err := s.Pair(tt.a, tt.b)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, bodyA)
				assert.Nil(t, bodyB)
				return
			}
			require.NoError(t, err)
			bodyA.PositionCurrent.X = 10
			bodyB.PositionCurrent.X = 20
			ga, _ := s.Get(tt.a)
			gb, _ := s.Get(tt.b)
			assert.Equal(t, 10.0, ga.PositionCurrent.X)
			assert.Equal(t, 20.0, gb.PositionCurrent.X)
		})
	}
}

func TestBodyStore_EachInSlotOrder(t *testing.T) {
	s := NewBodyStore()
	var hs []Handle
	for i := 0; i < 5; i++ {
		hs = append(hs, s.Insert(NewBody(Vector2D{X: float64(i)})))
	}
	s.Remove(hs[2])

	var seen []float64
	s.Each(func(_ Handle, b *Body) {
		seen = append(seen, b.PositionCurrent.X)
	})
	assert.Equal(t, []float64{0, 1, 3, 4}, seen)
	assert.Equal(t, []Handle{hs[0], hs[1], hs[3], hs[4]}, s.Handles())
}

func TestHandle_String(t *testing.T) {
	s := NewBodyStore()
	h := s.Insert(NewBody(Vector2D{}))
	assert.Equal(t, "0#1", h.String())
	s.Remove(h)
	assert.Equal(t, "0#2", s.Insert(NewBody(Vector2D{})).String())
}
