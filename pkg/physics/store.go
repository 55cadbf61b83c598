// pkg/physics/store.go
package physics

import "fmt"

// Handle is a stable reference to a body in a BodyStore. The low 32 bits
// index the slot and the high 32 bits carry the slot's generation, so a
// handle to a removed body never resolves to the body that reuses its slot.
type Handle uint64

// NilHandle never resolves
const NilHandle Handle = 0

func makeHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index))
}

func (h Handle) index() uint32 {
	return uint32(h)
}

func (h Handle) generation() uint32 {
	return uint32(h >> 32)
}

func (h Handle) String() string {
	return fmt.Sprintf("%d#%d", h.index(), h.generation())
}

type slot struct {
	body  Body
	gen   uint32
	alive bool
}

// BodyStore owns bodies and hands out generation-checked handles
type BodyStore struct {
	slots []slot
	free  []uint32
	count int
}

// NewBodyStore creates an empty store
func NewBodyStore() *BodyStore {
	return &BodyStore{}
}

// Insert stores the body and returns its handle
func (s *BodyStore) Insert(body Body) Handle {
	s.count++
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		sl := &s.slots[idx]
		sl.body = body
		sl.alive = true
		return makeHandle(idx, sl.gen)
	}
	// generations start at 1 so that NilHandle is never valid
	s.slots = append(s.slots, slot{body: body, gen: 1, alive: true})
	return makeHandle(uint32(len(s.slots)-1), 1)
}

// Remove deletes the body. It reports false for stale or unknown handles.
func (s *BodyStore) Remove(h Handle) bool {
	sl, ok := s.slot(h)
	if !ok {
		return false
	}
	sl.alive = false
	sl.body = Body{}
	sl.gen++
	s.free = append(s.free, h.index())
	s.count--
	return true
}

// Get resolves a handle
func (s *BodyStore) Get(h Handle) (*Body, bool) {
	sl, ok := s.slot(h)
	if !ok {
		return nil, false
	}
	return &sl.body, true
}

// Contains reports whether the handle resolves
func (s *BodyStore) Contains(h Handle) bool {
	_, ok := s.slot(h)
	return ok
}

// Pair resolves two distinct handles for simultaneous mutation.
// Equal handles fail with ErrSameHandle; unresolvable ones with ErrStaleHandle.
func (s *BodyStore) Pair(a, b Handle) (*Body, *Body, error) {
	if a == b {
		return nil, nil, fmt.Errorf("pair %s: %w", a, ErrSameHandle)
	}
	bodyA, ok := s.Get(a)
	if !ok {
		return nil, nil, fmt.Errorf("pair %s: %w", a, ErrStaleHandle)
	}
	bodyB, ok := s.Get(b)
	if !ok {
		return nil, nil, fmt.Errorf("pair %s: %w", b, ErrStaleHandle)
	}
	return bodyA, bodyB, nil
}

// Each visits live bodies in slot order
func (s *BodyStore) Each(fn func(Handle, *Body)) {
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.alive {
			continue
		}
		fn(makeHandle(uint32(i), sl.gen), &sl.body)
	}
}

// Handles returns the live handles in slot order
func (s *BodyStore) Handles() []Handle {
	out := make([]Handle, 0, s.count)
	s.Each(func(h Handle, _ *Body) {
		out = append(out, h)
	})
	return out
}

// Len returns the number of live bodies
func (s *BodyStore) Len() int {
	return s.count
}

func (s *BodyStore) slot(h Handle) (*slot, bool) {
	idx := h.index()
	if int(idx) >= len(s.slots) {
		return nil, false
	}
	sl := &s.slots[idx]
	if !sl.alive || sl.gen != h.generation() {
		return nil, false
	}
	return sl, true
}
