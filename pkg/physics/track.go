// pkg/physics/track.go
package physics

import "sort"

// Contact is a resolved collision seen from the tracked body
type Contact struct {
	Normal Vector2D
}

// TrackCollision keeps this tick's and the previous tick's contacts for one
// body. Consumers that need stable normals read Last.
type TrackCollision struct {
	Collisions   map[Handle]Contact
	Last         map[Handle]Contact
	Triggers     map[Handle]struct{}
	LastTriggers map[Handle]struct{}
}

// NewTrackCollision returns an empty tracker
func NewTrackCollision() *TrackCollision {
	return &TrackCollision{
		Collisions:   make(map[Handle]Contact),
		Last:         make(map[Handle]Contact),
		Triggers:     make(map[Handle]struct{}),
		LastTriggers: make(map[Handle]struct{}),
	}
}

// Reset moves the current sets into Last/LastTriggers and starts empty ones
func (t *TrackCollision) Reset() {
	t.Last = t.Collisions
	t.Collisions = make(map[Handle]Contact, len(t.Last))
	t.LastTriggers = t.Triggers
	t.Triggers = make(map[Handle]struct{}, len(t.LastTriggers))
}

// RecordContact stores the contact against other, replacing any earlier one this tick
func (t *TrackCollision) RecordContact(other Handle, normal Vector2D) {
	t.Collisions[other] = Contact{Normal: normal}
}

// RecordTrigger marks an overlap with a trigger collider
func (t *TrackCollision) RecordTrigger(other Handle) {
	t.Triggers[other] = struct{}{}
}

// Touching reports whether other was hit this tick
func (t *TrackCollision) Touching(other Handle) bool {
	_, ok := t.Collisions[other]
	return ok
}

// InTrigger reports whether other's trigger was overlapped this tick
func (t *TrackCollision) InTrigger(other Handle) bool {
	_, ok := t.Triggers[other]
	return ok
}

// SortedCollisions returns this tick's contact handles in ascending order
func (t *TrackCollision) SortedCollisions() []Handle {
	return sortedKeys(t.Collisions)
}

// SortedLast returns last tick's contact handles in ascending order
func (t *TrackCollision) SortedLast() []Handle {
	return sortedKeys(t.Last)
}

// SortedTriggers returns this tick's trigger handles in ascending order
func (t *TrackCollision) SortedTriggers() []Handle {
	return sortedKeys(t.Triggers)
}

func sortedKeys[V any](m map[Handle]V) []Handle {
	keys := make([]Handle, 0, len(m))
	for h := range m {
		keys = append(keys, h)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
