// Package spatial provides the static broad phase: a k-d tree over the
// bounding boxes of immovable colliders, with box and ray queries.
//
// A KDTree is immutable once built. Any number of goroutines may query it
// concurrently; changing the indexed set means building a new tree.
package spatial

import (
	"sort"

	"github.com/opd-ai/go-slinger/pkg/physics"
)

const noChild = -1

// Item is one indexed collider
type Item struct {
	Handle physics.Handle
	Box    physics.AABB
}

// Candidate is a broad-phase ray result: the collider and the entry distance
// of the node box that held it
type Candidate struct {
	Handle   physics.Handle
	Distance float64
}

type node struct {
	box         physics.AABB
	left, right int
	objects     []physics.Handle
}

// KDTree is a binary space partition stored as an arena of nodes.
// Children are addressed by index; node 0 is the root.
type KDTree struct {
	nodes []node
	items int
}

// Build partitions items, alternating the split axis (x, then y) by depth and
// splitting at the median after sorting by the box origin on that axis.
// The input slice is not modified.
func Build(items []Item) *KDTree {
	t := &KDTree{items: len(items)}
	if len(items) == 0 {
		return t
	}
	work := make([]Item, len(items))
	copy(work, items)
	t.nodes = make([]node, 0, 2*len(items))
	t.build(work, 0)
	return t
}

func (t *KDTree) build(items []Item, depth int) int {
	if len(items) == 0 {
		return noChild
	}
	idx := len(t.nodes)
	if len(items) == 1 {
		t.nodes = append(t.nodes, node{
			box:     items[0].Box,
			left:    noChild,
			right:   noChild,
			objects: []physics.Handle{items[0].Handle},
		})
		return idx
	}

	axis := depth % 2
	sort.SliceStable(items, func(i, j int) bool {
		if axis == 0 {
			return items[i].Box.Pos.X < items[j].Box.Pos.X
		}
		return items[i].Box.Pos.Y < items[j].Box.Pos.Y
	})

	t.nodes = append(t.nodes, node{left: noChild, right: noChild})
	mid := len(items) / 2
	left := t.build(items[:mid], depth+1)
	right := t.build(items[mid:], depth+1)

	n := &t.nodes[idx]
	n.left, n.right = left, right
	switch {
	case left != noChild && right != noChild:
		n.box = t.nodes[left].box.Union(t.nodes[right].box)
	case left != noChild:
		n.box = t.nodes[left].box
	case right != noChild:
		n.box = t.nodes[right].box
	}
	return idx
}

// Len returns the number of indexed items
func (t *KDTree) Len() int {
	if t == nil {
		return 0
	}
	return t.items
}

// NodeCount returns the number of arena nodes
func (t *KDTree) NodeCount() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Bounds returns the box covering every indexed item
func (t *KDTree) Bounds() (physics.AABB, bool) {
	if t.NodeCount() == 0 {
		return physics.AABB{}, false
	}
	return t.nodes[0].box, true
}

// Depth returns the number of levels in the tree
func (t *KDTree) Depth() int {
	if t.NodeCount() == 0 {
		return 0
	}
	return t.depth(0)
}

func (t *KDTree) depth(idx int) int {
	if idx == noChild {
		return 0
	}
	n := t.nodes[idx]
	return 1 + max(t.depth(n.left), t.depth(n.right))
}

// Query returns every object stored in a node whose box overlaps box
func (t *KDTree) Query(box physics.AABB) []physics.Handle {
	return t.QueryAppend(nil, box)
}

// QueryAppend is Query writing into dst
func (t *KDTree) QueryAppend(dst []physics.Handle, box physics.AABB) []physics.Handle {
	if t.NodeCount() == 0 {
		return dst
	}
	stack := make([]int, 0, 32)
	stack = append(stack, 0)
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[idx]
		if !box.Intersects(n.box) {
			continue
		}
		dst = append(dst, n.objects...)
		if n.right != noChild {
			stack = append(stack, n.right)
		}
		if n.left != noChild {
			stack = append(stack, n.left)
		}
	}
	return dst
}

// QueryRay returns the objects of every node whose box the ray crosses,
// each tagged with that node's hit distance. Results are unordered.
func (t *KDTree) QueryRay(ray physics.Ray) []Candidate {
	if t.NodeCount() == 0 {
		return nil
	}
	var out []Candidate
	stack := make([]int, 0, 32)
	stack = append(stack, 0)
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[idx]
		hit, dist := n.box.IntersectRay(ray)
		if !hit {
			continue
		}
		for _, h := range n.objects {
			out = append(out, Candidate{Handle: h, Distance: dist})
		}
		if n.right != noChild {
			stack = append(stack, n.right)
		}
		if n.left != noChild {
			stack = append(stack, n.left)
		}
	}
	return out
}
