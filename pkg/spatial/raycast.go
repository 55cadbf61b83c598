// pkg/spatial/raycast.go
package spatial

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-slinger/pkg/physics"
)

// ColliderLookup resolves an indexed handle to its collider and position.
// Returning false excludes the handle from the exact test.
// Implementations used with RaycastBatch must be safe for concurrent reads.
type ColliderLookup interface {
	Lookup(h physics.Handle) (physics.Collider, physics.Vector2D, bool)
}

// LookupFunc adapts a function to ColliderLookup
type LookupFunc func(h physics.Handle) (physics.Collider, physics.Vector2D, bool)

// Lookup calls f(h)
func (f LookupFunc) Lookup(h physics.Handle) (physics.Collider, physics.Vector2D, bool) {
	return f(h)
}

// Hit is the nearest exact intersection found by Raycast
type Hit struct {
	Handle   physics.Handle
	Distance float64
	Point    physics.Vector2D
}

// Raycast returns the closest collider the ray hits. Broad-phase candidates
// are visited nearest node first and the search stops once a node starts
// farther away than the best exact hit.
func Raycast(tree *KDTree, ray physics.Ray, lookup ColliderLookup) (Hit, bool) {
	candidates := tree.QueryRay(ray)
	if len(candidates) == 0 {
		return Hit{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})

	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, c := range candidates {
		if c.Distance > best.Distance {
			break
		}
		collider, pos, ok := lookup.Lookup(c.Handle)
		if !ok {
			continue
		}
		hit, dist := collider.IntersectRay(ray, pos)
		if !hit || dist >= best.Distance {
			continue
		}
		best = Hit{Handle: c.Handle, Distance: dist, Point: ray.At(dist)}
		found = true
	}
	return best, found
}

// RaycastBatch runs Raycast for every ray with at most workers goroutines.
// hits[i] and ok[i] hold the result for rays[i]. Cancelling ctx stops
// scheduling further rays and returns the context error.
func RaycastBatch(ctx context.Context, tree *KDTree, rays []physics.Ray, lookup ColliderLookup, workers int) ([]Hit, []bool, error) {
	hits := make([]Hit, len(rays))
	oks := make([]bool, len(rays))
	if len(rays) == 0 {
		return hits, oks, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range rays {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hits[i], oks[i] = Raycast(tree, rays[i], lookup)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("raycast batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("raycast batch: %w", err)
	}
	return hits, oks, nil
}
