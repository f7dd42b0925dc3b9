package body

import (
	"fmt"
	"runtime"

	"github.com/notargets/VSPBody/mesh"
	"golang.org/x/sync/errgroup"
)

// BuildAll prepares bodies in parallel, body k getting SurfaceID
// firstSurfaceID+k, then appends their meshes to shared in input order. The
// returned ranges locate each body inside shared. Nothing is appended unless
// every body succeeds.
func BuildAll(bodies []*Body, shared *mesh.Mesh, firstSurfaceID int) ([]mesh.Range, error) {
	seen := make(map[*Body]int, len(bodies))
	for k, b := range bodies {
		if b == nil {
			return nil, fmt.Errorf("body %d is nil", k)
		}
		if prev, ok := seen[b]; ok {
			return nil, fmt.Errorf("body %q passed twice, at %d and %d", b.componentName, prev, k)
		}
		seen[b] = k
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for k, b := range bodies {
		k, b := k, b
		eg.Go(func() error {
			if err := b.Prepare(firstSurfaceID + k); err != nil {
				return fmt.Errorf("body %d (%q): %w", k, b.componentName, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	ranges := make([]mesh.Range, len(bodies))
	for k, b := range bodies {
		ranges[k] = shared.Append(b.surface)
	}
	return ranges, nil
}
