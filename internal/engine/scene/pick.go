package scene

import (
	"github.com/Faultbox/sceneview/pkg/math"
)

// Pick returns the visible mesh whose world bounds the ray enters first,
// and the ray parameter of the hit.
func (s *Scene) Pick(ray math.Ray) (NodeID, float32, bool) {
	var (
		best  NodeID
		bestT float32
		found bool
	)
	for _, id := range s.meshes {
		if !s.Visible(id) {
			continue
		}
		box, err := s.WorldBounds(id)
		if err != nil || box.IsEmpty() {
			continue
		}
		t, hit := ray.IntersectAABB(box)
		if hit && (!found || t < bestT) {
			best, bestT, found = id, t, true
		}
	}
	return best, bestT, found
}
