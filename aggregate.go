package osmslope

import (
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// ElevationIndex maps node id to its sampled elevation (meters). It is
// populated once for every node referenced by a selected way and never
// mutated afterward.
type ElevationIndex map[osm.NodeID]float64

// SlopeProfile is the accumulated slope information of a single way.
// All values are meters and non-negative. Under per-segment
// accumulation ClimbDistance + DescentDistance equals Distance up to
// floating-point rounding.
type SlopeProfile struct {
	Distance        float64 `json:"distance"`
	ClimbDistance   float64 `json:"climb_distance"`
	DescentDistance float64 `json:"descent_distance"`
	Climb           float64 `json:"climb"`
	Descent         float64 `json:"descent"`
}

// WayStatistics couples a way id with its slope profile
type WayStatistics struct {
	WayID osm.WayID `json:"way_id"`
	SlopeProfile
}

// aggregateWay folds over consecutive node pairs of the way and
// accumulates distance, climb and descent. A segment whose second node
// is strictly higher than its first is a climb segment; any other
// segment, including equal elevations, counts as descent.
//
// With legacyDistances the running cumulative distance, not the
// per-segment length, is added to climb/descent distance on every
// segment. That reproduces the output of early versions of the tool
// where the two fields double-count prior segments and do not sum to
// the total distance.
func aggregateWay(way Way, nodes map[osm.NodeID]Node, elevations ElevationIndex, legacyDistances bool) (WayStatistics, error) {
	stats := WayStatistics{WayID: way.ID}
	for i := 1; i < len(way.Nodes); i++ {
		aID := way.Nodes[i-1]
		bID := way.Nodes[i]
		nodeA, ok := nodes[aID]
		if !ok {
			return stats, errors.Wrapf(ErrMissingNode, "way %d, node %d", way.ID, aID)
		}
		nodeB, ok := nodes[bID]
		if !ok {
			return stats, errors.Wrapf(ErrMissingNode, "way %d, node %d", way.ID, bID)
		}
		elevationA, ok := elevations[aID]
		if !ok {
			return stats, errors.Wrapf(ErrMissingElevation, "way %d, node %d", way.ID, aID)
		}
		elevationB, ok := elevations[bID]
		if !ok {
			return stats, errors.Wrapf(ErrMissingElevation, "way %d, node %d", way.ID, bID)
		}

		segment := segmentLength(nodeA.Point(), nodeB.Point())
		stats.Distance += segment
		if legacyDistances {
			segment = stats.Distance
		}
		if elevationA < elevationB {
			stats.Climb += elevationB - elevationA
			stats.ClimbDistance += segment
		} else {
			stats.Descent += elevationA - elevationB
			stats.DescentDistance += segment
		}
	}
	return stats, nil
}

// buildElevationIndex samples elevation once per resolved node. The
// index must be complete before any aggregation starts. The progress
// callback, when not nil, is invoked after every sampled node.
func buildElevationIndex(nodes map[osm.NodeID]Node, source ElevationSource, resampling Resampling, progress func(sampled, total int)) (ElevationIndex, error) {
	index := make(ElevationIndex, len(nodes))
	total := len(nodes)
	sampled := 0
	for id, node := range nodes {
		elevation, err := source.ElevationAt(node.Point(), resampling)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't sample elevation for node %d", id)
		}
		index[id] = elevation
		sampled++
		if progress != nil {
			progress(sampled, total)
		}
	}
	return index, nil
}
