package osmslope

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// PrepareGeoJSONProfiles returns GeoJSON representation of computed
// way statistics: a FeatureCollection with one LineString feature per
// way, statistics attached as feature properties. Features follow the
// input order of ways.
func PrepareGeoJSONProfiles(network *NetworkData, statistics []WayStatistics) ([]byte, error) {
	byID := make(map[osm.WayID]WayStatistics, len(statistics))
	for i := range statistics {
		byID[statistics[i].WayID] = statistics[i]
	}

	collection := geojson.NewFeatureCollection()
	for _, way := range network.ways {
		line := make([][]float64, 0, len(way.Nodes))
		for _, nodeID := range way.Nodes {
			node, ok := network.nodes[nodeID]
			if !ok {
				return nil, errors.Wrapf(ErrMissingNode, "way %d, node %d", way.ID, nodeID)
			}
			line = append(line, []float64{node.Lon, node.Lat})
		}
		stats, ok := byID[way.ID]
		if !ok {
			continue
		}
		feature := geojson.NewLineStringFeature(line)
		feature.SetProperty("way_id", int64(way.ID))
		feature.SetProperty("distance", stats.Distance)
		feature.SetProperty("climb_distance", stats.ClimbDistance)
		feature.SetProperty("descent_distance", stats.DescentDistance)
		feature.SetProperty("climb", stats.Climb)
		feature.SetProperty("descent", stats.Descent)
		collection.AddFeature(feature)
	}
	return collection.MarshalJSON()
}
