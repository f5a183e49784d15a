package osmslope

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Node is a single geographic point of the network. Coordinates are
// WGS84 decimal degrees, copied out of the parsed OSM object.
type Node struct {
	ID  osm.NodeID
	Lat float64
	Lon float64
}

// Point returns node's coordinate as orb.Point (lon, lat order)
func (node Node) Point() orb.Point {
	return orb.Point{node.Lon, node.Lat}
}
