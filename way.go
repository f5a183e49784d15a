package osmslope

import (
	"github.com/paulmach/osm"
)

// Way is an ordered path through network nodes together with its
// descriptive tags. A way with less than 2 nodes has no segments and
// contributes all-zero statistics.
type Way struct {
	ID     osm.WayID
	Nodes  []osm.NodeID
	TagMap osm.Tags
}
