package osmslope

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadNetwork(t *testing.T) {
	network, err := ReadNetwork("testdata/network.osm", DefaultFilter(), false)
	require.NoError(t, err)

	// The waterway is filtered out together with its exclusive node
	assert.Equal(t, 2, network.WayCount())
	assert.Equal(t, 4, network.NodeCount())

	assert.Equal(t, osm.WayID(10), network.ways[0].ID)
	assert.Equal(t, []osm.NodeID{1, 2, 3}, network.ways[0].Nodes)
	assert.Equal(t, "paved", network.ways[0].TagMap.Find("surface"))
	assert.Equal(t, osm.WayID(20), network.ways[1].ID)

	node, ok := network.nodes[2]
	require.True(t, ok)
	assert.Equal(t, 0.002, node.Lat)
	assert.Equal(t, 0.0, node.Lon)
	_, ok = network.nodes[99]
	assert.False(t, ok)
}

func TestReadNetworkValueFilter(t *testing.T) {
	filter, err := ParseFilter("highway=footway")
	require.NoError(t, err)

	network, err := ReadNetwork("testdata/network.osm", filter, false)
	require.NoError(t, err)
	require.Equal(t, 1, network.WayCount())
	assert.Equal(t, osm.WayID(20), network.ways[0].ID)
	assert.Equal(t, 2, network.NodeCount())
}

func TestReadNetworkMissingNode(t *testing.T) {
	_, err := ReadNetwork("testdata/missing_node.osm", DefaultFilter(), false)
	assert.ErrorIs(t, err, ErrMissingNode)
}

func TestReadNetworkMissingFile(t *testing.T) {
	_, err := ReadNetwork("testdata/no_such_file.osm", DefaultFilter(), false)
	assert.Error(t, err)
}

func TestNewScannerUnknownExtension(t *testing.T) {
	_, err := newScanner("network.txt", nil)
	assert.Error(t, err)
}

func TestReadNetworkThenProfile(t *testing.T) {
	network, err := ReadNetwork("testdata/network.osm", DefaultFilter(), false)
	require.NoError(t, err)

	profiler := NewProfiler("", "")
	result, err := profiler.Profile(network, elevationFunc(flatRamp))
	require.NoError(t, err)
	require.Len(t, result.Statistics, 2)
	for _, stats := range result.Statistics {
		assert.InEpsilon(t, stats.Distance, stats.ClimbDistance+stats.DescentDistance, 1e-9)
	}
}
