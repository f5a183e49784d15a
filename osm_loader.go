package osmslope

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

// OSMScanner is the common surface of osmpbf and osmxml scanners.
type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// NetworkData holds ways selected by a tag filter and every node they
// reference. Built once by ReadNetwork and read-only afterward.
type NetworkData struct {
	ways  []Way
	nodes map[osm.NodeID]Node
}

// WayCount returns the number of selected ways
func (network *NetworkData) WayCount() int {
	return len(network.ways)
}

// NodeCount returns the number of resolved dependent nodes
func (network *NetworkData) NodeCount() int {
	return len(network.nodes)
}

func newScanner(filename string, file *os.File) (OSMScanner, error) {
	// Guess file extension and prepare correct scanner
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(context.Background(), file), nil
	case ".pbf", ".osm.pbf":
		return osmpbf.New(context.Background(), file, 4), nil
	default:
		return nil, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

// ReadNetwork reads ways matching the given filter together with all
// their referenced nodes from an OSM file of PBF or XML format.
//
// The file is scanned twice: the first pass collects matching ways and
// marks the node ids they reference, the second pass resolves those
// node ids to coordinates. A way referencing a node absent from the
// file makes the whole read fail.
func ReadNetwork(filename string, filter FilterSpec, verbose bool) (*NetworkData, error) {
	if verbose {
		fmt.Printf("Opening file: '%s'...\n", filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open OSM file '%s'", filename)
	}
	defer file.Close()

	/* Process ways */
	if verbose {
		fmt.Printf("\tProcessing ways... ")
	}
	st := time.Now()
	ways := []Way{}
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := newScanner(filename, file)
		if err != nil {
			return nil, err
		}
		defer scannerWays.Close()

		for scannerWays.Scan() {
			obj := scannerWays.Object()
			if obj.ObjectID().Type() != "way" {
				continue
			}
			way := obj.(*osm.Way)
			if !filter.Matches(way.Tags) {
				continue
			}
			preparedWay := Way{
				ID:     way.ID,
				Nodes:  make([]osm.NodeID, 0, len(way.Nodes)),
				TagMap: make(osm.Tags, len(way.Tags)),
			}
			copy(preparedWay.TagMap, way.Tags)
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
				preparedWay.Nodes = append(preparedWay.Nodes, node.ID)
			}
			ways = append(ways, preparedWay)
		}
		err = scannerWays.Err()
		if err != nil {
			return nil, errors.Wrapf(err, "Scanner error on ways for file '%s'", filename)
		}
	}
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	// Seek file to start
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	/* Process nodes */
	if verbose {
		fmt.Printf("\tProcessing nodes... ")
	}
	st = time.Now()
	nodes := make(map[osm.NodeID]Node)
	{
		scannerNodes, err := newScanner(filename, file)
		if err != nil {
			return nil, err
		}
		defer scannerNodes.Close()

		for scannerNodes.Scan() {
			obj := scannerNodes.Object()
			if obj.ObjectID().Type() != "node" {
				continue
			}
			node := obj.(*osm.Node)
			if _, ok := nodesSeen[node.ID]; ok {
				delete(nodesSeen, node.ID)
				nodes[node.ID] = Node{
					ID:  node.ID,
					Lat: node.Lat,
					Lon: node.Lon,
				}
			}
		}
		err = scannerNodes.Err()
		if err != nil {
			return nil, errors.Wrapf(err, "Scanner error on nodes for file '%s'", filename)
		}
	}
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	// Every node referenced by a selected way must have been resolved
	for _, way := range ways {
		for _, nodeID := range way.Nodes {
			if _, ok := nodes[nodeID]; !ok {
				return nil, errors.Wrapf(ErrMissingNode, "way %d, node %d, file '%s'", way.ID, nodeID, filename)
			}
		}
	}

	return &NetworkData{ways: ways, nodes: nodes}, nil
}
