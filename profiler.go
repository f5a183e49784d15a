package osmslope

import (
	"fmt"
	"time"
)

// Profiler computes per-way slope statistics for an OSM network and a
// digital elevation model. Use NewProfiler with options to configure
// a run.
type Profiler struct {
	osmFilename       string
	elevationFilename string
	filter            FilterSpec
	resampling        Resampling
	legacyDistances   bool
	verbose           bool
	progress          func(sampled, total int)
}

func (profiler *Profiler) String() string {
	return fmt.Sprintf(`
Slope profiler parameters:
	osm_filename: '%s'
	elevation_filename: '%s'
	filter: '%s'
	resampling: '%s'
	legacy_distances?: %t
	`,
		profiler.osmFilename,
		profiler.elevationFilename,
		profiler.filter,
		profiler.resampling,
		profiler.legacyDistances,
	)
}

// NewProfiler creates profiler for given OSM and elevation files with
// default parameters: "highway" presence filter, nearest-neighbor
// resampling, corrected per-segment distance accumulation.
func NewProfiler(osmFilename, elevationFilename string, options ...func(*Profiler)) *Profiler {
	profiler := &Profiler{
		osmFilename:       osmFilename,
		elevationFilename: elevationFilename,
		filter:            DefaultFilter(),
		resampling:        RESAMPLING_NEAREST,
		legacyDistances:   false,
		verbose:           false,
	}
	for _, option := range options {
		option(profiler)
	}
	return profiler
}

// WithFilter sets the way selection filter
func WithFilter(filter FilterSpec) func(*Profiler) {
	return func(profiler *Profiler) {
		profiler.filter = filter
	}
}

// WithResampling sets the raster resampling strategy
func WithResampling(resampling Resampling) func(*Profiler) {
	return func(profiler *Profiler) {
		profiler.resampling = resampling
	}
}

// WithLegacyDistances enables the historical cumulative climb/descent
// distance accumulation for byte-compatible output with old runs
func WithLegacyDistances(legacyDistances bool) func(*Profiler) {
	return func(profiler *Profiler) {
		profiler.legacyDistances = legacyDistances
	}
}

// WithVerbose enables phase timing output
func WithVerbose(verbose bool) func(*Profiler) {
	return func(profiler *Profiler) {
		profiler.verbose = verbose
	}
}

// WithProgress sets a callback invoked after every sampled node
func WithProgress(progress func(sampled, total int)) func(*Profiler) {
	return func(profiler *Profiler) {
		profiler.progress = progress
	}
}

// ProfileResult couples computed way statistics with the network they
// were computed from. Statistics follow the input order of ways.
type ProfileResult struct {
	Statistics []WayStatistics
	Network    *NetworkData
}

// Run executes the whole pipeline: select ways and resolve their nodes
// from the OSM file, sample elevation once per distinct node, then
// aggregate every selected way. Any failure aborts the run.
func (profiler *Profiler) Run() (*ProfileResult, error) {
	network, err := ReadNetwork(profiler.osmFilename, profiler.filter, profiler.verbose)
	if err != nil {
		return nil, err
	}
	raster, err := OpenRaster(profiler.elevationFilename)
	if err != nil {
		return nil, err
	}
	defer raster.Close()
	return profiler.Profile(network, raster)
}

// Profile runs the sampling and aggregation passes over an already
// loaded network against the given elevation source.
func (profiler *Profiler) Profile(network *NetworkData, source ElevationSource) (*ProfileResult, error) {
	if profiler.verbose {
		fmt.Printf("\tSampling elevations... ")
	}
	st := time.Now()
	elevations, err := buildElevationIndex(network.nodes, source, profiler.resampling, profiler.progress)
	if err != nil {
		return nil, err
	}
	if profiler.verbose {
		fmt.Printf("Done in %v\n\t\tNodes: %d\n", time.Since(st), len(elevations))
	}

	if profiler.verbose {
		fmt.Printf("\tAggregating ways... ")
	}
	st = time.Now()
	statistics := make([]WayStatistics, 0, len(network.ways))
	for _, way := range network.ways {
		stats, err := aggregateWay(way, network.nodes, elevations, profiler.legacyDistances)
		if err != nil {
			return nil, err
		}
		statistics = append(statistics, stats)
	}
	if profiler.verbose {
		fmt.Printf("Done in %v\n\t\tWays: %d\n", time.Since(st), len(statistics))
	}

	return &ProfileResult{Statistics: statistics, Network: network}, nil
}
