package main

import (
	"fmt"
	"log"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/osmslope/osmslope"
	"github.com/spf13/cobra"
	pb "gopkg.in/cheggaaa/pb.v1"
)

var (
	filterStr     string
	resamplingStr string
	shapeStr      string
	geojsonOut    bool
	legacy        bool
	quiet         bool
)

var rootCmd = &cobra.Command{
	Use:   "osmslope <osm-file> <elevation-file> <output-file>",
	Short: "Compute per-way climb/descent statistics from an OSM network and a DEM raster",
	Long: `Compute per-way climb/descent statistics from an OSM network and a DEM raster.

Ways are selected by a tag filter (any 'highway' tag by default),
elevation is sampled from the raster at every referenced node and each
way's node sequence is folded into cumulative distance, climb distance,
descent distance, total climb and total descent.`,
	Args: cobra.ExactArgs(3),
	Run:  run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&filterStr, "filter", "f", "", "way filter: comma-separated list of 'key' or 'key=value' conditions (default: any 'highway' tag)")
	flags.StringVarP(&resamplingStr, "resampling", "r", "nearest", "raster resampling strategy: nearest / bilinear")
	flags.StringVarP(&shapeStr, "shape", "s", "map", "output shape: map (object keyed by way id) / array (records sorted by way id)")
	flags.BoolVarP(&geojsonOut, "geojson", "g", false, "write a GeoJSON FeatureCollection with way geometries instead of plain statistics")
	flags.BoolVar(&legacy, "legacy-distances", false, "reproduce historical cumulative climb/descent distance accumulation")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
}

func run(cmd *cobra.Command, args []string) {
	osmFilename := args[0]
	elevationFilename := args[1]
	outputFilename := args[2]

	filter := osmslope.DefaultFilter()
	if filterStr != "" {
		var err error
		filter, err = osmslope.ParseFilter(filterStr)
		if err != nil {
			log.Fatal(err)
		}
	}
	resampling, err := osmslope.ParseResampling(resamplingStr)
	if err != nil {
		log.Fatal(err)
	}
	shape, err := osmslope.ParseOutputShape(shapeStr)
	if err != nil {
		log.Fatal(err)
	}

	options := []func(*osmslope.Profiler){
		osmslope.WithFilter(filter),
		osmslope.WithResampling(resampling),
		osmslope.WithLegacyDistances(legacy),
		osmslope.WithVerbose(!quiet),
	}
	var bar *pb.ProgressBar
	if !quiet {
		options = append(options, osmslope.WithProgress(func(sampled, total int) {
			if bar == nil {
				bar = pb.New(total).SetWidth(79)
				bar.Output = os.Stderr
				bar.Start()
			}
			bar.Increment()
			if sampled == total {
				bar.Finish()
			}
		}))
	}

	profiler := osmslope.NewProfiler(osmFilename, elevationFilename, options...)
	result, err := profiler.Run()
	if err != nil {
		log.Fatal(err)
	}

	if geojsonOut {
		data, err := osmslope.PrepareGeoJSONProfiles(result.Network, result.Statistics)
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(outputFilename, data, 0644); err != nil {
			log.Fatalf("Can't write output file '%s': %s", outputFilename, err)
		}
	} else {
		if err := osmslope.WriteStatistics(outputFilename, result.Statistics, shape); err != nil {
			log.Fatal(err)
		}
	}

	if !quiet {
		fmt.Printf("Profiled %s ways over %s nodes into '%s'\n",
			humanize.Comma(int64(result.Network.WayCount())),
			humanize.Comma(int64(result.Network.NodeCount())),
			outputFilename,
		)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
