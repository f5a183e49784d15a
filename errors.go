package osmslope

import (
	"github.com/pkg/errors"
)

// Sentinel errors for the distinct failure classes of a profiling run.
// Every failure is fatal: the pipeline has no partial-result value, so
// callers are expected to abort on the first error.
var (
	// ErrEmptyFilterKey reports a malformed filter condition such as
	// "=primary" or a trailing comma in the filter string.
	ErrEmptyFilterKey = errors.New("filter condition has an empty key")
	// ErrNoGeoTransform reports a raster whose affine geotransform is
	// missing or singular and therefore can not be inverted.
	ErrNoGeoTransform = errors.New("raster does not have an invertible geotransform")
	// ErrOutsideRaster reports a coordinate which maps to a pixel
	// outside the raster bounds.
	ErrOutsideRaster = errors.New("coordinate is outside of raster bounds")
	// ErrMissingNode reports a way referencing a node which is not
	// present in the network file.
	ErrMissingNode = errors.New("way references a node missing from the network")
	// ErrMissingElevation reports a node reached during aggregation
	// without a sampled elevation. Since the elevation index is built
	// for every resolved node before aggregation starts, hitting this
	// error means a broken pipeline invariant rather than bad input.
	ErrMissingElevation = errors.New("no sampled elevation for node")
)
