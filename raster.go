package osmslope

import (
	"fmt"
	"sync"

	"github.com/airbusgeo/godal"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Resampling is the strategy used to derive a single elevation value
// when the requested coordinate does not align with a raster cell
// center. Both strategies have been used in practice, so the choice is
// a run parameter rather than a constant.
type Resampling uint16

const (
	RESAMPLING_NEAREST = Resampling(iota + 1)
	RESAMPLING_BILINEAR
)

func (iotaIdx Resampling) String() string {
	return [...]string{"nearest", "bilinear"}[iotaIdx-1]
}

// ParseResampling returns resampling strategy for its string name
func ParseResampling(name string) (Resampling, error) {
	switch name {
	case "nearest":
		return RESAMPLING_NEAREST, nil
	case "bilinear":
		return RESAMPLING_BILINEAR, nil
	default:
		return 0, fmt.Errorf("Unknown resampling strategy: '%s'. Expected values: nearest / bilinear", name)
	}
}

func (iotaIdx Resampling) alg() godal.ResamplingAlg {
	if iotaIdx == RESAMPLING_BILINEAR {
		return godal.Bilinear
	}
	return godal.Nearest
}

// ElevationSource yields an elevation value for a geographic
// coordinate. It performs no caching: callers needing one value per
// distinct node must deduplicate through the elevation index.
type ElevationSource interface {
	ElevationAt(pt orb.Point, resampling Resampling) (float64, error)
}

var registerDriversOnce sync.Once

// RasterDataset wraps an opened single-band georeferenced raster with
// its inverted geotransform. The inversion happens once per run.
type RasterDataset struct {
	ds      *godal.Dataset
	band    godal.Band
	inverse [6]float64
	sizeX   int
	sizeY   int
}

// OpenRaster opens a georeferenced raster file, fetches its affine
// geotransform and inverts it for coordinate to pixel mapping. The
// first band of the dataset is used for sampling.
func OpenRaster(filename string) (*RasterDataset, error) {
	registerDriversOnce.Do(godal.RegisterAll)
	ds, err := godal.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open elevation file '%s'", filename)
	}
	transform, err := ds.GeoTransform()
	if err != nil {
		ds.Close()
		return nil, errors.Wrapf(ErrNoGeoTransform, "file '%s': %s", filename, err.Error())
	}
	inverse, err := invertGeoTransform(transform)
	if err != nil {
		ds.Close()
		return nil, errors.Wrapf(err, "file '%s'", filename)
	}
	bands := ds.Bands()
	if len(bands) == 0 {
		ds.Close()
		return nil, errors.Errorf("Elevation file '%s' has no raster bands", filename)
	}
	structure := ds.Structure()
	return &RasterDataset{
		ds:      ds,
		band:    bands[0],
		inverse: inverse,
		sizeX:   structure.SizeX,
		sizeY:   structure.SizeY,
	}, nil
}

// Close releases the underlying dataset
func (raster *RasterDataset) Close() error {
	return raster.ds.Close()
}

// ElevationAt maps the coordinate through the inverted geotransform
// and reads exactly one pixel from the raster band. A coordinate
// outside raster bounds or a failed band read aborts the run.
func (raster *RasterDataset) ElevationAt(pt orb.Point, resampling Resampling) (float64, error) {
	x, y := pixelIndex(raster.inverse, pt)
	if x < 0 || y < 0 || x >= raster.sizeX || y >= raster.sizeY {
		return 0, errors.Wrapf(ErrOutsideRaster, "Lon: %f | Lat: %f maps to pixel (%d, %d), raster is %dx%d", pt.Lon(), pt.Lat(), x, y, raster.sizeX, raster.sizeY)
	}
	buf := make([]float64, 1)
	err := raster.band.Read(x, y, buf, 1, 1, godal.Resampling(resampling.alg()))
	if err != nil {
		return 0, errors.Wrapf(err, "Can't read pixel (%d, %d) for coordinate Lon: %f | Lat: %f", x, y, pt.Lon(), pt.Lat())
	}
	return buf[0], nil
}

// applyGeoTransform maps (x, y) through 6-coefficient affine transform
func applyGeoTransform(transform [6]float64, x, y float64) (float64, float64) {
	outX := transform[0] + x*transform[1] + y*transform[2]
	outY := transform[3] + x*transform[4] + y*transform[5]
	return outX, outY
}

// invertGeoTransform returns the inverse of an affine geotransform so
// that applyGeoTransform(inverse, lon, lat) yields pixel coordinates.
func invertGeoTransform(transform [6]float64) ([6]float64, error) {
	det := transform[1]*transform[5] - transform[2]*transform[4]
	if det == 0 {
		return [6]float64{}, ErrNoGeoTransform
	}
	inverse := [6]float64{}
	inverse[1] = transform[5] / det
	inverse[2] = -transform[2] / det
	inverse[4] = -transform[4] / det
	inverse[5] = transform[1] / det
	inverse[0] = -(transform[0]*inverse[1] + transform[3]*inverse[2])
	inverse[3] = -(transform[0]*inverse[4] + transform[3]*inverse[5])
	return inverse, nil
}

// pixelIndex converts a lon/lat coordinate to integral pixel indices.
// Fractional pixel coordinates are truncated toward zero, not rounded:
// for negative fractions this biases toward the larger pixel index,
// which matters for reproducibility at tile edges.
func pixelIndex(inverse [6]float64, pt orb.Point) (int, int) {
	px, py := applyGeoTransform(inverse, pt.Lon(), pt.Lat())
	return int(px), int(py)
}
