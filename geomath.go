package osmslope

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	earthRadius = 6371.0
	pi180       = math.Pi / 180.0
)

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// greatCircleDistance returns haversine distance between two geo-points (kilometers)
func greatCircleDistance(p, q orb.Point) float64 {
	lat1 := degreesToRadians(p.Lat())
	lon1 := degreesToRadians(p.Lon())
	lat2 := degreesToRadians(q.Lat())
	lon2 := degreesToRadians(q.Lon())
	diffLat := lat2 - lat1
	diffLon := lon2 - lon1
	a := math.Pow(math.Sin(diffLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(diffLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	ans := c * earthRadius
	return ans
}

// segmentLength returns haversine distance between two geo-points (meters)
func segmentLength(p, q orb.Point) float64 {
	return greatCircleDistance(p, q) * 1000.0
}

// getSphericalLength returns length for given line (kilometers)
func getSphericalLength(line []orb.Point) float64 {
	totalLength := 0.0
	if len(line) < 2 {
		return totalLength
	}
	for i := 1; i < len(line); i++ {
		totalLength += greatCircleDistance(line[i-1], line[i])
	}
	return totalLength
}
