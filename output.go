package osmslope

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// OutputShape selects one of the two supported JSON layouts for way
// statistics.
type OutputShape uint16

const (
	// SHAPE_MAP is an object keyed by decimal way id, values carrying
	// the five statistic fields
	SHAPE_MAP = OutputShape(iota + 1)
	// SHAPE_ARRAY is an array of records embedding way_id, sorted
	// ascending by way id
	SHAPE_ARRAY
)

func (iotaIdx OutputShape) String() string {
	return [...]string{"map", "array"}[iotaIdx-1]
}

// ParseOutputShape returns output shape for its string name
func ParseOutputShape(name string) (OutputShape, error) {
	switch name {
	case "map":
		return SHAPE_MAP, nil
	case "array":
		return SHAPE_ARRAY, nil
	default:
		return 0, fmt.Errorf("Unknown output shape: '%s'. Expected values: map / array", name)
	}
}

// EncodeStatistics renders way statistics as JSON in the requested
// shape. Both shapes are deterministic: map keys are emitted sorted by
// encoding/json, the array shape is sorted by way id here.
func EncodeStatistics(statistics []WayStatistics, shape OutputShape) ([]byte, error) {
	switch shape {
	case SHAPE_MAP:
		byID := make(map[string]SlopeProfile, len(statistics))
		for i := range statistics {
			byID[strconv.FormatInt(int64(statistics[i].WayID), 10)] = statistics[i].SlopeProfile
		}
		return json.Marshal(byID)
	case SHAPE_ARRAY:
		sorted := make([]WayStatistics, len(statistics))
		copy(sorted, statistics)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].WayID < sorted[j].WayID
		})
		return json.Marshal(sorted)
	default:
		return nil, fmt.Errorf("Unknown output shape: %d", shape)
	}
}

// WriteStatistics serializes way statistics and writes them to a file
func WriteStatistics(filename string, statistics []WayStatistics, shape OutputShape) error {
	data, err := EncodeStatistics(statistics, shape)
	if err != nil {
		return errors.Wrap(err, "Can't serialize result")
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.Wrapf(err, "Can't write output file '%s'", filename)
	}
	return nil
}
