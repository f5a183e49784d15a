package osmslope

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStatistics() []WayStatistics {
	return []WayStatistics{
		{WayID: 42, SlopeProfile: SlopeProfile{Distance: 500, ClimbDistance: 200, DescentDistance: 300, Climb: 50, Descent: 30}},
		{WayID: 7, SlopeProfile: SlopeProfile{Distance: 120, ClimbDistance: 120, DescentDistance: 0, Climb: 12.5, Descent: 0}},
	}
}

func TestEncodeStatisticsMap(t *testing.T) {
	data, err := EncodeStatistics(sampleStatistics(), SHAPE_MAP)
	require.NoError(t, err)

	expected := `{
		"7":  {"distance": 120, "climb_distance": 120, "descent_distance": 0, "climb": 12.5, "descent": 0},
		"42": {"distance": 500, "climb_distance": 200, "descent_distance": 300, "climb": 50, "descent": 30}
	}`
	assert.JSONEq(t, expected, string(data))

	// Map shape must not embed the way id in values
	assert.NotContains(t, string(data), "way_id")
}

func TestEncodeStatisticsArray(t *testing.T) {
	data, err := EncodeStatistics(sampleStatistics(), SHAPE_ARRAY)
	require.NoError(t, err)

	expected := `[
		{"way_id": 7, "distance": 120, "climb_distance": 120, "descent_distance": 0, "climb": 12.5, "descent": 0},
		{"way_id": 42, "distance": 500, "climb_distance": 200, "descent_distance": 300, "climb": 50, "descent": 30}
	]`
	assert.JSONEq(t, expected, string(data))

	// Records must come out sorted ascending by way id
	var records []map[string]float64
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, 7.0, records[0]["way_id"])
	assert.Equal(t, 42.0, records[1]["way_id"])
}

func TestEncodeStatisticsUnknownShape(t *testing.T) {
	_, err := EncodeStatistics(sampleStatistics(), OutputShape(99))
	assert.Error(t, err)
}

func TestParseOutputShape(t *testing.T) {
	shape, err := ParseOutputShape("map")
	require.NoError(t, err)
	assert.Equal(t, SHAPE_MAP, shape)
	assert.Equal(t, "map", shape.String())

	shape, err = ParseOutputShape("array")
	require.NoError(t, err)
	assert.Equal(t, SHAPE_ARRAY, shape)
	assert.Equal(t, "array", shape.String())

	_, err = ParseOutputShape("csv")
	assert.Error(t, err)
}

func TestWriteStatistics(t *testing.T) {
	filename := t.TempDir() + "/stats.json"
	require.NoError(t, WriteStatistics(filename, sampleStatistics(), SHAPE_ARRAY))

	var records []WayStatistics
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Len(t, records, 2)
}
