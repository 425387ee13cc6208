package chart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() *Request {
	return &Request{
		Name:      "John Doe",
		City:      "Los Angeles",
		Date:      "1990-10-28",
		Time:      "09:30:00",
		Latitude:  34.0522,
		Longitude: -118.2437,
		Timezone:  "America/Los_Angeles",
	}
}

func rawChartPayload(t *testing.T, mutate func(data map[string]any, root map[string]any)) []byte {
	t.Helper()
	data := map[string]any{
		"name":   "John Doe",
		"city":   "Los Angeles",
		"lat":    34.0522,
		"lng":    -118.2437,
		"tz_str": "America/Los_Angeles",
		"planets_names_list":     []any{"Sun", "Moon", "Mean_Node"},
		"axial_cusps_names_list": []any{"Ascendant"},
		"houses_names_list":      []any{"First_House", "Eleventh_House"},
		"sun": map[string]any{
			"name": "Sun", "position": 4.9, "abs_pos": 214.9,
			"speed": 0.99, "retrograde": false, "sign": "Sco", "house": "Fourth_House",
		},
		"moon": map[string]any{
			"name": "Moon", "position": 21.3, "abs_pos": 51.3,
			"sign": "Tau", "house": "Tenth_House",
		},
		"mean_node": map[string]any{
			"name": "Mean_Node", "position": 8.2, "abs_pos": 308.2,
			"speed": -0.05, "retrograde": true, "sign": "Aqu", "house": "Seventh_House",
		},
		"ascendant": map[string]any{
			"name": "Ascendant", "position": 12.0, "abs_pos": 252.0,
			"sign": "Sag", "house": "First_House",
		},
		"first_house": map[string]any{
			"position": 12.0, "abs_pos": 252.0, "sign": "Sag",
		},
		"eleventh_house": map[string]any{
			"position": 3.4, "abs_pos": 183.4, "sign": "Lib",
		},
	}
	root := map[string]any{
		"data": data,
		"aspects": []any{
			map[string]any{"p1_name": "Sun", "p2_name": "Moon", "aspect": "Square", "orbit": 2.4},
			map[string]any{"p1_name": "Mars", "p2_name": "Saturn", "aspect": "Semi Square", "orbit": 0.8},
		},
	}
	if mutate != nil {
		mutate(data, root)
	}
	raw, err := json.Marshal(root)
	require.NoError(t, err)
	return raw
}

func TestNormalize(t *testing.T) {
	ctx := context.Background()

	t.Run("Should map every listed point and house", func(t *testing.T) {
		result, err := Normalize(ctx, rawChartPayload(t, nil), testRequest())
		require.NoError(t, err)
		assert.Len(t, result.CelestialPoints, 4)
		assert.Len(t, result.Houses, 2)
		assert.Len(t, result.Aspects, 2)
		assert.Equal(t, CalculationEngine, result.EngineMetadata.CalculationEngine)
		assert.NotEqual(t, "", result.ChartID.String())
	})

	t.Run("Should lower-case keys listed with inconsistent case", func(t *testing.T) {
		result, err := Normalize(ctx, rawChartPayload(t, nil), testRequest())
		require.NoError(t, err)
		ids := make([]string, 0, len(result.CelestialPoints))
		for _, p := range result.CelestialPoints {
			ids = append(ids, p.ID)
		}
		assert.Contains(t, ids, "mean_node")
		assert.Contains(t, ids, "ascendant")
	})

	t.Run("Should derive display names from underscored keys", func(t *testing.T) {
		result, err := Normalize(ctx, rawChartPayload(t, nil), testRequest())
		require.NoError(t, err)
		var node CelestialPoint
		for _, p := range result.CelestialPoints {
			if p.ID == "mean_node" {
				node = p
			}
		}
		assert.Equal(t, "Mean Node", node.Name)
		assert.Equal(t, "fourth_house", result.CelestialPoints[0].House.ID)
		assert.Equal(t, "Fourth House", result.CelestialPoints[0].House.Name)
	})

	t.Run("Should default speed and retrograde when absent", func(t *testing.T) {
		result, err := Normalize(ctx, rawChartPayload(t, nil), testRequest())
		require.NoError(t, err)
		var moon CelestialPoint
		for _, p := range result.CelestialPoints {
			if p.ID == "moon" {
				moon = p
			}
		}
		assert.Zero(t, moon.Speed)
		assert.False(t, moon.IsRetrograde)
	})

	t.Run("Should drop a single point missing its data block without failing", func(t *testing.T) {
		raw := rawChartPayload(t, func(data, _ map[string]any) {
			delete(data, "moon")
		})
		result, err := Normalize(ctx, raw, testRequest())
		require.NoError(t, err)
		assert.Len(t, result.CelestialPoints, 3)
	})

	t.Run("Should drop a single point missing a required field without failing", func(t *testing.T) {
		raw := rawChartPayload(t, func(data, _ map[string]any) {
			item := data["sun"].(map[string]any)
			delete(item, "abs_pos")
		})
		result, err := Normalize(ctx, raw, testRequest())
		require.NoError(t, err)
		assert.Len(t, result.CelestialPoints, 3)
	})

	t.Run("Should skip a listed house with no data", func(t *testing.T) {
		raw := rawChartPayload(t, func(data, _ map[string]any) {
			delete(data, "eleventh_house")
		})
		result, err := Normalize(ctx, raw, testRequest())
		require.NoError(t, err)
		require.Len(t, result.Houses, 1)
		assert.Equal(t, "first_house", result.Houses[0].ID)
	})

	t.Run("Should name cusps by their fixed ordinal position", func(t *testing.T) {
		result, err := Normalize(ctx, rawChartPayload(t, nil), testRequest())
		require.NoError(t, err)
		assert.Equal(t, "1st House", result.Houses[0].Name)
		assert.Equal(t, "11th House", result.Houses[1].Name)
	})

	t.Run("Should slugify aspect labels and keep the original name", func(t *testing.T) {
		result, err := Normalize(ctx, rawChartPayload(t, nil), testRequest())
		require.NoError(t, err)
		assert.Equal(t, "square", result.Aspects[0].AspectID)
		assert.Equal(t, "semi_square", result.Aspects[1].AspectID)
		assert.Equal(t, "Semi Square", result.Aspects[1].AspectName)
		assert.InDelta(t, 0.8, result.Aspects[1].Orb, 1e-9)
		assert.Equal(t, "mars", result.Aspects[1].Point1ID)
	})

	t.Run("Should drop a malformed aspect entry only", func(t *testing.T) {
		raw := rawChartPayload(t, func(_, root map[string]any) {
			aspects := root["aspects"].([]any)
			delete(aspects[0].(map[string]any), "orbit")
		})
		result, err := Normalize(ctx, raw, testRequest())
		require.NoError(t, err)
		assert.Len(t, result.Aspects, 1)
	})

	t.Run("Should echo provider subject fields over request values", func(t *testing.T) {
		raw := rawChartPayload(t, func(data, _ map[string]any) {
			data["tz_str"] = "America/New_York"
		})
		result, err := Normalize(ctx, raw, testRequest())
		require.NoError(t, err)
		assert.Equal(t, "America/New_York", result.Subject.Timezone)
		assert.Equal(t, "1990-10-28", result.Subject.Date)
	})

	t.Run("Should fail on a payload with no data block", func(t *testing.T) {
		_, err := Normalize(ctx, []byte(`{"status":"OK"}`), testRequest())
		require.Error(t, err)
	})

	t.Run("Should fail on invalid JSON", func(t *testing.T) {
		_, err := Normalize(ctx, []byte(`{"data":`), testRequest())
		require.Error(t, err)
	})
}

func TestOrdinalHouseName(t *testing.T) {
	cases := map[int]string{
		1:  "1st House",
		2:  "2nd House",
		3:  "3rd House",
		4:  "4th House",
		11: "11th House",
		12: "12th House",
	}
	for n, want := range cases {
		assert.Equal(t, want, OrdinalHouseName(n))
	}
}
