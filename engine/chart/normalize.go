package chart

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/infopoison/alchemist-workbench/engine/core"
	"github.com/infopoison/alchemist-workbench/pkg/logger"
)

// CalculationEngine is the provenance string attached to every chart this
// adapter produces.
const CalculationEngine = "AstrologerAPI_v4_RapidAPI"

// houseIndex maps the canonical house slugs to their fixed 1-12 position.
var houseIndex = map[string]int{
	"first_house": 1, "second_house": 2, "third_house": 3, "fourth_house": 4,
	"fifth_house": 5, "sixth_house": 6, "seventh_house": 7, "eighth_house": 8,
	"ninth_house": 9, "tenth_house": 10, "eleventh_house": 11, "twelfth_house": 12,
}

var titleCaser = cases.Title(language.English)

// Normalize is the anti-corruption mapping from the provider's raw payload to
// the canonical Chart. The provider enumerates which point and house keys it
// returned and is case-inconsistent between those lists and the actual
// fields, so every lookup is done on the lower-cased key. A missing or
// malformed single item is logged and dropped; it never aborts the remaining
// items.
func Normalize(ctx context.Context, raw []byte, req *Request) (*Chart, error) {
	log := logger.FromContext(ctx)
	if !gjson.ValidBytes(raw) {
		return nil, core.NewError(core.CodeUpstreamUnavailable, "chart provider returned invalid JSON", nil)
	}
	root := gjson.ParseBytes(raw)
	data := root.Get("data")
	if !data.Exists() {
		return nil, core.NewError(core.CodeUpstreamUnavailable, "chart provider response is missing the data block", nil)
	}
	return &Chart{
		ChartID:         uuid.New(),
		EngineMetadata:  core.EngineMetadata{CalculationEngine: CalculationEngine},
		Subject:         normalizeSubject(data, req),
		CelestialPoints: normalizePoints(log, data),
		Houses:          normalizeHouses(log, data),
		Aspects:         normalizeAspects(log, root),
	}, nil
}

// normalizeSubject prefers the provider's echo of the subject, falling back
// to the original request values.
func normalizeSubject(data gjson.Result, req *Request) Subject {
	sub := Subject{
		Name:      req.Name,
		City:      req.City,
		Date:      req.Date,
		Time:      req.Time,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Timezone:  req.Timezone,
	}
	if v := data.Get("name"); v.Exists() {
		sub.Name = v.String()
	}
	if v := data.Get("city"); v.Exists() {
		sub.City = v.String()
	}
	if v := data.Get("lat"); v.Exists() {
		sub.Latitude = v.Float()
	}
	if v := data.Get("lng"); v.Exists() {
		sub.Longitude = v.Float()
	}
	if v := data.Get("tz_str"); v.Exists() {
		sub.Timezone = v.String()
	}
	return sub
}

func normalizePoints(log logger.Logger, data gjson.Result) []CelestialPoint {
	keys := make([]string, 0, 16)
	for _, list := range []string{"planets_names_list", "axial_cusps_names_list"} {
		for _, entry := range data.Get(list).Array() {
			keys = append(keys, entry.String())
		}
	}
	points := make([]CelestialPoint, 0, len(keys))
	for _, rawKey := range keys {
		key := strings.ToLower(rawKey)
		item := data.Get(key)
		if !item.Exists() {
			log.Warn("no data found for listed celestial point", "point", rawKey)
			continue
		}
		point, err := mapPoint(key, rawKey, item)
		if err != nil {
			log.Error("failed to map celestial point", "point", rawKey, "error", err, "raw", item.Raw)
			continue
		}
		points = append(points, point)
	}
	return points
}

func mapPoint(key, rawKey string, item gjson.Result) (CelestialPoint, error) {
	for _, field := range []string{"position", "abs_pos", "sign", "house"} {
		if !item.Get(field).Exists() {
			return CelestialPoint{}, fmt.Errorf("missing key %q", field)
		}
	}
	name := item.Get("name").String()
	if name == "" {
		name = rawKey
	}
	signName := item.Get("sign").String()
	houseName := item.Get("house").String()
	return CelestialPoint{
		ID:                key,
		Name:              displayName(name),
		PositionLongitude: item.Get("position").Float(),
		AbsoluteLongitude: item.Get("abs_pos").Float(),
		Speed:             item.Get("speed").Float(),
		IsRetrograde:      item.Get("retrograde").Bool(),
		ZodiacSign: ZodiacSign{
			ID:   strings.ToLower(signName),
			Name: signName,
		},
		House: House{
			ID:   strings.ToLower(houseName),
			Name: strings.ReplaceAll(houseName, "_", " "),
		},
	}, nil
}

func normalizeHouses(log logger.Logger, data gjson.Result) []HouseCusp {
	cusps := make([]HouseCusp, 0, 12)
	for _, entry := range data.Get("houses_names_list").Array() {
		rawKey := entry.String()
		key := strings.ToLower(rawKey)
		idx, ok := houseIndex[key]
		if !ok {
			log.Warn("provider listed an unknown house key", "house", rawKey)
			continue
		}
		item := data.Get(key)
		if !item.Exists() {
			// A legitimately omitted cusp is a provider defect to surface,
			// not something to fabricate.
			log.Warn("no data found for listed house cusp", "house", rawKey)
			continue
		}
		cusp, err := mapCusp(key, idx, item)
		if err != nil {
			log.Error("failed to map house cusp", "house", rawKey, "error", err, "raw", item.Raw)
			continue
		}
		cusps = append(cusps, cusp)
	}
	return cusps
}

func mapCusp(key string, idx int, item gjson.Result) (HouseCusp, error) {
	for _, field := range []string{"position", "abs_pos", "sign"} {
		if !item.Get(field).Exists() {
			return HouseCusp{}, fmt.Errorf("missing key %q", field)
		}
	}
	signName := item.Get("sign").String()
	return HouseCusp{
		ID:                key,
		Name:              OrdinalHouseName(idx),
		PositionLongitude: item.Get("position").Float(),
		AbsoluteLongitude: item.Get("abs_pos").Float(),
		ZodiacSign: ZodiacSign{
			ID:   strings.ToLower(signName),
			Name: signName,
		},
	}, nil
}

func normalizeAspects(log logger.Logger, root gjson.Result) []Aspect {
	raw := root.Get("aspects").Array()
	aspects := make([]Aspect, 0, len(raw))
	for _, item := range raw {
		ok := true
		for _, field := range []string{"p1_name", "p2_name", "aspect", "orbit"} {
			if !item.Get(field).Exists() {
				log.Error("failed to map aspect", "missing", field, "raw", item.Raw)
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		name := item.Get("aspect").String()
		aspects = append(aspects, Aspect{
			Point1ID:   strings.ToLower(item.Get("p1_name").String()),
			Point2ID:   strings.ToLower(item.Get("p2_name").String()),
			AspectID:   AspectSlug(name),
			AspectName: name,
			Orb:        item.Get("orbit").Float(),
		})
	}
	return aspects
}

// AspectSlug turns an aspect label into its canonical id, e.g.
// "Semi Square" -> "semi_square".
func AspectSlug(name string) string {
	return strings.ReplaceAll(slug.Make(name), "-", "_")
}

// displayName turns a provider key like "Mean_Node" into "Mean Node".
func displayName(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

// OrdinalHouseName renders the fixed 1-12 house position as its display name,
// e.g. 11 -> "11th House".
func OrdinalHouseName(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s House", n, suffix)
}
