package chart

import (
	"github.com/google/uuid"

	"github.com/infopoison/alchemist-workbench/engine/core"
)

// Request carries the birth data needed to cast a natal chart.
type Request struct {
	Name      string  `json:"name"      binding:"required"`
	City      string  `json:"city"      binding:"required"`
	Date      string  `json:"date"      binding:"required,datetime=2006-01-02"`
	Time      string  `json:"time"      binding:"required,datetime=15:04:05"`
	Latitude  float64 `json:"latitude"  binding:"latitude"`
	Longitude float64 `json:"longitude" binding:"longitude"`
	Timezone  string  `json:"timezone"  binding:"required,timezone"`
}

// Subject echoes the birth data a chart was cast for. Immutable once built.
type Subject struct {
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// ZodiacSign is one of the twelve signs, id lower-cased.
type ZodiacSign struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// House is one of the twelve houses, id an ordinal slug (first_house ...
// twelfth_house).
type House struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CelestialPoint is a planet, node or angle placed in the chart.
type CelestialPoint struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	PositionLongitude float64    `json:"position_longitude"`
	AbsoluteLongitude float64    `json:"absolute_longitude"`
	Speed             float64    `json:"speed"`
	IsRetrograde      bool       `json:"is_retrograde"`
	ZodiacSign        ZodiacSign `json:"zodiac_sign"`
	House             House      `json:"house"`
}

// HouseCusp marks the start of a house, with the sign sitting on it.
type HouseCusp struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	PositionLongitude float64    `json:"position_longitude"`
	AbsoluteLongitude float64    `json:"absolute_longitude"`
	ZodiacSign        ZodiacSign `json:"zodiac_sign"`
}

// Aspect is an angular relationship between two points.
type Aspect struct {
	Point1ID   string  `json:"point_1_id"`
	Point2ID   string  `json:"point_2_id"`
	AspectID   string  `json:"aspect_id"`
	AspectName string  `json:"aspect_name"`
	Orb        float64 `json:"orb"`
}

// Chart is the canonical, immutable natal chart. It lives for the duration of
// one request and is never persisted.
type Chart struct {
	ChartID         uuid.UUID           `json:"chart_id"`
	EngineMetadata  core.EngineMetadata `json:"engine_metadata"`
	Subject         Subject             `json:"subject"`
	CelestialPoints []CelestialPoint    `json:"celestial_points"`
	Houses          []HouseCusp         `json:"houses"`
	Aspects         []Aspect            `json:"aspects"`
}
