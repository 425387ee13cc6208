package interp

import (
	"github.com/infopoison/alchemist-workbench/engine/chart"
	"github.com/infopoison/alchemist-workbench/engine/core"
)

// Valence is one candidate expression archetype produced by stage 1 and
// consumed unchanged as input to stage 2.
type Valence struct {
	Archetype   string `json:"archetype"`
	Description string `json:"description"`
}

// LifeAreaPattern is one concrete strength or shadow pattern produced by
// stage 2 for a single life area.
type LifeAreaPattern struct {
	PatternName string `json:"pattern_name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type DeconstructRequest struct {
	Component core.Component `json:"component" binding:"required"`
}

type DeconstructResponse struct {
	ComponentID    string `json:"component_id"`
	DefinitionText string `json:"definition_text"`
}

type ValencesRequest struct {
	Components []core.Component `json:"components" binding:"required,min=1,dive"`
	BirthData  *chart.Request   `json:"birth_data,omitempty"`
}

type ValencesResponse struct {
	Valences       []Valence            `json:"valences"`
	SynthesisRule  Rule                 `json:"synthesis_rule"`
	ComponentsUsed []core.ComponentData `json:"components_used"`
	EngineMetadata core.EngineMetadata  `json:"engine_metadata"`
	Diagnostic     string               `json:"diagnostic,omitempty"`
}

type ManifestationsRequest struct {
	Components    []core.Component `json:"components" binding:"required,min=1,dive"`
	ChosenValence Valence          `json:"chosen_valence" binding:"required"`
	LifeArea      string           `json:"life_area" binding:"required"`
	BirthData     *chart.Request   `json:"birth_data,omitempty"`
}

type ManifestationsResponse struct {
	Manifestations []LifeAreaPattern   `json:"manifestations"`
	EngineMetadata core.EngineMetadata `json:"engine_metadata"`
	Diagnostic     string              `json:"diagnostic,omitempty"`
}
