package core

// ComponentType classifies an astrological component reference.
type ComponentType string

const (
	ComponentPlanet     ComponentType = "planet"
	ComponentZodiacSign ComponentType = "zodiac_sign"
	ComponentHouse      ComponentType = "house"
	ComponentNode       ComponentType = "node"
	ComponentDynamic    ComponentType = "dynamic"
	ComponentAngle      ComponentType = "angle"
	ComponentAsteroid   ComponentType = "asteroid"
)

func (t ComponentType) String() string {
	return string(t)
}

// Valid reports whether t is one of the seven known component types.
func (t ComponentType) Valid() bool {
	switch t {
	case ComponentPlanet, ComponentZodiacSign, ComponentHouse,
		ComponentNode, ComponentDynamic, ComponentAngle, ComponentAsteroid:
		return true
	}
	return false
}

// Component is a typed reference into the knowledge base. It carries no data
// itself.
type Component struct {
	Type ComponentType `json:"type" binding:"required"`
	ID   string        `json:"id"   binding:"required"`
}

// ComponentData is a resolved knowledge-base record. The knowledge base is
// loosely structured, so records stay generic maps end to end.
type ComponentData map[string]any

// EngineMetadata records which engines produced a response.
type EngineMetadata struct {
	CalculationEngine  string `json:"calculation_engine,omitempty"`
	InterpretiveEngine string `json:"interpretive_engine"`
}
