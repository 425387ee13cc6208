package interp

import (
	"fmt"
	"strings"
)

// Stage selects which half of the two-stage synthesis a prompt serves.
type Stage string

const (
	StageValence       Stage = "valence"
	StageManifestation Stage = "manifestation"
)

// Placeholder names one substitution slot in a prompt template. The set is
// closed so tests can prove no template carries an unknown slot.
type Placeholder string

const (
	PlaceholderPlanet    Placeholder = "[PLANET_DATA]"
	PlaceholderPlanet2   Placeholder = "[PLANET_2_DATA]"
	PlaceholderSign      Placeholder = "[SIGN_DATA]"
	PlaceholderHouse     Placeholder = "[HOUSE_DATA]"
	PlaceholderNode      Placeholder = "[NODE_DATA]"
	PlaceholderAngle     Placeholder = "[ANGLE_DATA]"
	PlaceholderAspect    Placeholder = "[ASPECT_DATA]"
	PlaceholderRule      Placeholder = "[FRAMEWORK_RULE]"
	PlaceholderDignity   Placeholder = "[DIGNITY_STATUS]"
	PlaceholderQuality   Placeholder = "[QUALITY_DATA]"
	PlaceholderValence   Placeholder = "[VALENCE_DATA]"
	PlaceholderSignature Placeholder = "[SIGNATURE_DATA]"
)

// Placeholders is every slot any template may carry.
var Placeholders = []Placeholder{
	PlaceholderPlanet, PlaceholderPlanet2, PlaceholderSign, PlaceholderHouse,
	PlaceholderNode, PlaceholderAngle, PlaceholderAspect, PlaceholderRule,
	PlaceholderDignity, PlaceholderQuality, PlaceholderValence, PlaceholderSignature,
}

// LifeAreas is the closed set of domains stage 2 can elaborate, in
// presentation order.
var LifeAreas = []string{
	"psychological_patterns",
	"relational_dynamics",
	"occupational_arenas",
	"creative_expression",
	"health_and_wellness",
	"financial_style",
	"leisure_and_hobbies",
}

func ValidLifeArea(area string) bool {
	for _, known := range LifeAreas {
		if area == known {
			return true
		}
	}
	return false
}

// Arity instructions are written into templates in their batch form and
// rewritten to exact counts before substitution. The anchors must match the
// template text byte for byte.
const (
	valenceArityAnchor  = `a list of 3-5 distinct "expression archetypes"`
	valenceArityExact   = `a list of exactly 3 distinct "expression archetypes"`
	manifestationAnchor = "Generate 2-3 detailed"
	manifestationExact  = "Generate exactly one detailed"
)

// ExactValenceCount is how many valences a rewritten stage-1 prompt asks for.
const ExactValenceCount = 3

const valencePreamble = `You are an expert archetypal astrologer working strictly within the interpretive framework supplied below. Do not draw on any rule other than the one given.

INTERPRETIVE FRAMEWORK:
[FRAMEWORK_RULE]
`

const valenceInstruction = `
TASK:
Apply the framework to the data above and produce ` + valenceArityAnchor + ` for this combination. Each archetype is a short evocative label paired with a one-sentence description of how the combination expresses itself through that archetype.

Respond with a single JSON object containing one key, "valences", whose value is the list. Each list item is an object with the keys "archetype" and "description".`

func valenceTemplate(dataBlock string) string {
	return valencePreamble + "\n" + dataBlock + "\n" + valenceInstruction
}

// valenceTemplates maps each pattern key to its stage-1 prompt. The data
// block names one slot per component role, in the order components arrive.
var valenceTemplates = map[string]string{
	"planet_in_sign": valenceTemplate(`PLANET:
[PLANET_DATA]

SIGN:
[SIGN_DATA]

ESSENTIAL DIGNITY OF THE PLANET IN THIS SIGN: [DIGNITY_STATUS]`),

	"planet_in_house": valenceTemplate(`PLANET:
[PLANET_DATA]

HOUSE:
[HOUSE_DATA]

HOUSE QUALITY: [QUALITY_DATA]`),

	"node_in_sign": valenceTemplate(`NODE:
[NODE_DATA]

SIGN:
[SIGN_DATA]`),

	"node_in_house": valenceTemplate(`NODE:
[NODE_DATA]

HOUSE:
[HOUSE_DATA]`),

	"sign_on_house": valenceTemplate(`SIGN ON THE CUSP:
[SIGN_DATA]

HOUSE:
[HOUSE_DATA]`),

	"planet_aspect_planet": valenceTemplate(`FIRST PLANET:
[PLANET_DATA]

ASPECT:
[ASPECT_DATA]

SECOND PLANET:
[PLANET_2_DATA]`),

	"planet_aspect_angle": valenceTemplate(`PLANET:
[PLANET_DATA]

ASPECT:
[ASPECT_DATA]

ANGLE:
[ANGLE_DATA]`),

	"planet_aspect_node": valenceTemplate(`PLANET:
[PLANET_DATA]

ASPECT:
[ASPECT_DATA]

NODE:
[NODE_DATA]`),

	"node_aspect_angle": valenceTemplate(`NODE:
[NODE_DATA]

ASPECT:
[ASPECT_DATA]

ANGLE:
[ANGLE_DATA]`),

	PatternGeneric: valenceTemplate(`COMPONENTS:
[SIGNATURE_DATA]`),
}

// manifestationFocus phrases the life domain each stage-2 template targets.
var manifestationFocus = map[string]string{
	"psychological_patterns": "inner psychological life, habitual thought patterns, and emotional responses",
	"relational_dynamics":    "relationships, partnerships, and characteristic ways of relating to others",
	"occupational_arenas":    "career, vocation, and working life",
	"creative_expression":    "creative pursuits and characteristic modes of self-expression",
	"health_and_wellness":    "physical vitality, health tendencies, and wellness habits",
	"financial_style":        "relationship with money, material resources, and financial security",
	"leisure_and_hobbies":    "leisure time, play, and the pursuits chosen purely for enjoyment",
}

// manifestationTemplates maps each life area to its stage-2 prompt.
var manifestationTemplates = buildManifestationTemplates()

func buildManifestationTemplates() map[string]string {
	templates := make(map[string]string, len(LifeAreas))
	for _, area := range LifeAreas {
		templates[area] = fmt.Sprintf(`You are an expert archetypal astrologer elaborating a chosen expression archetype into concrete life patterns.

ASTROLOGICAL SIGNATURE: [SIGNATURE_DATA]

CHOSEN EXPRESSION ARCHETYPE:
[VALENCE_DATA]

TASK:
%s patterns describing how this archetype manifests in the person's %s. Every pattern must be classified as either a "strength" or a "shadow".

Respond with a single JSON object containing one key, %q, whose value is the list of patterns. Each list item is an object with the keys "pattern_name", "description", and "type" (either "strength" or "shadow").`,
			manifestationAnchor, manifestationFocus[area], area)
	}
	return templates
}

// TemplatePlaceholders lists the slots actually present in a template, in
// no particular order.
func TemplatePlaceholders(template string) []Placeholder {
	var present []Placeholder
	for _, placeholder := range Placeholders {
		if strings.Contains(template, string(placeholder)) {
			present = append(present, placeholder)
		}
	}
	return present
}
