package interp

import (
	"strings"

	"github.com/infopoison/alchemist-workbench/engine/core"
)

// Rule is the named interpretive principle applied to a matched pattern. Its
// description travels verbatim into the prompt and into response metadata.
type Rule struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PatternGeneric is the fallback for component sequences no table row
// matches. Synthesis must always be attemptable, so the fallback is a
// first-class pattern with its own rule, never an error.
const PatternGeneric = "generic_synthesis"

const (
	RuleZodiacalLens       = "The Zodiacal Lens"
	RuleStageMetaphor      = "The Stage Metaphor"
	RuleArchetypalDialogue = "The Archetypal Dialogue"
	RuleAdverbialSignature = "The Adverbial Signature"
	RuleZodiacalLensNodes  = "The Zodiacal Lens (Extended for Nodes)"
	RuleStageMetaphorNodes = "The Stage Metaphor (Extended for Nodes)"
	RuleArchetypalImprint  = "The Archetypal Imprint"
	RuleKarmicInfusion     = "The Karmic Infusion"
	RuleSoulsCompass       = "The Soul's Compass"
	RuleUniversalSynthesis = "Universal Synthesis"
)

// frameworkRules holds the verbatim descriptions of every interpretive
// principle, including the four principles of interplay that templates may
// reference without being bound to a pattern row.
var frameworkRules = map[string]string{
	RuleZodiacalLens:       "The sign a planet occupies acts as a 'lens, costume, or environment,' dictating the style and quality of how that planetary drive is expressed.",
	RuleStageMetaphor:      "The planet is the 'archetypal actor,' and the house is the 'stage' or specific domain of life where that actor's energy and drama unfolds.",
	RuleArchetypalDialogue: "Aspects represent the geometric and psychological dialogue between two planetary drives, describing how different functions within the psyche support or challenge one another.",
	RuleAdverbialSignature: "The sign on a house cusp acts as an 'adjective' or adverbial signature, describing the tone, style, and conditions one encounters in that area of life.",
	RuleZodiacalLensNodes:  "The sign a component occupies acts as a 'lens, costume, or environment,' dictating the style and quality of how that component's core principle is expressed. For a Node, this is its evolutionary purpose (North Node) or karmic pattern (South Node).",
	RuleStageMetaphorNodes: "The house is the 'stage' or specific domain of life where an archetypal principle's story unfolds. For a Node, it is the karmic or evolutionary theme that is played out in that specific life area.",
	RuleArchetypalImprint:  "This framework defines how a planet's core drive imprints upon, activates, or challenges one of the four fundamental pillars of the life structure.",
	RuleKarmicInfusion:     "This framework describes how a planetary drive infuses its energy into the user's evolutionary path.",
	RuleSoulsCompass:       "This framework defines how the soul's evolutionary path (the Nodal Axis) is grounded in, expressed through, or challenged by the most tangible pillars of the life structure (the Angles).",
	RuleUniversalSynthesis: "The archetypes at hand are combined into a single coherent narrative, weaving each component's core principle into one unified interpretation.",

	"The Fusion Principle":            "The archetypes merge and act as a single, unified force.",
	"The Harmony Principle":           "The archetypes support each other naturally, representing innate talents and ease.",
	"The Conflict & Growth Principle": "The archetypes are in a state of tension that demands conscious awareness and forces developmental growth.",
	"The Adjustment Principle":        "The archetypes share nothing in common, creating a blind spot that requires constant, conscious adjustment.",
}

// FrameworkRule returns the rule with its verbatim description. Unknown
// names resolve to the universal rule so a prompt can always be assembled.
func FrameworkRule(name string) Rule {
	if description, ok := frameworkRules[name]; ok {
		return Rule{Name: name, Description: description}
	}
	return Rule{Name: RuleUniversalSynthesis, Description: frameworkRules[RuleUniversalSynthesis]}
}

type patternRow struct {
	key  string
	rule string
}

// patternTable maps the ordered component-type sequence to its pattern.
// Adding a pattern is a table edit, not a new branch.
var patternTable = map[string]patternRow{
	"planet,zodiac_sign":    {key: "planet_in_sign", rule: RuleZodiacalLens},
	"planet,house":          {key: "planet_in_house", rule: RuleStageMetaphor},
	"node,zodiac_sign":      {key: "node_in_sign", rule: RuleZodiacalLensNodes},
	"node,house":            {key: "node_in_house", rule: RuleStageMetaphorNodes},
	"zodiac_sign,house":     {key: "sign_on_house", rule: RuleAdverbialSignature},
	"planet,dynamic,planet": {key: "planet_aspect_planet", rule: RuleArchetypalDialogue},
	"planet,dynamic,angle":  {key: "planet_aspect_angle", rule: RuleArchetypalImprint},
	"planet,dynamic,node":   {key: "planet_aspect_node", rule: RuleKarmicInfusion},
	"node,dynamic,angle":    {key: "node_aspect_angle", rule: RuleSoulsCompass},
}

// Match classifies an ordered component list into a pattern key and its
// synthesis rule. Matching is total: sequences outside the table fall back
// to the generic pattern.
func Match(components []core.Component) (string, Rule) {
	types := make([]string, len(components))
	for i, component := range components {
		types[i] = string(component.Type)
	}
	if row, ok := patternTable[strings.Join(types, ",")]; ok {
		return row.key, FrameworkRule(row.rule)
	}
	return PatternGeneric, FrameworkRule(RuleUniversalSynthesis)
}
