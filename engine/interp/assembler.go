package interp

import (
	"encoding/json"
	"strings"

	"github.com/infopoison/alchemist-workbench/engine/chart"
	"github.com/infopoison/alchemist-workbench/engine/core"
)

// ResolvedComponent pairs a requested component with its knowledge-base
// record. Order in the slice is the order the caller asked for, and it is
// semantically significant: the second planet of an aspect fills a
// different slot than the first.
type ResolvedComponent struct {
	Component core.Component
	Data      core.ComponentData
}

// PromptInput carries everything a stage-1 prompt needs.
type PromptInput struct {
	PatternKey string
	Rule       Rule
	Components []ResolvedComponent
	Chart      *chart.Chart
	Dignity    string
	Quality    string
}

// ValencePrompt assembles the stage-1 prompt for a matched pattern. The
// template's batch arity instruction is rewritten to an exact count before
// substitution, and every slot absent from the input resolves to "N/A".
func ValencePrompt(in PromptInput) (string, error) {
	template, ok := valenceTemplates[in.PatternKey]
	if !ok {
		return "", core.NewErrorf(core.CodeTemplateNotFound,
			"no valence template configured for pattern %q", in.PatternKey)
	}
	template = strings.Replace(template, valenceArityAnchor, valenceArityExact, 1)

	replacements := map[Placeholder]string{
		PlaceholderRule:    in.Rule.Description,
		PlaceholderDignity: in.Dignity,
		PlaceholderQuality: in.Quality,
	}
	planetCount := 0
	for _, resolved := range in.Components {
		encoded := encodeJSON(resolved.Data)
		switch resolved.Component.Type {
		case core.ComponentPlanet:
			planetCount++
			if planetCount > 1 {
				replacements[PlaceholderPlanet2] = encoded
			} else {
				replacements[PlaceholderPlanet] = encoded
			}
		case core.ComponentZodiacSign:
			replacements[PlaceholderSign] = encoded
		case core.ComponentHouse:
			replacements[PlaceholderHouse] = encoded
		case core.ComponentNode:
			replacements[PlaceholderNode] = encoded
		case core.ComponentAngle:
			replacements[PlaceholderAngle] = encoded
		case core.ComponentDynamic:
			replacements[PlaceholderAspect] = encoded
		}
	}
	if in.PatternKey == PatternGeneric {
		replacements[PlaceholderSignature] = encodeComponentDump(in.Components)
	}
	prompt := substitute(template, replacements)
	if in.Chart != nil {
		prompt += "\n\nCALCULATED CHART CONTEXT:\n" + encodeJSON(in.Chart)
	}
	return prompt, nil
}

// ManifestationPrompt assembles the stage-2 prompt for one life area. The
// template's batch instruction is rewritten to ask for exactly one pattern.
func ManifestationPrompt(lifeArea, signature string, valence Valence) (string, error) {
	template, ok := manifestationTemplates[lifeArea]
	if !ok {
		return "", core.NewErrorf(core.CodeTemplateNotFound,
			"no manifestation template configured for life area %q", lifeArea)
	}
	template = strings.Replace(template, manifestationAnchor, manifestationExact, 1)
	return substitute(template, map[Placeholder]string{
		PlaceholderSignature: signature,
		PlaceholderValence:   encodeJSON(valence),
	}), nil
}

// substitute applies one literal replacement pass over the closed
// placeholder set. Slots without a resolved value become "N/A".
func substitute(template string, replacements map[Placeholder]string) string {
	for _, placeholder := range Placeholders {
		value := replacements[placeholder]
		if value == "" {
			value = "N/A"
		}
		template = strings.ReplaceAll(template, string(placeholder), value)
	}
	return template
}

func encodeJSON(v any) string {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "N/A"
	}
	return string(encoded)
}

func encodeComponentDump(components []ResolvedComponent) string {
	return encodeJSON(componentRecords(components))
}

// componentRecords strips the request references, leaving the resolved
// knowledge-base records in request order.
func componentRecords(resolved []ResolvedComponent) []core.ComponentData {
	records := make([]core.ComponentData, len(resolved))
	for i, component := range resolved {
		records[i] = component.Data
	}
	return records
}
