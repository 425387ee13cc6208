package interp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/infopoison/alchemist-workbench/engine/chart"
	"github.com/infopoison/alchemist-workbench/engine/core"
	"github.com/infopoison/alchemist-workbench/engine/llmadapter"
	"github.com/infopoison/alchemist-workbench/pkg/logger"
)

// ComponentResolver resolves component references against the knowledge
// base.
type ComponentResolver interface {
	GetComponent(ctx context.Context, component core.Component) (core.ComponentData, error)
}

// ChartCaster resolves birth data into a normalized chart.
type ChartCaster interface {
	NatalChart(ctx context.Context, req *chart.Request) (*chart.Chart, error)
}

// Service orchestrates the two-stage synthesis: knowledge-base resolution,
// optional chart resolution, pattern matching, prompt assembly, the
// generative call, and response parsing.
type Service struct {
	kb     ComponentResolver
	caster ChartCaster
	model  llmadapter.Client
}

func NewService(kb ComponentResolver, caster ChartCaster, model llmadapter.Client) *Service {
	return &Service{kb: kb, caster: caster, model: model}
}

// Deconstruct returns the static archetypal definition of one component.
// It is a pure function of knowledge-base data and never touches the
// generative model.
func (s *Service) Deconstruct(ctx context.Context, req *DeconstructRequest) (*DeconstructResponse, error) {
	data, err := s.kb.GetComponent(ctx, req.Component)
	if err != nil {
		return nil, err
	}
	var parts []string
	if archetype := stringField(data, "archetype"); archetype != "" {
		parts = append(parts, "Archetype: "+archetype+".")
	}
	if principle := stringField(data, "display_content", "principle"); principle != "" {
		parts = append(parts, "Principle: "+principle+".")
	}
	if concept := stringField(data, "display_content", "core_concept"); concept != "" {
		parts = append(parts, "Core Concept: "+concept+".")
	}
	definition := strings.Join(parts, " ")
	if definition == "" {
		definition = "Definition for " + req.Component.ID + " not available."
	}
	return &DeconstructResponse{
		ComponentID:    req.Component.ID,
		DefinitionText: definition,
	}, nil
}

// Valences runs stage 1: discover expression archetypes for a component
// signature.
func (s *Service) Valences(ctx context.Context, req *ValencesRequest) (*ValencesResponse, error) {
	resolved, err := s.resolveComponents(ctx, req.Components)
	if err != nil {
		return nil, err
	}
	natal, err := s.resolveChart(ctx, req.BirthData)
	if err != nil {
		return nil, err
	}

	patternKey, rule := Match(req.Components)
	prompt, err := ValencePrompt(PromptInput{
		PatternKey: patternKey,
		Rule:       rule,
		Components: resolved,
		Chart:      natal,
		Dignity:    s.dignityFor(patternKey, req.Components),
		Quality:    s.qualityFor(patternKey, resolved),
	})
	if err != nil {
		return nil, err
	}

	out, err := s.model.Generate(ctx, prompt, llmadapter.ShapeStructuredObject)
	if err != nil {
		return nil, err
	}
	valences, diagnostic, err := parseValences(out)
	if err != nil {
		return nil, err
	}
	if len(valences) > ExactValenceCount {
		valences = valences[:ExactValenceCount]
	}
	if diagnostic != "" {
		logger.FromContext(ctx).Warn("stage 1 returned no valences",
			"pattern", patternKey, "diagnostic", diagnostic)
	}
	return &ValencesResponse{
		Valences:       valences,
		SynthesisRule:  rule,
		ComponentsUsed: componentRecords(resolved),
		EngineMetadata: s.engineMetadata(natal != nil),
		Diagnostic:     diagnostic,
	}, nil
}

// Manifestations runs stage 2: elaborate a chosen valence into concrete
// patterns for one life area. Only the first pattern the model returns is
// kept.
func (s *Service) Manifestations(ctx context.Context, req *ManifestationsRequest) (*ManifestationsResponse, error) {
	if !ValidLifeArea(req.LifeArea) {
		return nil, core.NewErrorf(core.CodeInvalidBirthData,
			"unknown life area %q", req.LifeArea)
	}
	resolved, err := s.resolveComponents(ctx, req.Components)
	if err != nil {
		return nil, err
	}

	prompt, err := ManifestationPrompt(req.LifeArea, signatureName(resolved), req.ChosenValence)
	if err != nil {
		return nil, err
	}
	out, err := s.model.Generate(ctx, prompt, llmadapter.ShapeStructuredObject)
	if err != nil {
		return nil, err
	}
	patterns, diagnostic, err := parseLifeAreaPatterns(out, req.LifeArea)
	if err != nil {
		return nil, err
	}
	if len(patterns) > 1 {
		patterns = patterns[:1]
	}
	if diagnostic != "" {
		logger.FromContext(ctx).Warn("stage 2 returned no patterns",
			"life_area", req.LifeArea, "diagnostic", diagnostic)
	}
	return &ManifestationsResponse{
		Manifestations: patterns,
		EngineMetadata: s.engineMetadata(false),
		Diagnostic:     diagnostic,
	}, nil
}

// resolveComponents fetches every requested component concurrently while
// preserving request order. A missing requested component is always fatal.
func (s *Service) resolveComponents(ctx context.Context, components []core.Component) ([]ResolvedComponent, error) {
	resolved := make([]ResolvedComponent, len(components))
	group, ctx := errgroup.WithContext(ctx)
	for i, component := range components {
		group.Go(func() error {
			data, err := s.kb.GetComponent(ctx, component)
			if err != nil {
				return err
			}
			resolved[i] = ResolvedComponent{Component: component, Data: data}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}

func (s *Service) resolveChart(ctx context.Context, birthData *chart.Request) (*chart.Chart, error) {
	if birthData == nil {
		return nil, nil
	}
	return s.caster.NatalChart(ctx, birthData)
}

func (s *Service) dignityFor(patternKey string, components []core.Component) string {
	if patternKey != "planet_in_sign" || len(components) != 2 {
		return ""
	}
	return DignityStatus(components[0].ID, components[1].ID)
}

func (s *Service) qualityFor(patternKey string, resolved []ResolvedComponent) string {
	if patternKey != "planet_in_house" || len(resolved) != 2 {
		return ""
	}
	quality := stringField(resolved[1].Data, "quality")
	if quality == "" {
		return ""
	}
	return titleCaser.String(quality)
}

func (s *Service) engineMetadata(chartResolved bool) core.EngineMetadata {
	meta := core.EngineMetadata{InterpretiveEngine: s.model.Provenance()}
	if chartResolved {
		meta.CalculationEngine = chart.CalculationEngine
	}
	return meta
}

// parseValences extracts the "valences" list from a structured model
// response. A valid object without the key is not an error: it becomes
// zero results with a diagnostic note.
func parseValences(out string) ([]Valence, string, error) {
	if !gjson.Valid(out) {
		return nil, "", core.NewErrorf(core.CodeBadLLMResponse,
			"generative model returned a non-JSON body")
	}
	result := gjson.Get(out, "valences")
	if !result.Exists() {
		return []Valence{}, "model response carried no 'valences' list", nil
	}
	var valences []Valence
	if err := json.Unmarshal([]byte(result.Raw), &valences); err != nil {
		return nil, "", core.NewError(core.CodeBadLLMResponse,
			"generative model returned a malformed 'valences' list", err)
	}
	return valences, "", nil
}

// parseLifeAreaPatterns extracts the list keyed by the requested life area.
func parseLifeAreaPatterns(out, lifeArea string) ([]LifeAreaPattern, string, error) {
	if !gjson.Valid(out) {
		return nil, "", core.NewErrorf(core.CodeBadLLMResponse,
			"generative model returned a non-JSON body")
	}
	result := gjson.Get(out, lifeArea)
	if !result.Exists() {
		return []LifeAreaPattern{}, "model response carried no '" + lifeArea + "' list", nil
	}
	var patterns []LifeAreaPattern
	if err := json.Unmarshal([]byte(result.Raw), &patterns); err != nil {
		return nil, "", core.NewErrorf(core.CodeBadLLMResponse,
			"generative model returned a malformed '%s' list: %v", lifeArea, err)
	}
	return patterns, "", nil
}

var titleCaser = cases.Title(language.English)

// signatureName builds a human-readable label for a component signature,
// e.g. "Mars Square Saturn".
func signatureName(resolved []ResolvedComponent) string {
	names := make([]string, len(resolved))
	for i, component := range resolved {
		name := stringField(component.Data, "name")
		if name == "" {
			name = titleCaser.String(strings.ReplaceAll(component.Component.ID, "_", " "))
		}
		names[i] = name
	}
	return strings.Join(names, " ")
}

// stringField walks a nested path of map keys and returns the string leaf,
// or "" when any step is missing or mistyped.
func stringField(data core.ComponentData, path ...string) string {
	var current any = map[string]any(data)
	for _, key := range path {
		node, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = node[key]
	}
	value, _ := current.(string)
	return value
}
