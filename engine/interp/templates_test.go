package interp

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bracketSlot = regexp.MustCompile(`\[[A-Z][A-Z0-9_]*\]`)

func TestTemplateLibrary(t *testing.T) {
	t.Run("Should use only slots from the closed placeholder set", func(t *testing.T) {
		known := make(map[string]bool, len(Placeholders))
		for _, placeholder := range Placeholders {
			known[string(placeholder)] = true
		}
		check := func(name, template string) {
			for _, slot := range bracketSlot.FindAllString(template, -1) {
				assert.True(t, known[slot], "%s carries unknown slot %s", name, slot)
			}
		}
		for patternKey, template := range valenceTemplates {
			check(patternKey, template)
		}
		for area, template := range manifestationTemplates {
			check(area, template)
		}
	})
	t.Run("Should carry the rewritable arity instruction in every valence template", func(t *testing.T) {
		for patternKey, template := range valenceTemplates {
			assert.Contains(t, template, valenceArityAnchor, patternKey)
		}
	})
	t.Run("Should carry the rewritable instruction in every manifestation template", func(t *testing.T) {
		for area, template := range manifestationTemplates {
			assert.Contains(t, template, manifestationAnchor, area)
		}
	})
	t.Run("Should key the manifestation response by the life area", func(t *testing.T) {
		for _, area := range LifeAreas {
			assert.Contains(t, manifestationTemplates[area], `"`+area+`"`)
		}
	})
	t.Run("Should report the slots a template carries", func(t *testing.T) {
		slots := TemplatePlaceholders(valenceTemplates["planet_in_sign"])
		assert.Contains(t, slots, PlaceholderPlanet)
		assert.Contains(t, slots, PlaceholderSign)
		assert.Contains(t, slots, PlaceholderDignity)
		assert.Contains(t, slots, PlaceholderRule)
		assert.NotContains(t, slots, PlaceholderHouse)
	})
	t.Run("Should cover every pattern the matcher can produce", func(t *testing.T) {
		for _, row := range patternTable {
			_, ok := valenceTemplates[row.key]
			require.True(t, ok, "pattern %s has no valence template", row.key)
		}
		_, ok := valenceTemplates[PatternGeneric]
		require.True(t, ok)
	})
	t.Run("Should not mention a life area in another area's template", func(t *testing.T) {
		template := manifestationTemplates["financial_style"]
		assert.False(t, strings.Contains(template, "psychological_patterns"))
	})
}
