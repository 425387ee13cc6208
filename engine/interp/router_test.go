package interp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infopoison/alchemist-workbench/engine/core"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, svc)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) core.ErrorEnvelope {
	t.Helper()
	var envelope core.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestInterpretRoutes(t *testing.T) {
	t.Run("Should serve a deconstruction", func(t *testing.T) {
		r := newTestRouter(newTestService(&fakeModel{}, nil))
		w := postJSON(t, r, "/interpret/deconstruct", gin.H{
			"component": gin.H{"type": "planet", "id": "mars"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		var result DeconstructResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "mars", result.ComponentID)
		assert.Contains(t, result.DefinitionText, "Archetype: The Warrior.")
	})
	t.Run("Should map unknown component ids to a 404 envelope", func(t *testing.T) {
		r := newTestRouter(newTestService(&fakeModel{}, nil))
		w := postJSON(t, r, "/interpret/deconstruct", gin.H{
			"component": gin.H{"type": "planet", "id": "vulcan"},
		})
		require.Equal(t, http.StatusNotFound, w.Code)
		envelope := decodeEnvelope(t, w)
		assert.Equal(t, core.CodeComponentNotFound, envelope.Error.Code)
	})
	t.Run("Should reject invalid component types with a 422 envelope", func(t *testing.T) {
		r := newTestRouter(newTestService(&fakeModel{}, nil))
		w := postJSON(t, r, "/interpret/valences", gin.H{
			"components": []gin.H{{"type": "comet", "id": "halley"}},
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		envelope := decodeEnvelope(t, w)
		assert.Equal(t, core.CodeInvalidBirthData, envelope.Error.Code)
	})
	t.Run("Should map rate-limited synthesis to a 429 envelope", func(t *testing.T) {
		model := &fakeModel{err: core.NewErrorf(core.CodeSynthesisRateLimited, "slow down")}
		r := newTestRouter(newTestService(model, nil))
		w := postJSON(t, r, "/interpret/valences", gin.H{
			"components": []gin.H{
				{"type": "planet", "id": "mars"},
				{"type": "zodiac_sign", "id": "aries"},
			},
		})
		require.Equal(t, http.StatusTooManyRequests, w.Code)
		envelope := decodeEnvelope(t, w)
		assert.Equal(t, core.CodeSynthesisRateLimited, envelope.Error.Code)
	})
	t.Run("Should serve manifestations", func(t *testing.T) {
		model := &fakeModel{out: `{"financial_style":[
			{"pattern_name":"Structured Saving","description":"d","type":"strength"}]}`}
		r := newTestRouter(newTestService(model, nil))
		w := postJSON(t, r, "/interpret/manifestations", gin.H{
			"components": []gin.H{
				{"type": "planet", "id": "mars"},
				{"type": "dynamic", "id": "square"},
				{"type": "planet", "id": "saturn"},
			},
			"chosen_valence": gin.H{"archetype": "The Forged Blade", "description": "d"},
			"life_area":      "financial_style",
		})
		require.Equal(t, http.StatusOK, w.Code)
		var result ManifestationsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		require.Len(t, result.Manifestations, 1)
		assert.Equal(t, "Structured Saving", result.Manifestations[0].PatternName)
	})
}
