package knowledge

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSnapshot = `{
	"planets": [
		{"id": "mars", "name": "Mars", "archetype": "The Warrior",
		 "display_content": {"principle": "Drive and assertion.", "core_concept": "How you act."}},
		{"id": "saturn", "name": "Saturn", "archetype": "The Taskmaster",
		 "display_content": {"principle": "Structure and limits.", "core_concept": "Where you mature."}}
	],
	"zodiac_signs": [
		{"id": "aries", "name": "Aries", "archetype": "The Pioneer"}
	],
	"houses": [
		{"id": "first_house", "name": "First House", "quality": "angular"}
	],
	"dynamics": [
		{"id": "square", "name": "Square", "archetype": "The Catalyst"}
	],
	"nodes": [],
	"angles": [],
	"asteroids": []
}`

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore([]byte(testSnapshot))
	require.NoError(t, err)
	return store
}

func TestStore(t *testing.T) {
	t.Run("Should index records by type and id", func(t *testing.T) {
		store := testStore(t)
		mars, ok := store.Get("planets", "mars")
		require.True(t, ok)
		assert.Equal(t, "The Warrior", mars["archetype"])
	})

	t.Run("Should list records in file order", func(t *testing.T) {
		store := testStore(t)
		planets, ok := store.List("planets")
		require.True(t, ok)
		require.Len(t, planets, 2)
		assert.Equal(t, "mars", planets[0]["id"])
		assert.Equal(t, "saturn", planets[1]["id"])
	})

	t.Run("Should report unknown types and ids", func(t *testing.T) {
		store := testStore(t)
		_, ok := store.List("comets")
		assert.False(t, ok)
		_, ok = store.Get("planets", "vulcan")
		assert.False(t, ok)
	})

	t.Run("Should reject an entry without an id", func(t *testing.T) {
		_, err := NewStore([]byte(`{"planets": [{"name": "Mars"}]}`))
		require.Error(t, err)
	})

	t.Run("Should load from a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "first_order.json")
		require.NoError(t, os.WriteFile(path, []byte(testSnapshot), 0o600))
		store, err := NewStoreFromFile(path)
		require.NoError(t, err)
		_, ok := store.Get("dynamics", "square")
		assert.True(t, ok)
	})
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, testStore(t))

	t.Run("Should serve a component detail", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/components/planets/mars", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "The Warrior")
	})

	t.Run("Should serve a component list", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/components/planets", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should 404 with the canonical envelope on unknown id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/components/planets/vulcan", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"component_not_found"`)
	})

	t.Run("Should 404 on unknown component type", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/components/comets/halley", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
