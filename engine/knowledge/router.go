package knowledge

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/infopoison/alchemist-workbench/engine/core"
)

// RegisterRoutes mounts the knowledge-base lookup routes over the snapshot.
func RegisterRoutes(r gin.IRouter, store *Store) {
	r.GET("/components/:type", listComponents(store))
	r.GET("/components/:type/:id", getComponent(store))
}

func listComponents(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		componentType := c.Param("type")
		items, ok := store.List(componentType)
		if !ok {
			core.RespondError(c, core.NewErrorf(core.CodeComponentNotFound,
				"component type '%s' not found", componentType))
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func getComponent(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		componentType := c.Param("type")
		id := c.Param("id")
		if _, ok := store.List(componentType); !ok {
			core.RespondError(c, core.NewErrorf(core.CodeComponentNotFound,
				"component type '%s' not found", componentType))
			return
		}
		item, ok := store.Get(componentType, id)
		if !ok {
			core.RespondError(c, core.NewErrorf(core.CodeComponentNotFound,
				"component '%s' not found in '%s'", id, componentType))
			return
		}
		c.JSON(http.StatusOK, item)
	}
}
