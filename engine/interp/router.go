package interp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/infopoison/alchemist-workbench/engine/core"
)

// RegisterRoutes mounts the interpretation routes.
func RegisterRoutes(r gin.IRouter, svc *Service) {
	group := r.Group("/interpret")
	group.POST("/deconstruct", deconstruct(svc))
	group.POST("/valences", valences(svc))
	group.POST("/manifestations", manifestations(svc))
}

func deconstruct(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeconstructRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			core.RespondError(c, core.NewError(core.CodeInvalidBirthData,
				"invalid request: "+err.Error(), err))
			return
		}
		if !req.Component.Type.Valid() {
			core.RespondError(c, core.NewErrorf(core.CodeInvalidBirthData,
				"unknown component type %q", req.Component.Type))
			return
		}
		result, err := svc.Deconstruct(c.Request.Context(), &req)
		if err != nil {
			core.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func valences(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValencesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			core.RespondError(c, core.NewError(core.CodeInvalidBirthData,
				"invalid synthesis request: "+err.Error(), err))
			return
		}
		if err := validateTypes(c, req.Components); err != nil {
			return
		}
		result, err := svc.Valences(c.Request.Context(), &req)
		if err != nil {
			core.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func manifestations(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ManifestationsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			core.RespondError(c, core.NewError(core.CodeInvalidBirthData,
				"invalid synthesis request: "+err.Error(), err))
			return
		}
		if err := validateTypes(c, req.Components); err != nil {
			return
		}
		result, err := svc.Manifestations(c.Request.Context(), &req)
		if err != nil {
			core.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func validateTypes(c *gin.Context, components []core.Component) error {
	for _, component := range components {
		if !component.Type.Valid() {
			err := core.NewErrorf(core.CodeInvalidBirthData,
				"unknown component type %q", component.Type)
			core.RespondError(c, err)
			return err
		}
	}
	return nil
}
