package chart

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/infopoison/alchemist-workbench/engine/core"
)

// RegisterRoutes mounts the chart calculation route.
func RegisterRoutes(r gin.IRouter, client *Client) {
	r.POST("/chart", castChart(client))
}

func castChart(client *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			core.RespondError(c, core.NewError(core.CodeInvalidBirthData,
				"invalid chart request: "+err.Error(), err))
			return
		}
		result, err := client.NatalChart(c.Request.Context(), &req)
		if err != nil {
			core.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
