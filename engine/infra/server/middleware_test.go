package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infopoison/alchemist-workbench/pkg/logger"
)

func TestLoggerMiddleware(t *testing.T) {
	t.Run("Should inject the logger and log the request", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.NewLogger(&logger.Config{Level: logger.InfoLevel, Output: &buf})

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(LoggerMiddleware(log))
		r.GET("/ping", func(c *gin.Context) {
			fromCtx := logger.FromContext(c.Request.Context())
			require.NotNil(t, fromCtx)
			fromCtx.Info("inside handler")
			c.JSON(http.StatusOK, gin.H{"pong": true})
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?verbose=1", nil))

		require.Equal(t, http.StatusOK, w.Code)
		out := buf.String()
		assert.Contains(t, out, "inside handler")
		assert.Contains(t, out, "request completed")
		assert.Contains(t, out, "/ping?verbose=1")
	})
}
