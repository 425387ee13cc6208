package core

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/infopoison/alchemist-workbench/pkg/logger"
)

// ErrorBody is the canonical error payload for API responses.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorEnvelope wraps an ErrorBody the way callers expect it:
// {"error": {"code": ..., "message": ...}}.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// RespondError renders err as the canonical envelope. Untagged errors and
// configuration defects are logged with full context and collapsed to a
// generic internal error so nothing internal leaks.
func RespondError(c *gin.Context, err error) {
	code := CodeOf(err)
	var message string
	var tagged *Error
	if errors.As(err, &tagged) && code != CodeInternal && code != CodeTemplateNotFound {
		message = tagged.Message
	} else {
		log := logger.FromContext(c.Request.Context())
		log.Error("unexpected error handling request",
			"path", c.FullPath(),
			"code", code,
			"error", err,
		)
		code = CodeInternal
		message = "An unexpected internal error occurred."
	}
	c.AbortWithStatusJSON(HTTPStatus(code), ErrorEnvelope{
		Error: ErrorBody{Code: code, Message: message},
	})
}
