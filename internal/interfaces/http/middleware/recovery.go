package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/pkg/errors"
	"github.com/turtacn/ProteinScope/pkg/types/common"
)

// Recovery turns a handler panic into a masked 500 envelope.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					logging.String("panic", fmt.Sprint(r)),
					logging.String("path", c.Request.URL.Path),
					logging.String(logging.FieldRequestID, GetRequestID(c)),
					logging.String("stack", string(debug.Stack())),
				)
				abortWithError(c, http.StatusInternalServerError, errors.ErrCodeInternal, "internal server error")
			}
		}()
		c.Next()
	}
}

func abortWithError(c *gin.Context, status int, code errors.ErrorCode, message string) {
	resp := common.NewErrorResponse(code.String(), message)
	resp.RequestID = GetRequestID(c)
	c.AbortWithStatusJSON(status, resp)
}

//Personal.AI order the ending
