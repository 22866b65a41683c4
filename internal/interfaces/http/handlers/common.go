// Package handlers implements the gin handlers of the ProteinScope HTTP API.
package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ProteinScope/internal/interfaces/http/middleware"
	"github.com/turtacn/ProteinScope/pkg/errors"
	"github.com/turtacn/ProteinScope/pkg/types/common"
)

// writeSuccess writes data inside the versioned response envelope.
func writeSuccess[T any](c *gin.Context, status int, data T) {
	resp := common.NewSuccessResponse(data)
	resp.RequestID = middleware.GetRequestID(c)
	c.JSON(status, resp)
}

func writePaginated[T any](c *gin.Context, data T, page common.Pagination) {
	resp := common.NewPaginatedResponse(data, page)
	resp.RequestID = middleware.GetRequestID(c)
	c.JSON(http.StatusOK, resp)
}

// statusFor maps an error onto an HTTP status and the code and message that
// are safe to return. 500s are masked.
func statusFor(err error) (int, errors.ErrorCode, string) {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge, errors.ErrCodeBadRequest, "request body too large"
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		return http.StatusInternalServerError, errors.ErrCodeInternal, "internal server error"
	}
	status := errors.HTTPStatusForCode(appErr.Code)
	if status == http.StatusInternalServerError {
		return status, errors.ErrCodeInternal, "internal server error"
	}
	msg := appErr.Message
	if appErr.Detail != "" {
		msg = msg + ": " + appErr.Detail
	}
	return status, appErr.Code, msg
}

// writeError writes err inside the versioned error envelope and attaches it
// to the gin context for the access log.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, code, msg := statusFor(err)
	resp := common.NewErrorResponse(code.String(), msg)
	resp.RequestID = middleware.GetRequestID(c)
	c.AbortWithStatusJSON(status, resp)
}

// parsePagination reads limit and offset query parameters. Malformed values
// fall back to the defaults.
func parsePagination(c *gin.Context) common.Pagination {
	var p common.Pagination
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		p.Limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil {
		p.Offset = v
	}
	return p.Normalize()
}

//Personal.AI order the ending
