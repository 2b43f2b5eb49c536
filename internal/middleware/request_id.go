package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags every request with an id so log lines from one
// request can be correlated. An id supplied by the caller is kept.
func (m Middleware) RequestIDMiddleware(ctx *gin.Context) {
	requestId := ctx.GetHeader(RequestIDHeader)
	if requestId == "" {
		requestId = uuid.NewString()
	}

	ctx.Set("requestId", requestId)
	ctx.Header(RequestIDHeader, requestId)
	ctx.Next()
}
