package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appctx "github.com/prinzana/sellyticsOffline-sub002/internal/core/context"
)

const (
	HeaderRequestID  = "X-Request-ID"
	HeaderTraceID    = "X-Trace-ID"
	HeaderStoreID    = "X-Store-ID"
	HeaderTerminalID = "X-Terminal-ID"
)

// Trace middleware adds request tracing context.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		traceID := c.GetHeader(HeaderTraceID)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		trace := &appctx.TraceContext{
			TraceID:   traceID,
			RequestID: requestID,
		}

		ctx := appctx.WithTrace(c.Request.Context(), trace)
		c.Request = c.Request.WithContext(ctx)

		c.Set("trace_id", traceID)
		c.Set("request_id", requestID)

		c.Header(HeaderRequestID, requestID)
		c.Header(HeaderTraceID, traceID)

		c.Next()
	}
}

// Operator middleware extracts the store/terminal scope from headers and adds
// it to the request context for lookups and logging.
func Operator() gin.HandlerFunc {
	return func(c *gin.Context) {
		op := &appctx.OperatorContext{
			StoreID:    c.GetHeader(HeaderStoreID),
			TerminalID: c.GetHeader(HeaderTerminalID),
		}
		if op.TerminalID == "" {
			op.TerminalID = "default"
		}

		ctx := appctx.WithOperator(c.Request.Context(), op)
		c.Request = c.Request.WithContext(ctx)
		c.Set("terminal_id", op.TerminalID)

		c.Next()
	}
}
