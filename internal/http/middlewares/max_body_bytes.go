package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps how much of a request body a handler will ever read.
// Signup and verify payloads are a few hundred bytes, so the limit mostly
// exists to shut down oversized junk before JSON binding buffers it; once
// the cap is hit the bind fails and the request gets a 400.
func MaxBodyBytes(limit int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)

		ctx.Next()
	}
}
