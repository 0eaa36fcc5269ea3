package http_cors_middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware opens the API to cross-origin callers; the public read
// surface is consumed by browsers on other origins.
type Middleware struct{}

func New() *Middleware {
	return &Middleware{}
}

func (m *Middleware) Handler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", "*")
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
