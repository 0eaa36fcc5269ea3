package http_auth_middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/venuraw/streambox/internal/config"
	http_common "github.com/venuraw/streambox/internal/delivery/http/common"
)

const challenge = `Basic realm="Login Required"`

// Middleware enforces HTTP Basic auth against the single static admin
// identity. Every failure mode (missing header, malformed header,
// wrong credentials) yields the same 401 + challenge.
type Middleware struct {
	admin  config.Admin
	logger *slog.Logger
}

type MiddlewareOption func(*Middleware)

func WithLogger(logger *slog.Logger) MiddlewareOption {
	return func(m *Middleware) {
		m.logger = logger
	}
}

func New(admin config.Admin, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		admin:  admin,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetHeader("Authorization") == "" {
			m.challenge(ctx, "Authorization Required")
			return
		}

		username, password, ok := ctx.Request.BasicAuth()
		if !ok || !m.check(username, password) {
			m.logger.Warn("admin auth failed", slog.String("username", username))
			m.challenge(ctx, "Authorization Failed")
			return
		}

		ctx.Next()
	}
}

func (m *Middleware) check(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(m.admin.Username)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword(m.admin.PasswordHash, []byte(password)) == nil
}

func (m *Middleware) challenge(ctx *gin.Context, message string) {
	ctx.Header("WWW-Authenticate", challenge)
	ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
		Message: message,
	})
	ctx.Abort()
}
