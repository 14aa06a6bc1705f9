package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/userpage/internal/pkg"
)

// Recovery returns a gin middleware that recovers from panics, logs the panic
// value with its stack trace and answers with a 500 envelope:
//
//	{"timeStamp": "...", "statusCode": 500, "status": "INTERNAL_SERVER_ERROR", "message": "internal server error"}
//
// If the handler already wrote a response only the log entry is produced.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorContext(c.Request.Context(), "panic recovered",
					slog.Any("panic", err),
					slog.String("method", c.Request.Method),
					slog.String("path", c.Request.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)

				if c.Writer.Written() {
					c.Abort()
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					pkg.Wrap[any](nil, "internal server error", http.StatusInternalServerError))
			}
		}()
		c.Next()
	}
}
