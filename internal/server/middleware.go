package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gogpu/algoviz/internal/logging"
)

// requestLogger logs every request through the shared slog logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		c.Next()

		attrs := []any{
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
			"latency", time.Since(start),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			logging.Logger().Error("server: request failed", append(attrs, "errors", errs)...)
			return
		}
		logging.Logger().Debug("server: request", attrs...)
	}
}

// recovery turns a handler panic into a 500 envelope.
func recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, v any) {
		logging.Logger().Error("server: panic", "path", c.Request.URL.Path, "panic", v)
		ResponseErrorWithMsg(c, http.StatusInternalServerError, CodeServerBusy, fmt.Sprint(v))
	})
}
