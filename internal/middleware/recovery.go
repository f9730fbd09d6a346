package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Recovery handles panics, logs them and renders the internal-error view.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("stack", string(debug.Stack())).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Str("client_ip", c.ClientIP()).
					Str("request_id", c.GetString(ContextRequestID)).
					Msg("request panic recovered")

				if IsFragment(c) {
					c.Header(HeaderHXRetarget, "#main-content")
				}
				c.HTML(http.StatusInternalServerError, "components/internal_error", gin.H{
					"RequestID": c.GetString(ContextRequestID),
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
