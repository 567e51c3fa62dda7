package docapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
)

// loggingMiddleware logs one line per request. Health probes from the
// platform arrive every few seconds, so they are logged at DEBUG.
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		logf := logging.Info
		if param.Path == "/health" && param.StatusCode == http.StatusOK {
			logf = logging.Debug
		}
		logf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
		return ""
	})
}

// corsMiddleware allows browser clients from any origin. The API carries no
// credentials.
func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Accept, Content-Type")
		c.Header("Access-Control-Max-Age", "300")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
