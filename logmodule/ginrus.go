package logmodule

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Ginrus returns a gin middleware that logs each request through logrus
// under the given prefix.
func Ginrus(prefix string) gin.HandlerFunc {
	entry := logrus.WithField("prefix", prefix)

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		entry.WithFields(logrus.Fields{
			"status":    c.Writer.Status(),
			"method":    c.Request.Method,
			"path":      path,
			"client_ip": c.ClientIP(),
			"latency":   time.Since(start),
		}).Info()
	}
}
