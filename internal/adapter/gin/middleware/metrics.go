package middleware

import (
	"user-api/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Instrument records one call of fn for every request that reaches the route.
// A request counts as an error when it panics or ends with a 5xx status.
func Instrument(rec *metrics.Recorder, fn metrics.Function) gin.HandlerFunc {
	return func(c *gin.Context) {
		call := rec.Track(fn)
		completed := false
		defer func() {
			result := metrics.ResultFromStatus(c.Writer.Status())
			if !completed {
				result = metrics.ResultError
			}
			call.Done(result)
		}()

		c.Next()
		completed = true
	}
}
