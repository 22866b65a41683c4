package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestRecorder receives one observation per served request.
type RequestRecorder interface {
	RecordHTTPRequest(method, path string, statusCode int, duration time.Duration)
}

// InFlightGauge tracks requests currently being served.
type InFlightGauge interface {
	Inc()
	Dec()
}

// Metrics records request counts and latency labelled by route template, so
// path parameters do not multiply series. Unmatched routes share one label.
func Metrics(recorder RequestRecorder, inFlight InFlightGauge, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}
	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}
		if inFlight != nil {
			inFlight.Inc()
			defer inFlight.Dec()
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

//Personal.AI order the ending
