package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/cologi/hubcustody/pkg/util"
	"github.com/sirupsen/logrus"
)

type responseInterceptor struct {
	http.ResponseWriter
	status int
	size   int
}

func (i *responseInterceptor) WriteHeader(status int) {
	i.status = status
	i.ResponseWriter.WriteHeader(status)
}

func (i *responseInterceptor) Write(b []byte) (int, error) {
	if i.status == 0 {
		i.status = http.StatusOK
	}
	n, err := i.ResponseWriter.Write(b)
	i.size += n
	return n, err
}

// Log tags every request with an id, returned in X-Request-ID, and writes one access log line
// when the handler returns.
func Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := util.NewShortID()
		w.Header().Set("X-Request-ID", requestID)
		r = r.WithContext(context.WithValue(r.Context(), REQUEST_ID, requestID))

		interceptor := &responseInterceptor{ResponseWriter: w}
		next.ServeHTTP(interceptor, r)
		if interceptor.status == 0 {
			interceptor.status = http.StatusOK
		}

		entry := logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     interceptor.status,
			"size":       interceptor.size,
			"elapsed":    time.Since(start).String(),
		})
		if interceptor.status/100 == 5 {
			entry.Warn("request failed")
		} else {
			entry.Debug("request returned")
		}
	})
}
