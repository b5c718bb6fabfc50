package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cologi/hubcustody/pkg/custody_server/middleware"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog(t *testing.T) {
	var requestID string
	handler := middleware.Log(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ = r.Context().Value(middleware.REQUEST_ID).(string)
		http.Error(w, "no", http.StatusTeapot)
	}))

	response := httptest.NewRecorder()
	handler.ServeHTTP(response, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusTeapot, response.Code)
	require.NotEmpty(t, requestID)
	assert.Equal(t, requestID, response.Header().Get("X-Request-ID"))
	decoded, err := base58.Decode(requestID)
	require.NoError(t, err)
	assert.Len(t, decoded, 16)
}

func TestRateLimit(t *testing.T) {
	handler := middleware.RateLimit(0.001, 2)(OkHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		response := httptest.NewRecorder()
		handler.ServeHTTP(response, httptest.NewRequest("POST", "/cbapi/v1/devanning_result", nil))
		codes = append(codes, response.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	unlimited := middleware.RateLimit(0, 0)(OkHandler)
	for i := 0; i < 10; i++ {
		response := httptest.NewRecorder()
		unlimited.ServeHTTP(response, httptest.NewRequest("POST", "/cbapi/v1/devanning_result", nil))
		assert.Equal(t, http.StatusOK, response.Code)
	}
}
