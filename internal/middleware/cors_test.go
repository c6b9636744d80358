package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorsMiddleware(t *testing.T) {
	testCases := []struct {
		name           string
		origin         string
		userAgent      string
		expectCors     bool
		expectedStatus int
	}{
		{
			name:           "AllowedOrigin",
			origin:         "https://fittracker.2beens.online",
			expectCors:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "AllowedLocalhostOrigin",
			origin:         "http://localhost:8080",
			expectCors:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "NotAllowedOrigin",
			origin:         "https://www.notallowed.com",
			expectCors:     false,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "AllowedCurlUserAgent",
			userAgent:      "curl/8.5.0",
			expectCors:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "AllowedTestAgent",
			userAgent:      "test-agent/1.0",
			expectCors:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "NotAllowedUserAgent",
			userAgent:      "UnknownAgent/1.0",
			expectCors:     false,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req, err := http.NewRequest("GET", "/workouts", nil)
			require.NoError(t, err)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("User-Agent", tc.userAgent)

			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
			handler := Cors()(nextHandler)

			handler.ServeHTTP(rr, req)

			if tc.expectCors {
				assert.Equal(t, tc.origin, rr.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Equal(t, tc.expectedStatus, rr.Code, "Unexpected status code")
			}
		})
	}
}
