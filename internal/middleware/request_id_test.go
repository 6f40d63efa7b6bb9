package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRequestIDGeneratesWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/api/faqs", nil)

	RequestID()(c)

	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	value, ok := c.Get("request_id")
	require.True(t, ok)
	require.NotEmpty(t, value)
}

func TestRequestIDKeepsIncomingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/api/faqs", nil)
	c.Request.Header.Set("X-Request-Id", "incoming-id")

	RequestID()(c)

	require.Equal(t, "incoming-id", rec.Header().Get("X-Request-Id"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("OPTIONS", "/api/faqs", nil)
	c.Request.Header.Set("Origin", "http://localhost:5173")

	CORS([]string{"http://localhost:5173"})(c)

	require.True(t, c.IsAborted())
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/api/faqs", nil)
	c.Request.Header.Set("Origin", "http://evil.example")

	CORS([]string{"http://localhost:5173"})(c)

	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
