package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestAllowBurstThenThrottle(t *testing.T) {
	l := New(1, 2, time.Minute)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "keys are independent")

	l.now = func() time.Time { return base.Add(1100 * time.Millisecond) }
	assert.True(t, l.Allow("a"))
}

func TestIdleKeysAreEvicted(t *testing.T) {
	l := New(1, 1, time.Minute)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }
	l.Allow("a")
	l.Allow("b")
	assert.Equal(t, 2, l.Size())

	l.now = func() time.Time { return base.Add(2 * time.Minute) }
	l.Allow("c")
	assert.Equal(t, 1, l.Size())
}

func TestMiddleware(t *testing.T) {
	l := New(0.001, 1, time.Minute)
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, l.Middleware())

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusNoContent, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}
