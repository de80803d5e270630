package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketRefills(t *testing.T) {
	bucket := newTokenBucket(2, 1, 10*time.Millisecond)

	ok, _ := bucket.allow()
	assert.True(t, ok)
	ok, _ = bucket.allow()
	assert.True(t, ok)

	ok, wait := bucket.allow()
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	time.Sleep(15 * time.Millisecond)
	ok, _ = bucket.allow()
	assert.True(t, ok)
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	limiter := NewRateLimiter()
	e := echo.New()

	handler := limiter.Limit("place_order")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	var lastCode int
	for i := 0; i < 7; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/orders", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("uid", "user-1")
		require.NoError(t, handler(c))
		lastCode = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestRateLimiterIsolatesUsers(t *testing.T) {
	limiter := NewRateLimiter()
	e := echo.New()

	handler := limiter.Limit("place_order")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/orders", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("uid", "user-1")
		require.NoError(t, handler(c))
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "user-2")
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
