package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitRejectsAfterBurst(t *testing.T) {
	app := newTestApplication(newMockBookModel())
	app.config.limiter.enabled = true
	app.config.limiter.rps = 2
	app.config.limiter.burst = 4

	// Build the handler chain once so all requests share one limiter map.
	handler := app.routes()

	// The burst capacity allows the first four requests straight through.
	for i := 0; i < 4; i++ {
		rec := doHandlerRequest(t, handler, http.MethodGet, "/", "", "")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	// The bucket is now empty and no meaningful time has passed.
	rec := doHandlerRequest(t, handler, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	app := newTestApplication(newMockBookModel())
	app.config.limiter.enabled = false

	handler := app.routes()

	for i := 0; i < 20; i++ {
		rec := doHandlerRequest(t, handler, http.MethodGet, "/", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRecoverPanicReturns500(t *testing.T) {
	app := newTestApplication(newMockBookModel())

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	app.recoverPanic(panicking).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
}
