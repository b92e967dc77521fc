package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping() error {
	return s.err
}

func TestSystemHandler_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("reports ok when the database responds", func(t *testing.T) {
		engine := gin.New()
		NewSystemHandler(stubPinger{}, "1.0.0").RegisterRoutes(engine)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
		assert.Contains(t, w.Body.String(), `"version":"1.0.0"`)
	})

	t.Run("reports unavailable when the database is down", func(t *testing.T) {
		engine := gin.New()
		NewSystemHandler(stubPinger{err: errors.New("connection refused")}, "1.0.0").RegisterRoutes(engine)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unavailable"`)
	})
}
