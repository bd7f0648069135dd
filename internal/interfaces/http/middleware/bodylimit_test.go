package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	echo := func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "read failed")
			return
		}
		c.String(http.StatusOK, string(body))
	}

	t.Run("allows request within limit", func(t *testing.T) {
		router := gin.New()
		router.Use(BodyLimit(1024))
		router.POST("/test", echo)

		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte("small body")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "small body", w.Body.String())
	})

	t.Run("rejects declared oversize body with envelope", func(t *testing.T) {
		router := gin.New()
		router.Use(BodyLimit(100))
		router.POST("/test", echo)

		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte(strings.Repeat("x", 200))))
		req.ContentLength = 200
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_REQUEST_TOO_LARGE")
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("caps streamed body without content length", func(t *testing.T) {
		router := gin.New()
		router.Use(BodyLimit(10))
		router.POST("/test", echo)

		req := httptest.NewRequest(http.MethodPost, "/test", io.NopCloser(strings.NewReader(strings.Repeat("y", 50))))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("zero limit passes through", func(t *testing.T) {
		router := gin.New()
		router.Use(BodyLimit(0))
		router.POST("/test", echo)

		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte(strings.Repeat("z", 4096))))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
