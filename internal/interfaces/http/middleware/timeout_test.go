package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreTimeout_SetsRequestDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(StoreTimeout(5 * time.Second))

	var deadlineSet bool
	engine.GET("/", func(c *gin.Context) {
		_, deadlineSet = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, deadlineSet)
}

func TestStoreTimeout_DisabledWhenNonPositive(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(StoreTimeout(0))

	var deadlineSet bool
	engine.GET("/", func(c *gin.Context) {
		_, deadlineSet = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.False(t, deadlineSet)
}
