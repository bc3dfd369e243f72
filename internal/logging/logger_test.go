package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterLevels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"debug level", "debug", zerolog.DebugLevel},
		{"warn level", "warn", zerolog.WarnLevel},
		{"default info", "", zerolog.InfoLevel},
		{"garbage falls back to info", "loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewWithWriter(&bytes.Buffer{}, tt.level)
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestComponentAddsField(t *testing.T) {
	var buf bytes.Buffer
	log := Component(NewWithWriter(&buf, "info"), "booking")
	log.Info().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "booking", line["component"])
	assert.Equal(t, serviceName, line["service"])
	assert.Equal(t, "hello", line["message"])
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer

	r := gin.New()
	r.Use(RequestLogger(NewWithWriter(&buf, "info")))
	r.GET("/missing/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing/42", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "/missing/:id", line["path"])
	assert.EqualValues(t, 404, line["status"])
}
