package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lexmora/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated", incoming: ""},
		{name: "propagated", incoming: "req-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestID(), RequestLogger(testutil.NewTestLogger()))
			r.GET("/ping", func(c *gin.Context) {
				c.String(http.StatusOK, c.GetString("requestID"))
			})

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			id := w.Header().Get(RequestIDHeader)
			assert.Equal(t, id, w.Body.String())
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, id)
			} else {
				_, err := uuid.Parse(id)
				assert.NoError(t, err)
			}
		})
	}
}
