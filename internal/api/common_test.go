package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAbsoluteURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name  string
		proto string
		in    string
		want  string
	}{
		{"plain request", "", "/media/a.txt", "http://example.com/media/a.txt"},
		{"forwarded https", "https", "/media/a.txt", "https://example.com/media/a.txt"},
		{"forwarded mixed case", "HTTPS", "/media/a.txt", "https://example.com/media/a.txt"},
		{"unknown scheme ignored", "javascript", "/media/a.txt", "http://example.com/media/a.txt"},
		{"injected host ignored", "https://evil.test/x?", "/media/a.txt", "http://example.com/media/a.txt"},
		{"already absolute", "https", "https://bucket.s3.amazonaws.com/a.txt", "https://bucket.s3.amazonaws.com/a.txt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/api/files/", nil)
			if tc.proto != "" {
				c.Request.Header.Set("X-Forwarded-Proto", tc.proto)
			}
			assert.Equal(t, tc.want, absoluteURL(c, tc.in))
		})
	}
}
