package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func newSignedEngine(secret string, reached *bool, seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/callback", LineSignature(secret), func(c *gin.Context) {
		*reached = true
		raw, _ := RawBody(c)
		*seen = string(raw)
		c.String(http.StatusOK, "OK")
	})
	return r
}

func TestLineSignature(t *testing.T) {
	const secret = "channel-secret"
	const body = `{"destination":"U1","events":[]}`

	tests := []struct {
		name        string
		signature   string
		wantStatus  int
		wantReached bool
	}{
		{name: "valid", signature: sign(secret, body), wantStatus: http.StatusOK, wantReached: true},
		{name: "missing", signature: "", wantStatus: http.StatusBadRequest, wantReached: false},
		{name: "wrong secret", signature: sign("other", body), wantStatus: http.StatusBadRequest, wantReached: false},
		{name: "garbage", signature: "not-base64!!", wantStatus: http.StatusBadRequest, wantReached: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			var seen string
			r := newSignedEngine(secret, &reached, &seen)

			req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
			if tt.signature != "" {
				req.Header.Set(SignatureHeader, tt.signature)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantReached, reached)
			if tt.wantReached {
				assert.Equal(t, body, seen)
			}
		})
	}
}

func TestLineSignature_TamperedBody(t *testing.T) {
	const secret = "channel-secret"
	var reached bool
	var seen string
	r := newSignedEngine(secret, &reached, &seen)

	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(`{"events":[1]}`))
	req.Header.Set(SignatureHeader, sign(secret, `{"events":[]}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, reached)
}
