package middleware

import (
	"net/http"
	"strings"

	"linetranslate/models"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/rs/zerolog/log"
)

const SignatureHeader = "X-Line-Signature"

const rawBodyKey = "line_raw_body"

// LineSignature verifies X-Line-Signature (HMAC-SHA256 of the raw body with the
// channel secret) and stops the chain with 400 when it is missing or wrong.
// The verified body is kept in the context for the handler.
func LineSignature(channelSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
			return
		}

		signature := strings.TrimSpace(c.GetHeader(SignatureHeader))
		if signature == "" || !webhook.ValidateSignature(channelSecret, signature, raw) {
			log.Warn().
				Str("path", c.Request.URL.Path).
				Bool("has_signature", signature != "").
				Msg("webhook: signature rejected")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidSignature.Error()})
			return
		}

		c.Set(rawBodyKey, raw)
		c.Next()
	}
}

// RawBody returns the body verified by LineSignature.
func RawBody(c *gin.Context) ([]byte, bool) {
	v, ok := c.Get(rawBodyKey)
	if !ok {
		return nil, false
	}
	raw, ok := v.([]byte)
	return raw, ok
}
