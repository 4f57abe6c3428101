package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"linetranslate/middleware"
	"linetranslate/models"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/rs/zerolog/log"
)

// extractEvents keeps the text messages and postbacks this service answers.
// Everything else (follow, stickers, standby events without a reply token)
// is dropped here.
func extractEvents(cb *webhook.CallbackRequest) []models.InboundEvent {
	var out []models.InboundEvent

	for _, event := range cb.Events {
		switch e := event.(type) {
		case webhook.MessageEvent:
			text, ok := e.Message.(webhook.TextMessageContent)
			if !ok || strings.TrimSpace(e.ReplyToken) == "" {
				continue
			}
			out = append(out, models.TextMessageEvent{
				EventID:    e.WebhookEventId,
				UserID:     sourceUserID(e.Source),
				Text:       text.Text,
				ReplyToken: e.ReplyToken,
			})
		case webhook.PostbackEvent:
			if e.Postback == nil || strings.TrimSpace(e.ReplyToken) == "" {
				continue
			}
			out = append(out, models.PostbackEvent{
				EventID:    e.WebhookEventId,
				UserID:     sourceUserID(e.Source),
				Data:       e.Postback.Data,
				ReplyToken: e.ReplyToken,
			})
		}
	}

	return out
}

func sourceUserID(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	}
	return ""
}

type WebhookController struct {
	dispatcher *Dispatcher
}

func NewWebhookController(dispatcher *Dispatcher) *WebhookController {
	return &WebhookController{dispatcher: dispatcher}
}

// POST /callback
func (wc *WebhookController) Callback(c *gin.Context) {
	raw, ok := middleware.RawBody(c)
	if !ok {
		RespondError(c, "unverified request", http.StatusBadRequest)
		return
	}
	log.Debug().Str("body", string(raw)).Msg("webhook: request body")

	var cb webhook.CallbackRequest
	if err := json.Unmarshal(raw, &cb); err != nil {
		RespondError(c, "invalid json", http.StatusBadRequest)
		return
	}

	for _, ev := range extractEvents(&cb) {
		wc.dispatcher.Dispatch(c.Request.Context(), ev)
	}

	c.String(http.StatusOK, "OK")
}

// GET /health
func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
