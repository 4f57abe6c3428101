package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"linetranslate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedReply struct {
	ReplyToken string `json:"replyToken"`
	Messages   []struct {
		Text       string `json:"text"`
		QuickReply *struct {
			Items []struct {
				Action struct {
					Label       string `json:"label"`
					Data        string `json:"data"`
					DisplayText string `json:"displayText"`
				} `json:"action"`
			} `json:"items"`
		} `json:"quickReply"`
	} `json:"messages"`
}

func newLineServer(t *testing.T, status int, captured *capturedReply, authHeader *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/bot/message/reply", r.URL.Path)
		if authHeader != nil {
			*authHeader = r.Header.Get("Authorization")
		}
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"sentMessages":[{"id":"1","quoteToken":"q"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"Invalid reply token"}`))
	}))
}

func TestLineReplySender_Reply(t *testing.T) {
	t.Run("sends text with quick reply", func(t *testing.T) {
		var got capturedReply
		var auth string
		server := newLineServer(t, http.StatusOK, &got, &auth)
		defer server.Close()

		sender := NewLineReplySender("access-token", server.URL, time.Second)
		err := sender.Reply(context.Background(), "reply-token", []models.Message{
			{
				Text: "pick one",
				QuickReply: []models.QuickReplyOption{
					{Label: "英文", DisplayText: "英文", Data: "lang=en&text=hi"},
					{Label: "日文", DisplayText: "日文", Data: "lang=ja&text=hi"},
				},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "Bearer access-token", auth)
		assert.Equal(t, "reply-token", got.ReplyToken)
		require.Len(t, got.Messages, 1)
		assert.Equal(t, "pick one", got.Messages[0].Text)
		require.NotNil(t, got.Messages[0].QuickReply)
		require.Len(t, got.Messages[0].QuickReply.Items, 2)
		assert.Equal(t, "英文", got.Messages[0].QuickReply.Items[0].Action.Label)
		assert.Equal(t, "lang=en&text=hi", got.Messages[0].QuickReply.Items[0].Action.Data)
		assert.Equal(t, "日文", got.Messages[0].QuickReply.Items[1].Action.DisplayText)
	})

	t.Run("long text is truncated", func(t *testing.T) {
		var got capturedReply
		server := newLineServer(t, http.StatusOK, &got, nil)
		defer server.Close()

		sender := NewLineReplySender("access-token", server.URL, time.Second)
		err := sender.Reply(context.Background(), "reply-token", []models.Message{
			models.TextMessage(strings.Repeat("字", lineTextMaxRunes+10)),
		})
		require.NoError(t, err)
		require.Len(t, got.Messages, 1)
		assert.Equal(t, lineTextMaxRunes, utf8.RuneCountInString(got.Messages[0].Text))
		assert.Nil(t, got.Messages[0].QuickReply)
	})

	t.Run("rejected token", func(t *testing.T) {
		server := newLineServer(t, http.StatusBadRequest, nil, nil)
		defer server.Close()

		sender := NewLineReplySender("access-token", server.URL, time.Second)
		err := sender.Reply(context.Background(), "used-token", []models.Message{models.TextMessage("hi")})
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrReplyDelivery)
	})

	t.Run("empty token is rejected locally", func(t *testing.T) {
		sender := NewLineReplySender("access-token", "http://127.0.0.1:0", time.Second)
		err := sender.Reply(context.Background(), "", []models.Message{models.TextMessage("hi")})
		assert.ErrorIs(t, err, models.ErrReplyDelivery)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		sender := NewLineReplySender("access-token", "http://127.0.0.1:0", time.Second)
		err := sender.Reply(ctx, "reply-token", []models.Message{models.TextMessage("hi")})
		assert.ErrorIs(t, err, models.ErrReplyDelivery)
	})
}
