package tools

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"linetranslate/models"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

const lineTextMaxRunes = 5000

// LineReplySender delivers replies through the LINE Messaging API.
type LineReplySender struct {
	accessToken string
	endpoint    string
	transport   http.RoundTripper
	timeout     time.Duration
}

func NewLineReplySender(accessToken, endpoint string, timeout time.Duration) *LineReplySender {
	return &LineReplySender{
		accessToken: strings.TrimSpace(accessToken),
		endpoint:    strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		transport:   http.DefaultTransport,
		timeout:     timeout,
	}
}

// contextTransport binds every request of one reply call to the caller's context.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(r.WithContext(t.ctx))
}

// Reply sends all messages in order with a single reply call. Each call opens
// its own API client bound to ctx; nothing is shared between replies.
func (s *LineReplySender) Reply(ctx context.Context, replyToken string, messages []models.Message) error {
	if strings.TrimSpace(replyToken) == "" {
		return fmt.Errorf("%w: empty reply token", models.ErrReplyDelivery)
	}
	if len(messages) == 0 {
		return fmt.Errorf("%w: no messages", models.ErrReplyDelivery)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrReplyDelivery, err)
	}

	httpClient := &http.Client{
		Timeout:   s.timeout,
		Transport: contextTransport{ctx: ctx, base: s.transport},
	}
	bot, err := messaging_api.NewMessagingApiAPI(
		s.accessToken,
		messaging_api.WithHTTPClient(httpClient),
		messaging_api.WithEndpoint(s.endpoint),
	)
	if err != nil {
		return fmt.Errorf("%w: build client: %v", models.ErrReplyDelivery, err)
	}

	_, err = bot.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   toLineMessages(messages),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrReplyDelivery, err)
	}
	return nil
}

func toLineMessages(messages []models.Message) []messaging_api.MessageInterface {
	out := make([]messaging_api.MessageInterface, 0, len(messages))
	for _, m := range messages {
		msg := &messaging_api.TextMessage{Text: truncateRunes(m.Text, lineTextMaxRunes)}
		if len(m.QuickReply) > 0 {
			items := make([]messaging_api.QuickReplyItem, 0, len(m.QuickReply))
			for _, opt := range m.QuickReply {
				items = append(items, messaging_api.QuickReplyItem{
					Type: "action",
					Action: &messaging_api.PostbackAction{
						Label:       opt.Label,
						Data:        opt.Data,
						DisplayText: opt.DisplayText,
					},
				})
			}
			msg.QuickReply = &messaging_api.QuickReply{Items: items}
		}
		out = append(out, msg)
	}
	return out
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
