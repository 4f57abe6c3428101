package models

// InboundEvent is a verified webhook event the dispatcher knows how to handle.
// Only TextMessageEvent and PostbackEvent implement it.
type InboundEvent interface {
	GetReplyToken() string
	GetEventID() string
	isInboundEvent()
}

// TextMessageEvent is a plain text message sent by the user.
type TextMessageEvent struct {
	EventID    string `json:"event_id"`
	UserID     string `json:"user_id"`
	Text       string `json:"text"`
	ReplyToken string `json:"reply_token"`
}

func (e TextMessageEvent) GetReplyToken() string { return e.ReplyToken }
func (e TextMessageEvent) GetEventID() string    { return e.EventID }
func (TextMessageEvent) isInboundEvent()         {}

// PostbackEvent is sent when the user taps a quick reply option.
// Data is returned verbatim from the option that was tapped.
type PostbackEvent struct {
	EventID    string `json:"event_id"`
	UserID     string `json:"user_id"`
	Data       string `json:"data"`
	ReplyToken string `json:"reply_token"`
}

func (e PostbackEvent) GetReplyToken() string { return e.ReplyToken }
func (e PostbackEvent) GetEventID() string    { return e.EventID }
func (PostbackEvent) isInboundEvent()         {}
