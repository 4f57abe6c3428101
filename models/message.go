package models

// Message is an outbound text message, optionally carrying a quick reply menu.
type Message struct {
	Text       string             `json:"text"`
	QuickReply []QuickReplyOption `json:"quick_reply,omitempty"`
}

// QuickReplyOption is a tappable postback button attached to a Message.
type QuickReplyOption struct {
	Label       string `json:"label"`
	DisplayText string `json:"display_text"`
	Data        string `json:"data"`
}

// TextMessage builds a Message without quick reply items.
func TextMessage(text string) Message {
	return Message{Text: text}
}
