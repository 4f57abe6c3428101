package controllers

import (
	"testing"
	"unicode/utf8"

	"linetranslate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLanguageMenu(t *testing.T) {
	menu := BuildLanguageMenu("早安")

	assert.Equal(t, MenuPrompt, menu.Text)
	require.Len(t, menu.QuickReply, 4)

	wantLabels := []string{"英文", "日文", "繁體中文", "文言文"}
	wantTags := []string{"en", "ja", "zh-Hant", "lzh"}

	for i, opt := range menu.QuickReply {
		assert.Equal(t, wantLabels[i], opt.Label)
		assert.Equal(t, wantLabels[i], opt.DisplayText)

		payload, err := models.DecodePostback(opt.Data)
		require.NoError(t, err)
		assert.Equal(t, wantTags[i], payload.Lang.OrEmpty())
		assert.Equal(t, "早安", payload.Text.OrEmpty())
		assert.LessOrEqual(t, utf8.RuneCountInString(opt.Data), models.PostbackDataMaxLen)
	}
}

func TestBuildLanguageMenu_TextWithSeparators(t *testing.T) {
	menu := BuildLanguageMenu("a=1&b=2")

	for _, opt := range menu.QuickReply {
		payload, err := models.DecodePostback(opt.Data)
		require.NoError(t, err)
		assert.Equal(t, "a=1&b=2", payload.Text.OrEmpty())
		assert.Empty(t, payload.Extra)
	}
}

func TestBuildLanguageMenu_LongChineseSentence(t *testing.T) {
	text := "今天天氣很好，我們一起去公園散步吧。下午如果下雨的話，就改去附近的咖啡廳坐坐，順便聊聊最近的工作。"

	menu := BuildLanguageMenu(text)

	require.Len(t, menu.QuickReply, 4)
	for _, opt := range menu.QuickReply {
		payload, err := models.DecodePostback(opt.Data)
		require.NoError(t, err)
		assert.Equal(t, text, payload.Text.OrEmpty())
		assert.False(t, payload.Truncated)
	}
}
