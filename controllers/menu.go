package controllers

import "linetranslate/models"

const MenuPrompt = "請選擇要翻譯的語言:"

// BuildLanguageMenu offers every configured language for text. Each option
// carries the target tag and the original text in its postback data.
func BuildLanguageMenu(text string) models.Message {
	options := make([]models.QuickReplyOption, 0, len(models.LanguageOptions))
	for _, lang := range models.LanguageOptions {
		options = append(options, models.QuickReplyOption{
			Label:       lang.Label,
			DisplayText: lang.Label,
			Data:        models.EncodeLanguagePostback(lang.Tag, text),
		})
	}
	return models.Message{
		Text:       MenuPrompt,
		QuickReply: options,
	}
}
