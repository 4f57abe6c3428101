package models

// LanguageOption is one entry of the quick reply language menu.
type LanguageOption struct {
	Label string `json:"label"`
	Tag   string `json:"tag"`
}

// LanguageOptions is the fixed menu offered for every text message, in display order.
var LanguageOptions = []LanguageOption{
	{Label: "英文", Tag: "en"},
	{Label: "日文", Tag: "ja"},
	{Label: "繁體中文", Tag: "zh-Hant"},
	{Label: "文言文", Tag: "lzh"},
}
