package models

import "github.com/samber/mo"

// DetectedLanguage is the source language guessed by the translation service.
type DetectedLanguage struct {
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}

// Translation is the text translated into a single target language.
type Translation struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// TranslationResult is the outcome of translating one input text.
type TranslationResult struct {
	DetectedLanguage mo.Option[DetectedLanguage]
	Translations     []Translation
}
