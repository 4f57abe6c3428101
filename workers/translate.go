package workers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"linetranslate/models"
	"linetranslate/tools"

	"github.com/rs/zerolog/log"
	"github.com/samber/mo"
)

// User facing replies. Internal error details never reach the user.
const (
	UsageMessage            = "Please select a language"
	TranslationErrorMessage = "Translation error occurred"
	NoTranslationMessage    = "No translation available"
	InvalidRequestMessage   = "Invalid request"
	TruncatedNote           = "(Text was too long, only the beginning was translated)"
)

type Translator interface {
	Translate(ctx context.Context, text string, to string) (models.TranslationResult, error)
}

// TranslateReply turns a translation request into the text sent back to the
// user. The returned error only classifies the outcome; the string is always
// safe to send.
func TranslateReply(ctx context.Context, translator Translator, text string, lang mo.Option[string]) (string, error) {
	to, ok := lang.Get()
	if !ok {
		return UsageMessage, models.ErrNoLanguage
	}

	result, err := translator.Translate(ctx, text, to)
	if err != nil {
		var trErr *tools.TranslatorError
		if errors.As(err, &trErr) {
			log.Error().
				Int("status", trErr.StatusCode).
				Int("code", trErr.Code).
				Str("message", trErr.Message).
				Msg("translator: service error")
		} else {
			log.Error().Err(err).Msg("translator: request failed")
		}
		return TranslationErrorMessage, err
	}

	if detected, ok := result.DetectedLanguage.Get(); ok {
		log.Info().
			Str("detected_language", detected.Language).
			Float64("score", detected.Score).
			Str("to", to).
			Msg("translator: detected source language")
	}

	if len(result.Translations) == 0 {
		return NoTranslationMessage, models.ErrNoTranslation
	}
	return FormatTranslation(result.Translations), nil
}

// FormatTranslation renders one block per target language, blocks separated by a newline.
func FormatTranslation(translations []models.Translation) string {
	blocks := make([]string, 0, len(translations))
	for _, t := range translations {
		blocks = append(blocks, fmt.Sprintf("翻譯成: '%s'\n結果: '%s'", t.To, t.Text))
	}
	return strings.Join(blocks, "\n")
}
