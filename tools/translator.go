package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"linetranslate/models"

	"github.com/go-resty/resty/v2"
	"github.com/samber/mo"
)

const translatorAPIVersion = "3.0"

// TranslatorError is a non-2xx answer from the translation service.
type TranslatorError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *TranslatorError) Error() string {
	return fmt.Sprintf("translator error: status=%d code=%d message=%s", e.StatusCode, e.Code, e.Message)
}

// AzureTranslator is a thin client for the Azure AI Translator text API (v3).
type AzureTranslator struct {
	client *resty.Client
	apiKey string
	region string
}

func NewAzureTranslator(endpoint, apiKey, region string, timeout time.Duration) *AzureTranslator {
	client := resty.New().
		SetBaseURL(strings.TrimRight(strings.TrimSpace(endpoint), "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &AzureTranslator{
		client: client,
		apiKey: strings.TrimSpace(apiKey),
		region: strings.TrimSpace(region),
	}
}

type translateRequestItem struct {
	Text string `json:"Text"`
}

type translateResponseItem struct {
	DetectedLanguage *struct {
		Language string  `json:"language"`
		Score    float64 `json:"score"`
	} `json:"detectedLanguage"`
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

type translatorErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Translate sends one text and asks for exactly one target language.
func (t *AzureTranslator) Translate(ctx context.Context, text string, to string) (models.TranslationResult, error) {
	var out []translateResponseItem
	var apiErr translatorErrorBody

	req := t.client.R().
		SetContext(ctx).
		SetHeader("Ocp-Apim-Subscription-Key", t.apiKey).
		SetQueryParams(map[string]string{
			"api-version": translatorAPIVersion,
			"to":          to,
		}).
		SetBody([]translateRequestItem{{Text: text}}).
		SetResult(&out).
		SetError(&apiErr)
	if t.region != "" {
		req.SetHeader("Ocp-Apim-Subscription-Region", t.region)
	}

	resp, err := req.Post("/translate")
	if err != nil {
		return models.TranslationResult{}, fmt.Errorf("translator request: %w", err)
	}

	if resp.StatusCode() >= 300 {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		return models.TranslationResult{}, &TranslatorError{
			StatusCode: resp.StatusCode(),
			Code:       apiErr.Error.Code,
			Message:    msg,
		}
	}

	result := models.TranslationResult{DetectedLanguage: mo.None[models.DetectedLanguage]()}
	if len(out) == 0 {
		return result, nil
	}

	item := out[0]
	if item.DetectedLanguage != nil {
		result.DetectedLanguage = mo.Some(models.DetectedLanguage{
			Language: item.DetectedLanguage.Language,
			Score:    item.DetectedLanguage.Score,
		})
	}
	for _, tr := range item.Translations {
		result.Translations = append(result.Translations, models.Translation{To: tr.To, Text: tr.Text})
	}
	return result, nil
}
