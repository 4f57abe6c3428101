// Package toolstest holds testify mocks for the tools clients. Only tests import it.
package toolstest

import (
	"context"

	"linetranslate/models"

	"github.com/stretchr/testify/mock"
)

// MockReplySender is a testify mock for anything that sends replies.
type MockReplySender struct {
	mock.Mock
}

func (m *MockReplySender) Reply(ctx context.Context, replyToken string, messages []models.Message) error {
	args := m.Called(ctx, replyToken, messages)
	return args.Error(0)
}

// MockTranslator is a testify mock for the translation client.
type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, text string, to string) (models.TranslationResult, error) {
	args := m.Called(ctx, text, to)
	return args.Get(0).(models.TranslationResult), args.Error(1)
}
