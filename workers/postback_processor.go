package workers

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"linetranslate/models"

	"github.com/gammazero/workerpool"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const replyTimeout = 10 * time.Second

type ReplySender interface {
	Reply(ctx context.Context, replyToken string, messages []models.Message) error
}

// PostbackProcessor runs postback translations off the webhook request path.
// At most size units run at once and at most maxQueue wait; each unit gets
// taskTimeout to translate and reply.
type PostbackProcessor struct {
	pool        *workerpool.WorkerPool
	translator  Translator
	sender      ReplySender
	capacity    int64
	inFlight    atomic.Int64
	taskTimeout time.Duration

	// mu orders Submit against StopWait; pool.Submit after Stop panics.
	mu      sync.RWMutex
	stopped bool
}

func NewPostbackProcessor(translator Translator, sender ReplySender, size int, maxQueue int, taskTimeout time.Duration) *PostbackProcessor {
	if size <= 0 {
		size = 1
	}
	if maxQueue < 0 {
		maxQueue = 0
	}
	return &PostbackProcessor{
		pool:        workerpool.New(size),
		translator:  translator,
		sender:      sender,
		capacity:    int64(size + maxQueue),
		taskTimeout: taskTimeout,
	}
}

// Submit queues the event and returns at once with the task id used in logs.
// It fails with ErrQueueFull when every worker is busy and the queue is full.
func (p *PostbackProcessor) Submit(ev models.PostbackEvent) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return "", fmt.Errorf("%w: processor stopped", models.ErrQueueFull)
	}
	if p.inFlight.Add(1) > p.capacity {
		p.inFlight.Add(-1)
		return "", models.ErrQueueFull
	}

	taskID := ulid.Make().String()
	p.pool.Submit(func() {
		defer p.inFlight.Add(-1)

		ctx, cancel := context.WithTimeout(context.Background(), p.taskTimeout)
		defer cancel()
		p.Process(ctx, taskID, ev)
	})
	return taskID, nil
}

// InFlight reports running plus queued units.
func (p *PostbackProcessor) InFlight() int {
	return int(p.inFlight.Load())
}

// StopWait stops accepting work and blocks until queued units finish.
// Submit calls racing with it either land before the stop or get ErrQueueFull.
func (p *PostbackProcessor) StopWait() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()

	p.pool.StopWait()
}

// Process is the body of one background unit: decode, translate, reply.
// Every branch ends in exactly one reply attempt and nothing escapes.
func (p *PostbackProcessor) Process(ctx context.Context, taskID string, ev models.PostbackEvent) {
	logger := log.With().Str("task_id", taskID).Str("event_id", ev.EventID).Logger()
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("postback worker: recovered")
		}
	}()

	start := time.Now()
	text := p.replyText(ctx, logger, ev)

	// ctx bounds the translation; the reply still goes out after a timeout.
	replyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), replyTimeout)
	defer cancel()

	if err := p.sender.Reply(replyCtx, ev.ReplyToken, []models.Message{models.TextMessage(text)}); err != nil {
		logger.Error().Err(err).Msg("postback worker: reply failed")
		return
	}
	logger.Info().Dur("elapsed", time.Since(start)).Msg("postback worker: reply sent")
}

func (p *PostbackProcessor) replyText(ctx context.Context, logger zerolog.Logger, ev models.PostbackEvent) (text string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("postback worker: translation panicked")
			text = TranslationErrorMessage
		}
	}()

	payload, err := models.DecodePostback(ev.Data)
	if err != nil {
		logger.Warn().Err(err).Msg("postback worker: invalid postback data")
		return InvalidRequestMessage
	}

	input, ok := payload.Text.Get()
	if !ok {
		if !payload.Lang.IsPresent() {
			return UsageMessage
		}
		logger.Warn().Err(models.ErrMalformedPostback).Msg("postback worker: postback has no text")
		return InvalidRequestMessage
	}

	reply, err := TranslateReply(ctx, p.translator, input, payload.Lang)
	if err != nil {
		logger.Debug().Err(err).Msg("postback worker: translation did not succeed")
		return reply
	}
	if payload.Truncated {
		return reply + "\n" + TruncatedNote
	}
	return reply
}
