package controllers

import (
	"context"
	"errors"

	"linetranslate/models"
	"linetranslate/workers"

	"github.com/rs/zerolog/log"
)

const BusyMessage = "Service is busy, please try again later"

// PostbackQueue accepts postback events for background processing.
type PostbackQueue interface {
	Submit(ev models.PostbackEvent) (string, error)
}

// Dispatcher routes verified events. Text messages are answered inline with
// the language menu; postbacks are handed to the queue and never block.
type Dispatcher struct {
	sender workers.ReplySender
	queue  PostbackQueue
}

func NewDispatcher(sender workers.ReplySender, queue PostbackQueue) *Dispatcher {
	return &Dispatcher{sender: sender, queue: queue}
}

func (d *Dispatcher) Dispatch(ctx context.Context, event models.InboundEvent) {
	if event == nil {
		return
	}
	switch ev := event.(type) {
	case models.TextMessageEvent:
		d.handleText(ctx, ev)
	case models.PostbackEvent:
		d.handlePostback(ctx, ev)
	default:
		log.Debug().Str("event_id", event.GetEventID()).Msg("dispatcher: unsupported event ignored")
	}
}

func (d *Dispatcher) handleText(ctx context.Context, ev models.TextMessageEvent) {
	menu := BuildLanguageMenu(ev.Text)
	if err := d.sender.Reply(ctx, ev.ReplyToken, []models.Message{menu}); err != nil {
		log.Error().Err(err).Str("event_id", ev.EventID).Msg("dispatcher: menu reply failed")
		return
	}
	log.Info().Str("event_id", ev.EventID).Str("user_id", ev.UserID).Msg("dispatcher: language menu sent")
}

func (d *Dispatcher) handlePostback(ctx context.Context, ev models.PostbackEvent) {
	taskID, err := d.queue.Submit(ev)
	if err == nil {
		log.Info().Str("event_id", ev.EventID).Str("task_id", taskID).Msg("dispatcher: postback queued")
		return
	}

	log.Warn().Err(err).Str("event_id", ev.EventID).Msg("dispatcher: postback rejected")
	if !errors.Is(err, models.ErrQueueFull) {
		return
	}
	if err := d.sender.Reply(ctx, ev.ReplyToken, []models.Message{models.TextMessage(BusyMessage)}); err != nil {
		log.Error().Err(err).Str("event_id", ev.EventID).Msg("dispatcher: busy reply failed")
	}
}
