package telegram

import (
	"context"
	"io"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fellowfy-fy/SnapCeilingBot/internal/usecase"
)

// Handler читает апдейты long polling'ом и передает их контроллеру через pump.
type Handler struct {
	bot    *tgbotapi.BotAPI
	pump   *pump
	logger *slog.Logger
}

func NewHandler(bot *tgbotapi.BotAPI, controller *usecase.Controller, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		bot:    bot,
		pump:   newPump(controller.Handle),
		logger: logger,
	}
}

// Run работает до отмены ctx, затем дожидается обработки начатых событий.
func (h *Handler) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := h.bot.GetUpdatesChan(u)

	// начатый переход (включая доставку лида) доводим до конца даже при остановке
	handleCtx := context.WithoutCancel(ctx)
	defer h.pump.Wait()

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			h.logger.Info("stopped receiving updates")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			ev, ok := toEvent(update)
			if !ok {
				if err := ackOrphanCallback(h.bot, update); err != nil {
					h.logger.Debug("callback ack failed", "error", err)
				}
				continue
			}
			h.pump.Dispatch(handleCtx, ev)
		}
	}
}

// ackOrphanCallback снимает «часики» с кнопки, которую некуда направить:
// inline-режим или сообщение уже недоступно.
func ackOrphanCallback(bot botAPI, update tgbotapi.Update) error {
	cq := update.CallbackQuery
	if cq == nil || (cq.Message != nil && cq.Message.Chat != nil) {
		return nil
	}
	_, err := bot.Request(tgbotapi.NewCallback(cq.ID, ""))
	return err
}

// toEvent переводит апдейт Telegram в событие контроллера.
// Фото, стикеры и прочие вложения без текста отбрасываются.
func toEvent(update tgbotapi.Update) (usecase.Event, bool) {
	if cq := update.CallbackQuery; cq != nil {
		if cq.Message == nil || cq.Message.Chat == nil {
			return usecase.Event{}, false
		}
		return usecase.Event{
			ChatID:     cq.Message.Chat.ID,
			Kind:       usecase.EventAction,
			Action:     cq.Data,
			MessageID:  cq.Message.MessageID,
			CallbackID: cq.ID,
		}, true
	}

	m := update.Message
	if m == nil || m.Chat == nil {
		return usecase.Event{}, false
	}
	ev := usecase.Event{ChatID: m.Chat.ID}
	switch {
	case m.Contact != nil:
		ev.Kind = usecase.EventContact
		ev.Phone = m.Contact.PhoneNumber
	case m.IsCommand():
		ev.Kind = usecase.EventCommand
		ev.Command = m.Command()
		ev.Text = m.Text
	case strings.TrimSpace(m.Text) != "":
		ev.Kind = usecase.EventText
		ev.Text = m.Text
	default:
		return usecase.Event{}, false
	}
	return ev, true
}
