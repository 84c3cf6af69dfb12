package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fellowfy-fy/SnapCeilingBot/internal/domain"
	"github.com/fellowfy-fy/SnapCeilingBot/internal/usecase"
)

const contactButtonText = "📞 Отправить телефон"

// botAPI — то подмножество *tgbotapi.BotAPI, которое нужно отправителю.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetChat(config tgbotapi.ChatInfoConfig) (tgbotapi.Chat, error)
}

// Sender реализует usecase.Messenger и usecase.ChatDirectory поверх Bot API.
type Sender struct{ bot botAPI }

func NewSender(bot botAPI) *Sender { return &Sender{bot: bot} }

func (s *Sender) Send(_ context.Context, chatID int64, r usecase.Reply) error {
	msg := tgbotapi.NewMessage(chatID, r.Text)
	switch {
	case len(r.Buttons) > 0:
		msg.ReplyMarkup = inlineKeyboard(r.Buttons)
	case r.RequestContact:
		msg.ReplyMarkup = contactKeyboard()
	case r.RemoveKeyboard:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	}
	_, err := s.bot.Send(msg)
	return classifyError(err)
}

func (s *Sender) ClearButtons(_ context.Context, chatID int64, messageID int) error {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	_, err := s.bot.Request(edit)
	return classifyError(err)
}

func (s *Sender) AckAction(_ context.Context, callbackID string) error {
	_, err := s.bot.Request(tgbotapi.NewCallback(callbackID, ""))
	return classifyError(err)
}

func (s *Sender) SendChart(_ context.Context, chatID int64, labels []string, values []int) error {
	png, err := renderFunnelChart(labels, values)
	if err != nil {
		return fmt.Errorf("render funnel chart: %w", err)
	}
	fname := "funnel_" + strconv.FormatInt(time.Now().UnixNano(), 10) + ".png"
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: fname, Bytes: png})
	_, err = s.bot.Send(photo)
	return classifyError(err)
}

// ResolveChat проверяет, что бот видит чат получателя, и возвращает его id.
func (s *Sender) ResolveChat(_ context.Context, recipient string) (int64, error) {
	cfg, err := chatConfig(recipient)
	if err != nil {
		return 0, err
	}
	chat, err := s.bot.GetChat(tgbotapi.ChatInfoConfig{ChatConfig: cfg})
	if err != nil {
		return 0, fmt.Errorf("get chat %q: %w", recipient, classifyError(err))
	}
	return chat.ID, nil
}

func (s *Sender) SendText(_ context.Context, chatID int64, text string) error {
	_, err := s.bot.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return fmt.Errorf("send to chat %d: %w", chatID, classifyError(err))
	}
	return nil
}

// chatConfig понимает числовой id (в т.ч. -100… для групп) и @username.
func chatConfig(recipient string) (tgbotapi.ChatConfig, error) {
	r := strings.TrimSpace(recipient)
	if r == "" {
		return tgbotapi.ChatConfig{}, fmt.Errorf("%w: recipient is not configured", domain.ErrBadTarget)
	}
	if id, err := strconv.ParseInt(r, 10, 64); err == nil {
		return tgbotapi.ChatConfig{ChatID: id}, nil
	}
	if !strings.HasPrefix(r, "@") {
		r = "@" + r
	}
	if len(r) < 2 || strings.ContainsAny(r, " \t\n") {
		return tgbotapi.ChatConfig{}, fmt.Errorf("%w: malformed recipient %q", domain.ErrBadTarget, recipient)
	}
	return tgbotapi.ChatConfig{SuperGroupUsername: r}, nil
}

// classifyError переводит 403/400 Bot API в доменные ошибки, остальное не трогает.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		var valErr tgbotapi.Error
		if !errors.As(err, &valErr) {
			return err
		}
		apiErr = &valErr
	}
	switch apiErr.Code {
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrForbidden, apiErr.Message)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrBadTarget, apiErr.Message)
	}
	return err
}

func inlineKeyboard(buttons []usecase.Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Action),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func contactKeyboard() tgbotapi.ReplyKeyboardMarkup {
	btn := tgbotapi.NewKeyboardButtonContact(contactButtonText)
	kb := tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(btn))
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}
