package usecase

import (
	"context"
	"io"
	"log/slog"
)

type EventKind int

const (
	EventText EventKind = iota + 1
	EventContact
	EventAction
	EventCommand
)

// Event — входящее событие транспорта, уже без привязки к Telegram.
type Event struct {
	ChatID     int64
	Kind       EventKind
	Text       string
	Phone      string
	Action     string
	Command    string
	MessageID  int
	CallbackID string
}

// Messenger — исходящая сторона транспорта.
type Messenger interface {
	Send(ctx context.Context, chatID int64, r Reply) error
	ClearButtons(ctx context.Context, chatID int64, messageID int) error
	AckAction(ctx context.Context, callbackID string) error
	SendChart(ctx context.Context, chatID int64, labels []string, values []int) error
}

// SessionStore хранит по одной сессии на чат. *Session меняет только очередь своего чата.
type SessionStore interface {
	Get(chatID int64) (*Session, bool)
	Put(chatID int64, s *Session)
	Delete(chatID int64)
}

const (
	CommandStart  = "start"
	CommandFunnel = "funnel"

	textGreeting = "Здравствуйте! Я помогу с натяжными потолками. " +
		"Скажите, какой объект и что планируете? " +
		"Если есть вопросы — задайте. Моя задача: бесплатно записать вас на замер."
	textDenied         = "Доступ запрещен"
	textFunnelDisabled = "Воронка недоступна"
)

// Controller разбирает события одного чата: анкета, кнопки предпросмотра, свободные вопросы.
type Controller struct {
	form       *LeadForm
	sessions   SessionStore
	messenger  Messenger
	consultant *Consultant
	funnel     *FunnelUsecase
	adminIDs   map[int64]struct{}
	logger     *slog.Logger
	metrics    Metrics
}

func NewController(form *LeadForm, sessions SessionStore, messenger Messenger, consultant *Consultant, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		form:       form,
		sessions:   sessions,
		messenger:  messenger,
		consultant: consultant,
		adminIDs:   map[int64]struct{}{},
		logger:     logger,
		metrics:    NopMetrics{},
	}
}

func (c *Controller) SetFunnel(funnel *FunnelUsecase, adminIDs []int64) {
	c.funnel = funnel
	for _, id := range adminIDs {
		c.adminIDs[id] = struct{}{}
	}
}

func (c *Controller) SetMetrics(m Metrics) {
	if m != nil {
		c.metrics = m
	}
}

// Handle обрабатывает одно событие. Для одного чата вызовы не должны идти параллельно.
func (c *Controller) Handle(ctx context.Context, ev Event) {
	switch ev.Kind {
	case EventCommand:
		c.handleCommand(ctx, ev)
	case EventAction:
		c.handleAction(ctx, ev)
	case EventText, EventContact:
		c.handleInput(ctx, ev)
	}
}

func (c *Controller) handleCommand(ctx context.Context, ev Event) {
	switch ev.Command {
	case CommandStart:
		c.send(ctx, ev.ChatID, Reply{Text: textGreeting, Buttons: []Button{BookButton}})
	case CommandFunnel:
		c.sendFunnel(ctx, ev.ChatID)
	default:
		// прочие команды — обычный текст
		ev.Kind = EventText
		c.handleInput(ctx, ev)
	}
}

func (c *Controller) handleAction(ctx context.Context, ev Event) {
	if ev.CallbackID != "" {
		if err := c.messenger.AckAction(ctx, ev.CallbackID); err != nil {
			c.logger.Debug("callback ack failed", "chat_id", ev.ChatID, "error", err)
		}
	}

	switch ev.Action {
	case ActionBook:
		s := &Session{}
		reply := c.form.Start(s)
		c.sessions.Put(ev.ChatID, s)
		c.metrics.FormStarted()
		c.track(ev.ChatID, s.Step)
		c.logger.Info("lead form started", "chat_id", ev.ChatID)
		c.send(ctx, ev.ChatID, reply)

	case ActionConfirm, ActionRestart, ActionCancel:
		if ev.MessageID != 0 {
			if err := c.messenger.ClearButtons(ctx, ev.ChatID, ev.MessageID); err != nil {
				c.logger.Warn("clear buttons failed", "chat_id", ev.ChatID, "error", err)
			}
		}
		s, ok := c.sessions.Get(ev.ChatID)
		if !ok || s.Step != StepConfirm {
			c.logger.Debug("stale preview action", "chat_id", ev.ChatID, "action", ev.Action)
			return
		}
		reply := c.form.Decide(ctx, s, ev.Action)
		if ev.Action == ActionRestart {
			c.metrics.FormStarted()
		}
		c.settle(ev.ChatID, s, StepConfirm)
		if reply.LeadSent {
			c.track(ev.ChatID, StageLeadSent)
		}
		c.logger.Info("lead preview action", "chat_id", ev.ChatID, "action", ev.Action, "sent", reply.LeadSent)
		c.send(ctx, ev.ChatID, reply)

	default:
		c.logger.Debug("unknown action", "chat_id", ev.ChatID, "action", ev.Action)
	}
}

func (c *Controller) handleInput(ctx context.Context, ev Event) {
	s, ok := c.sessions.Get(ev.ChatID)
	if !ok || s.Step == StepIdle {
		if ev.Kind == EventText {
			c.send(ctx, ev.ChatID, c.consultant.Reply(ctx, ev.Text))
		}
		return
	}

	prev := s.Step
	reply := c.form.Handle(s, Input{
		Text:         ev.Text,
		ContactPhone: ev.Phone,
		IsContact:    ev.Kind == EventContact,
	})
	if s.Step == prev && reply.Text != "" && prev != StepConfirm {
		c.metrics.InputRejected(prev)
		c.logger.Debug("lead input rejected", "chat_id", ev.ChatID, "step", prev)
	}
	c.settle(ev.ChatID, s, prev)
	c.send(ctx, ev.ChatID, reply)
}

// settle удаляет завершенные сессии и отмечает новые шаги в воронке.
func (c *Controller) settle(chatID int64, s *Session, prev Step) {
	if s.Step == StepIdle {
		c.sessions.Delete(chatID)
		return
	}
	if s.Step != prev {
		c.track(chatID, s.Step)
	}
}

func (c *Controller) track(chatID int64, step Step) {
	c.metrics.StepReached(step)
	if c.funnel == nil {
		return
	}
	if err := c.funnel.Reach(chatID, step); err != nil {
		c.logger.Warn("funnel hit failed", "chat_id", chatID, "step", step, "error", err)
	}
}

func (c *Controller) sendFunnel(ctx context.Context, chatID int64) {
	if _, ok := c.adminIDs[chatID]; !ok {
		c.logger.Warn("admin denied", "chat_id", chatID)
		c.send(ctx, chatID, Reply{Text: textDenied})
		return
	}
	if c.funnel == nil {
		c.send(ctx, chatID, Reply{Text: textFunnelDisabled})
		return
	}
	labels, values := c.funnel.GraphData()
	if err := c.messenger.SendChart(ctx, chatID, labels, values); err != nil {
		c.logger.Error("funnel chart failed", "chat_id", chatID, "error", err)
		c.send(ctx, chatID, Reply{Text: c.funnel.Chart()})
	}
}

func (c *Controller) send(ctx context.Context, chatID int64, r Reply) {
	if r.Text == "" {
		return
	}
	if err := c.messenger.Send(ctx, chatID, r); err != nil {
		c.logger.Error("send failed", "chat_id", chatID, "error", err)
	}
}
