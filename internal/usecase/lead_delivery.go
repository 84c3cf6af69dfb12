package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/fellowfy-fy/SnapCeilingBot/internal/domain"
)

type DeliveryOutcome int

const (
	DeliverySent DeliveryOutcome = iota
	DeliveryForbidden
	DeliveryBadTarget
	DeliveryUnknown
)

func (o DeliveryOutcome) String() string {
	switch o {
	case DeliverySent:
		return "sent"
	case DeliveryForbidden:
		return "forbidden"
	case DeliveryBadTarget:
		return "bad_target"
	default:
		return "unknown"
	}
}

// LeadDelivery описывает внешний канал доставки лида (чат менеджеров).
type LeadDelivery interface {
	Send(ctx context.Context, recipient, text string) DeliveryOutcome
}

// ChatDirectory — транспортная сторона доставки: находит получателя
// (числовой id или @handle) и пишет туда текст. Ошибки оборачивают
// domain.ErrForbidden или domain.ErrBadTarget, если транспорт может их различить.
type ChatDirectory interface {
	ResolveChat(ctx context.Context, recipient string) (int64, error)
	SendText(ctx context.Context, chatID int64, text string) error
}

// LeadGateway делает одну попытку доставки и никогда не возвращает ошибку наружу.
type LeadGateway struct {
	chats   ChatDirectory
	logger  *slog.Logger
	metrics Metrics
}

func NewLeadGateway(chats ChatDirectory, logger *slog.Logger, metrics Metrics) *LeadGateway {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &LeadGateway{chats: chats, logger: logger, metrics: metrics}
}

func (g *LeadGateway) Send(ctx context.Context, recipient, text string) DeliveryOutcome {
	outcome := g.send(ctx, recipient, text)
	g.metrics.LeadDelivered(outcome)
	return outcome
}

func (g *LeadGateway) send(ctx context.Context, recipient, text string) DeliveryOutcome {
	chatID, err := g.chats.ResolveChat(ctx, recipient)
	if err != nil {
		return g.fail("resolve", recipient, err)
	}
	if err := g.chats.SendText(ctx, chatID, text); err != nil {
		return g.fail("send", recipient, err)
	}
	g.logger.Info("lead delivered", "recipient", recipient, "chat_id", chatID)
	return DeliverySent
}

func (g *LeadGateway) fail(stage, recipient string, err error) DeliveryOutcome {
	outcome := classifyDeliveryError(err)
	switch outcome {
	case DeliveryForbidden:
		g.logger.Error("lead delivery forbidden: add the bot to the leads chat (channels need admin rights)",
			"stage", stage, "recipient", recipient, "error", err)
	case DeliveryBadTarget:
		g.logger.Error("lead delivery bad target: check LEADS_CHAT_ID and that the bot is a member of that chat",
			"stage", stage, "recipient", recipient, "error", err)
	default:
		g.logger.Error("lead delivery failed", "stage", stage, "recipient", recipient, "error", err)
	}
	return outcome
}

func classifyDeliveryError(err error) DeliveryOutcome {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return DeliveryForbidden
	case errors.Is(err, domain.ErrBadTarget):
		return DeliveryBadTarget
	default:
		return DeliveryUnknown
	}
}
