package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fellowfy-fy/SnapCeilingBot/internal/domain"
)

const textAssistantDown = "Секунду, связь с моделью недоступна. Попробуйте ещё раз."

// DefaultAssistantTimeout ограничивает ожидание модели, пока висит очередь чата.
const DefaultAssistantTimeout = 30 * time.Second

// Assistant генерирует ответ на свободный вопрос (LLM).
type Assistant interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Consultant отвечает на вопросы вне анкеты и никогда не отдает пользователю текст ошибки.
type Consultant struct {
	assistant Assistant
	timeout   time.Duration
	logger    *slog.Logger
	metrics   Metrics
}

func NewConsultant(assistant Assistant, logger *slog.Logger, metrics Metrics) *Consultant {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Consultant{
		assistant: assistant,
		timeout:   DefaultAssistantTimeout,
		logger:    logger,
		metrics:   metrics,
	}
}

func (c *Consultant) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

func (c *Consultant) Reply(ctx context.Context, question string) Reply {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	answer, err := c.assistant.Answer(ctx, strings.TrimSpace(question))
	if err == nil && strings.TrimSpace(answer) == "" {
		err = domain.ErrEmptyAnswer
	}
	c.metrics.AssistantAnswered(err == nil)
	if err != nil {
		c.logger.Warn("assistant failed", "error", err)
		answer = textAssistantDown
	}
	return Reply{Text: answer, Buttons: []Button{BookButton}}
}
