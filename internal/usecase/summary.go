package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fellowfy-fy/SnapCeilingBot/internal/domain"
)

const (
	previewHeader      = "Проверьте, всё ли верно. Если да — отправьте заявку:"
	notificationHeader = "Пришел новый лид!"

	phoneMissing    = "не указан"
	callTimeMissing = "не указано"
	commentMissing  = "—"
)

// BuildPreview — текст предпросмотра заявки для пользователя.
func BuildPreview(l domain.Lead) string {
	return previewHeader + "\n\n" + leadSummary(l)
}

// BuildNotification — текст уведомления для чата менеджеров.
func BuildNotification(l domain.Lead) string {
	return notificationHeader + "\n\n" + leadSummary(l)
}

func leadSummary(l domain.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "— Имя: %s\n", l.Name)
	fmt.Fprintf(&b, "— Адрес: %s\n", FormatAddress(l))
	fmt.Fprintf(&b, "— Площадь: %s м²\n", FormatArea(l.Area))
	fmt.Fprintf(&b, "— Телефон: %s\n", orDefault(l.Phone, phoneMissing))
	fmt.Fprintf(&b, "— Когда звонить: %s\n", orDefault(l.CallTime, callTimeMissing))
	fmt.Fprintf(&b, "— Комментарий: %s", orDefault(l.Comment, commentMissing))
	return b.String()
}

// FormatArea печатает кратчайшую десятичную запись: 45 -> "45", 45.5 -> "45.5", без экспоненты.
func FormatArea(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
