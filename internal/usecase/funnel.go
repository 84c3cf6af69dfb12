package usecase

import (
	"fmt"
	"strings"
)

// StageLeadSent — псевдо-шаг воронки: заявка доставлена менеджерам.
const StageLeadSent Step = "lead_sent"

type FunnelRepository interface {
	Hit(step Step, chatID int64) error
	Counts() map[Step]int
}

type FunnelUsecase struct {
	repo  FunnelRepository
	order []Step
}

func NewFunnelUsecase(repo FunnelRepository) *FunnelUsecase {
	order := make([]Step, 0, len(FormSteps)+1)
	order = append(order, FormSteps...)
	order = append(order, StageLeadSent)
	return &FunnelUsecase{repo: repo, order: order}
}

func (u *FunnelUsecase) Reach(chatID int64, step Step) error {
	if step == "" || step == StepIdle {
		return nil
	}
	return u.repo.Hit(step, chatID)
}

func (u *FunnelUsecase) Chart() string {
	counts := u.repo.Counts()
	if len(counts) == 0 {
		return "Данных по воронке пока нет"
	}
	// база — первый шаг, если его нет, то максимум
	base := counts[u.order[0]]
	if base == 0 {
		for _, s := range u.order {
			if counts[s] > base {
				base = counts[s]
			}
		}
	}
	var prev int
	var b strings.Builder
	b.WriteString("Воронка по шагам:\n")
	for i, s := range u.order {
		c := counts[s]
		relPrev := 0
		if i == 0 {
			relPrev = 100
		} else if prev > 0 {
			relPrev = percent(c, prev)
		}
		fmt.Fprintf(&b, "- %s: %d | %3d%% от базового | %3d%% от пред. %s\n", StepLabel(s), c, percent(c, base), relPrev, bar20(c, base))
		prev = c
	}
	return b.String()
}

// GraphData возвращает метки и значения по порядку шагов для построения графика
func (u *FunnelUsecase) GraphData() ([]string, []int) {
	counts := u.repo.Counts()
	labels := make([]string, 0, len(u.order))
	values := make([]int, 0, len(u.order))
	for _, s := range u.order {
		labels = append(labels, StepLabel(s))
		values = append(values, counts[s])
	}
	return labels, values
}

func percent(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (100 * a) / b
}

func bar20(val, base int) string {
	if base <= 0 {
		return ""
	}
	filled := min(max(0, (20*val)/base), 20)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 20-filled) + "]"
}

func StepLabel(s Step) string {
	switch s {
	case StepName:
		return "Имя"
	case StepStreet:
		return "Улица"
	case StepHouse:
		return "Дом"
	case StepBuilding:
		return "Корпус"
	case StepArea:
		return "Площадь"
	case StepPhone:
		return "Телефон"
	case StepCallTime:
		return "Время звонка"
	case StepComment:
		return "Комментарий"
	case StepConfirm:
		return "Предпросмотр"
	case StageLeadSent:
		return "Лид"
	default:
		return string(s)
	}
}
