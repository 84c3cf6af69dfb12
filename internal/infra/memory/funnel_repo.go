package memory

import (
	"sync"

	"github.com/fellowfy-fy/SnapCeilingBot/internal/usecase"
)

// FunnelRepo помнит, какие шаги анкеты прошел каждый чат. Данные заявки сюда не попадают.
type FunnelRepo struct {
	mu      sync.RWMutex
	reached map[int64]map[usecase.Step]struct{}
}

func NewFunnelRepo() *FunnelRepo {
	return &FunnelRepo{reached: make(map[int64]map[usecase.Step]struct{})}
}

// Hit отмечает шаг для чата. Простой (idle) шагом воронки не считается.
func (r *FunnelRepo) Hit(step usecase.Step, chatID int64) error {
	if step == "" || step == usecase.StepIdle {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	steps, ok := r.reached[chatID]
	if !ok {
		steps = make(map[usecase.Step]struct{}, len(usecase.FormSteps)+1)
		r.reached[chatID] = steps
	}
	steps[step] = struct{}{}
	return nil
}

// Counts — число разных чатов, дошедших до каждого шага.
func (r *FunnelRepo) Counts() map[usecase.Step]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[usecase.Step]int)
	for _, steps := range r.reached {
		for s := range steps {
			out[s]++
		}
	}
	return out
}
