package memory

import (
	"sync"

	"github.com/fellowfy-fy/SnapCeilingBot/internal/usecase"
)

// SessionRepo хранит анкеты в памяти процесса; после рестарта они теряются.
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[int64]*usecase.Session
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[int64]*usecase.Session)}
}

func (r *SessionRepo) Get(chatID int64) (*usecase.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[chatID]
	return s, ok
}

func (r *SessionRepo) Put(chatID int64, s *usecase.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[chatID] = s
}

func (r *SessionRepo) Delete(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, chatID)
}

func (r *SessionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
