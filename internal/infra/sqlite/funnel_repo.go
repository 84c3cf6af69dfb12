package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fellowfy-fy/SnapCeilingBot/internal/usecase"
)

// FunnelRepo хранит только факт прохождения шага чатом, без данных заявки.
type FunnelRepo struct {
	db *sql.DB
}

func NewFunnelRepo(dsn string) (*FunnelRepo, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open funnel db: %w", err)
	}
	if err := migrateFunnel(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate funnel db: %w", err)
	}
	return &FunnelRepo{db: db}, nil
}

func migrateFunnel(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS funnel_hits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chat_id INTEGER NOT NULL,
    step TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_funnel_hits_step ON funnel_hits(step);
CREATE INDEX IF NOT EXISTS idx_funnel_hits_chat_step ON funnel_hits(chat_id, step);
`)
	return err
}

func (r *FunnelRepo) Hit(step usecase.Step, chatID int64) error {
	_, err := r.db.Exec(`INSERT INTO funnel_hits(chat_id, step, created_at) VALUES(?,?,?)`, chatID, string(step), time.Now())
	return err
}

func (r *FunnelRepo) Counts() map[usecase.Step]int {
	out := map[usecase.Step]int{}
	rows, err := r.db.Query(`SELECT step, COUNT(DISTINCT chat_id) FROM funnel_hits GROUP BY step`)
	if err != nil {
		return out
	}
	defer rows.Close()
	for rows.Next() {
		var step string
		var cnt int
		if err := rows.Scan(&step, &cnt); err == nil {
			out[usecase.Step(step)] = cnt
		}
	}
	return out
}

func (r *FunnelRepo) Close() error {
	return r.db.Close()
}
