package telegram

import (
	"context"
	"sync"

	"github.com/fellowfy-fy/SnapCeilingBot/internal/usecase"
)

// pump раздает события по чатам: внутри чата строго по очереди, между чатами параллельно.
type pump struct {
	handle func(context.Context, usecase.Event)

	mu     sync.Mutex
	queues map[int64]*chatQueue
	wg     sync.WaitGroup
}

type chatQueue struct {
	pending []usecase.Event
}

func newPump(handle func(context.Context, usecase.Event)) *pump {
	return &pump{handle: handle, queues: make(map[int64]*chatQueue)}
}

// Dispatch ставит ev в очередь чата и запускает обработчик, если его еще нет.
func (p *pump) Dispatch(ctx context.Context, ev usecase.Event) {
	p.mu.Lock()
	q, running := p.queues[ev.ChatID]
	if !running {
		q = &chatQueue{}
		p.queues[ev.ChatID] = q
	}
	q.pending = append(q.pending, ev)
	p.mu.Unlock()

	if running {
		return
	}
	p.wg.Add(1)
	go p.drain(ctx, ev.ChatID, q)
}

func (p *pump) drain(ctx context.Context, chatID int64, q *chatQueue) {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		if len(q.pending) == 0 {
			delete(p.queues, chatID)
			p.mu.Unlock()
			return
		}
		ev := q.pending[0]
		q.pending = q.pending[1:]
		p.mu.Unlock()

		p.handle(ctx, ev)
	}
}

// Wait ждет, пока все события из очередей будут обработаны.
func (p *pump) Wait() {
	p.wg.Wait()
}
