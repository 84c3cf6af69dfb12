package usecase

import (
	"context"
	"sync"
)

type deliveryCall struct {
	recipient string
	text      string
}

type fakeDelivery struct {
	outcome DeliveryOutcome
	calls   []deliveryCall
}

func (d *fakeDelivery) Send(_ context.Context, recipient, text string) DeliveryOutcome {
	d.calls = append(d.calls, deliveryCall{recipient: recipient, text: text})
	return d.outcome
}

type fakeAssistant struct {
	answer string
	err    error
	asked  []string
}

func (a *fakeAssistant) Answer(_ context.Context, q string) (string, error) {
	a.asked = append(a.asked, q)
	return a.answer, a.err
}

type sentMessage struct {
	chatID int64
	reply  Reply
}

type fakeMessenger struct {
	sent     []sentMessage
	cleared  []int
	acked    []string
	charts   [][]string
	chartErr error
}

func (m *fakeMessenger) Send(_ context.Context, chatID int64, r Reply) error {
	m.sent = append(m.sent, sentMessage{chatID: chatID, reply: r})
	return nil
}

func (m *fakeMessenger) ClearButtons(_ context.Context, _ int64, messageID int) error {
	m.cleared = append(m.cleared, messageID)
	return nil
}

func (m *fakeMessenger) AckAction(_ context.Context, callbackID string) error {
	m.acked = append(m.acked, callbackID)
	return nil
}

func (m *fakeMessenger) SendChart(_ context.Context, _ int64, labels []string, _ []int) error {
	if m.chartErr != nil {
		return m.chartErr
	}
	m.charts = append(m.charts, labels)
	return nil
}

func (m *fakeMessenger) last() Reply {
	if len(m.sent) == 0 {
		return Reply{}
	}
	return m.sent[len(m.sent)-1].reply
}

type mapStore struct {
	sessions map[int64]*Session
}

func newMapStore() *mapStore { return &mapStore{sessions: map[int64]*Session{}} }

func (s *mapStore) Get(chatID int64) (*Session, bool) {
	v, ok := s.sessions[chatID]
	return v, ok
}

func (s *mapStore) Put(chatID int64, v *Session) { s.sessions[chatID] = v }

func (s *mapStore) Delete(chatID int64) { delete(s.sessions, chatID) }

type funnelHits struct {
	mu   sync.Mutex
	hits map[Step]map[int64]struct{}
}

func newFunnelHits() *funnelHits { return &funnelHits{hits: map[Step]map[int64]struct{}{}} }

func (f *funnelHits) Hit(step Step, chatID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hits[step] == nil {
		f.hits[step] = map[int64]struct{}{}
	}
	f.hits[step][chatID] = struct{}{}
	return nil
}

func (f *funnelHits) Counts() map[Step]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[Step]int{}
	for s, set := range f.hits {
		out[s] = len(set)
	}
	return out
}

type countingMetrics struct {
	started   int
	reached   map[Step]int
	rejected  map[Step]int
	delivered map[DeliveryOutcome]int
	answered  map[bool]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{
		reached:   map[Step]int{},
		rejected:  map[Step]int{},
		delivered: map[DeliveryOutcome]int{},
		answered:  map[bool]int{},
	}
}

func (m *countingMetrics) FormStarted()                    { m.started++ }
func (m *countingMetrics) StepReached(s Step)              { m.reached[s]++ }
func (m *countingMetrics) InputRejected(s Step)            { m.rejected[s]++ }
func (m *countingMetrics) LeadDelivered(o DeliveryOutcome) { m.delivered[o]++ }
func (m *countingMetrics) AssistantAnswered(ok bool)       { m.answered[ok]++ }
