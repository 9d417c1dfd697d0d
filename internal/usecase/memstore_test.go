package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"checkout_service/internal/domain/entities"
)

// memOrderStore mimics the conditional writes of the DynamoDB order store.
type memOrderStore struct {
	mu          sync.Mutex
	orders      map[string]entities.Order
	transitions int
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: map[string]entities.Order{}}
}

func (s *memOrderStore) Create(_ context.Context, o entities.Order) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.OrderRef]; ok {
		return entities.Order{}, entities.ErrOrderAlreadyExists
	}
	s.orders[o.OrderRef] = o
	return o, nil
}

func (s *memOrderStore) GetByRef(_ context.Context, orderRef string) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[orderRef], nil
}

func (s *memOrderStore) TransitionStatus(_ context.Context, orderRef string, to entities.OrderStatus) (entities.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderRef]
	if !ok || o.Status != entities.OrderStatusCreated {
		return entities.Order{}, false, nil
	}
	o.Status = to
	s.orders[orderRef] = o
	s.transitions++
	return o, true, nil
}

type memPaymentStore struct {
	mu   sync.Mutex
	rows map[string]entities.PaymentRecord
}

func newMemPaymentStore() *memPaymentStore {
	return &memPaymentStore{rows: map[string]entities.PaymentRecord{}}
}

func (s *memPaymentStore) Upsert(_ context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.rows[r.ID]; ok {
		r.CreatedAt = prev.CreatedAt
	}
	s.rows[r.ID] = r
	return r, nil
}

func (s *memPaymentStore) ListByOrderRef(_ context.Context, orderRef string) ([]entities.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.PaymentRecord
	for _, r := range s.rows {
		if r.OrderRef == orderRef {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entities.PaymentEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e entities.PaymentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

// stubGateway answers every invoice request with body.
type stubGateway struct {
	body     []byte
	requests []json.RawMessage
}

func (g *stubGateway) CreateInvoice(_ context.Context, payload json.RawMessage) ([]byte, error) {
	g.requests = append(g.requests, payload)
	return g.body, nil
}
