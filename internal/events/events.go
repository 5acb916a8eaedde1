// Package events is an in-process pub/sub for typed account notifications.
package events

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -source=events.go -destination=mock.go -package=events

type Type string

const (
	TypeCreditsChanged    Type = "credits_changed"
	TypeAnalysisCompleted Type = "analysis_completed"
	TypePaymentCompleted  Type = "payment_completed"
)

type Event struct {
	Type      Type      `json:"type"`
	AccountID int       `json:"account_id"`
	Payload   any       `json:"payload"`
	At        time.Time `json:"at"`
}

type CreditsChanged struct {
	Balance int    `json:"balance"`
	Delta   int    `json:"delta"`
	Reason  string `json:"reason"`
}

type AnalysisCompleted struct {
	Kind        string `json:"kind"`
	ResultID    string `json:"result_id"`
	CreditsUsed int    `json:"credits_used"`
	Cached      bool   `json:"cached"`
}

type PaymentCompleted struct {
	ExternalRef string `json:"external_reference"`
	Credits     int    `json:"credits"`
}

func NewCreditsChanged(accountID, balance, delta int, reason string) Event {
	return Event{Type: TypeCreditsChanged, AccountID: accountID, Payload: CreditsChanged{Balance: balance, Delta: delta, Reason: reason}, At: time.Now()}
}

func NewAnalysisCompleted(accountID int, payload AnalysisCompleted) Event {
	return Event{Type: TypeAnalysisCompleted, AccountID: accountID, Payload: payload, At: time.Now()}
}

func NewPaymentCompleted(accountID int, externalRef string, credits int) Event {
	return Event{Type: TypePaymentCompleted, AccountID: accountID, Payload: PaymentCompleted{ExternalRef: externalRef, Credits: credits}, At: time.Now()}
}

type Publisher interface {
	Publish(ev Event)
}

// AllAccounts subscribes to every account's events.
const AllAccounts = 0

type subscription struct {
	accountID int
	ch        chan Event
}

type Bus struct {
	mu     sync.RWMutex
	subs   map[int]*subscription
	nextID int
	buffer int
	closed bool
}

func NewBus(buffer int) *Bus {
	return &Bus{
		subs:   make(map[int]*subscription),
		buffer: buffer,
	}
}

// Subscribe returns a channel of events for accountID and a function that
// cancels the subscription and closes the channel.
func (b *Bus) Subscribe(accountID int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = &subscription{accountID: accountID, ch: ch}

	var once sync.Once
	return ch, func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

func (b *Bus) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.ch)
	}
}

// Publish never blocks: a subscriber whose buffer is full misses the event.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if sub.accountID != AllAccounts && sub.accountID != ev.AccountID {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			zap.L().Debug("event dropped for slow subscriber", zap.String("type", string(ev.Type)), zap.Int("account_id", ev.AccountID))
		}
	}
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
	}
}
