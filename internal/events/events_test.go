package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishFiltersByAccount(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()

	mine, unsubMine := bus.Subscribe(1)
	defer unsubMine()
	all, unsubAll := bus.Subscribe(AllAccounts)
	defer unsubAll()

	bus.Publish(NewCreditsChanged(2, 48, -2, "job analysis"))
	bus.Publish(NewCreditsChanged(1, 45, -5, "resume analysis"))

	ev := <-mine
	assert.Equal(t, TypeCreditsChanged, ev.Type)
	assert.Equal(t, 1, ev.AccountID)
	assert.Equal(t, CreditsChanged{Balance: 45, Delta: -5, Reason: "resume analysis"}, ev.Payload)

	assert.Equal(t, 2, (<-all).AccountID)
	assert.Equal(t, 1, (<-all).AccountID)

	select {
	case extra := <-mine:
		t.Fatalf("unexpected event %+v", extra)
	default:
	}
}

func TestBus_PublishDoesNotBlock(t *testing.T) {
	bus := NewBus(1)
	defer bus.Close()

	_, unsubscribe := bus.Subscribe(7)
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			bus.Publish(NewPaymentCompleted(7, "pi_1", 100))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus(1)
	ch, unsubscribe := bus.Subscribe(3)

	unsubscribe()
	unsubscribe()

	_, ok := <-ch
	assert.False(t, ok)

	bus.Close()
	late, _ := bus.Subscribe(3)
	_, ok = <-late
	assert.False(t, ok)
}

func TestBus_ConcurrentUse(t *testing.T) {
	bus := NewBus(16)
	defer bus.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			ch, unsubscribe := bus.Subscribe(id)
			bus.Publish(NewAnalysisCompleted(id, AnalysisCompleted{Kind: "job", CreditsUsed: 2}))
			<-ch
			unsubscribe()
		}(i + 1)
	}
	wg.Wait()
}

func TestRunAuditLog_StopsOnCancel(t *testing.T) {
	bus := NewBus(1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		RunAuditLog(ctx, bus)
		close(done)
	}()

	bus.Publish(NewCreditsChanged(1, 50, 0, "noop"))
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "audit log did not stop")
	}
}
