package events

import (
	"context"

	"go.uber.org/zap"
)

// RunAuditLog writes every event to the global logger until ctx is done or
// the bus is closed.
func RunAuditLog(ctx context.Context, bus *Bus) {
	ch, unsubscribe := bus.Subscribe(AllAccounts)
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			zap.L().Info("event",
				zap.String("type", string(ev.Type)),
				zap.Int("account_id", ev.AccountID),
				zap.Any("payload", ev.Payload),
			)
		}
	}
}
