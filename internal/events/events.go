// Package events carries ledger change notifications from the write path to
// live dashboards, the report cache and the message broker.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LedgerEvent is published after every committed ledger write.
type LedgerEvent struct {
	Event      string     `json:"event"`  // created | updated | deleted
	Entity     string     `json:"entity"` // sale | sale_item
	SaleID     *uuid.UUID `json:"sale_id,omitempty"`
	SaleItemID *uuid.UUID `json:"sale_item_id,omitempty"`
	LineCount  int        `json:"line_count,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// Notifier receives ledger events. Implementations must not block the
// caller for long and report their own failures.
type Notifier interface {
	Notify(ctx context.Context, e LedgerEvent)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, e LedgerEvent)

func (f NotifierFunc) Notify(ctx context.Context, e LedgerEvent) { f(ctx, e) }

// Multi fans an event out to every non-nil notifier in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, e LedgerEvent) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, e)
		}
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Notify(context.Context, LedgerEvent) {}
