package realtime

import (
	"context"
	"log"
	"sync"
)

// Bridge ties a table subscription to a full-collection reload. It never
// patches state incrementally: any notification triggers a re-fetch, and a
// burst of notifications collapses into a single reload per drain cycle.
type Bridge struct {
	table    string
	events   <-chan Event
	cancel   func()
	reload   func(ctx context.Context) error
	stopOnce sync.Once
	done     chan struct{}
}

func NewBridge(notifier *Notifier, table string, reload func(ctx context.Context) error) *Bridge {
	events, cancel := notifier.Subscribe(table)

	return &Bridge{
		table:  table,
		events: events,
		cancel: cancel,
		reload: reload,
		done:   make(chan struct{}),
	}
}

// Start runs the bridge until Stop is called or ctx ends. The ctx check
// before each reload is the "still mounted" guard: a notification landing
// during teardown must not commit into discarded state.
func (b *Bridge) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-b.done:
				return
			case _, ok := <-b.events:
				if !ok {
					return
				}

				b.drain()

				if ctx.Err() != nil {
					return
				}

				if err := b.reload(ctx); err != nil {
					log.Printf("Error reloading %s after change notification: %v", b.table, err)
				}
			}
		}
	}()
}

// drain consumes whatever notifications queued up while a reload was in
// flight; they all describe the same current state.
func (b *Bridge) drain() {
	for {
		select {
		case _, ok := <-b.events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (b *Bridge) Stop() {
	b.stopOnce.Do(func() {
		close(b.done)
		b.cancel()
	})
}
