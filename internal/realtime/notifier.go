package realtime

import "sync"

const subscriberBuffer = 16

// Notifier is the in-process change-notification channel. Publish never
// blocks: subscribers are level-triggered, so one dropped event is made up
// for by the next reload reading current state anyway.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan Event
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]map[int]chan Event)}
}

// Subscribe registers for one table's events. The returned cancel function
// tears the subscription down and closes the channel; it is safe to call
// more than once.
func (n *Notifier) Subscribe(table string) (<-chan Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[table] == nil {
		n.subs[table] = make(map[int]chan Event)
	}

	id := n.nextID
	n.nextID++

	events := make(chan Event, subscriberBuffer)
	n.subs[table][id] = events

	var once sync.Once

	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()

			if subs, exists := n.subs[table]; exists {
				delete(subs, id)

				if len(subs) == 0 {
					delete(n.subs, table)
				}
			}

			close(events)
		})
	}

	return events, cancel
}

func (n *Notifier) Publish(event Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, events := range n.subs[event.Table] {
		select {
		case events <- event:
		default:
		}
	}
}
