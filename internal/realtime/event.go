// Package realtime propagates table-change notifications: an in-process
// Notifier fans events out to subscribers, a Bridge converts them into
// coalesced collection reloads, and a websocket Hub pushes refresh hints to
// connected clients.
package realtime

type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

const (
	TableTasks  = "tasks"
	TableLeaves = "leaves"
)

// Event mirrors a change notification: the event type plus the new and old
// row where the change direction makes them meaningful.
type Event struct {
	Type  EventType   `json:"event_type"`
	Table string      `json:"table"`
	New   interface{} `json:"new"`
	Old   interface{} `json:"old"`
}

func ValidTable(table string) bool {
	return table == TableTasks || table == TableLeaves
}
