package types

const (
	StatusTodo    = "todo"
	StatusWorking = "working"
	StatusDone    = "done"
)

func ValidStatus(status string) bool {
	return status == StatusTodo || status == StatusWorking || status == StatusDone
}

// NextStatus returns the status one step forward on the board, or "" when the
// task is already done. Tasks never jump from todo straight to done.
func NextStatus(status string) string {
	switch status {
	case StatusTodo:
		return StatusWorking
	case StatusWorking:
		return StatusDone
	default:
		return ""
	}
}

// PreviousStatus returns the status one step backward, or "" for todo.
func PreviousStatus(status string) string {
	switch status {
	case StatusDone:
		return StatusWorking
	case StatusWorking:
		return StatusTodo
	default:
		return ""
	}
}

// LegalMove reports whether a task may move from one status to the other in a
// single step, in either direction.
func LegalMove(from, to string) bool {
	return to != "" && (NextStatus(from) == to || PreviousStatus(from) == to)
}
