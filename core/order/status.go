package order

import "fmt"

type Status string

const (
	Pending   Status = "pending"
	Completed Status = "completed"
	Canceled  Status = "canceled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Pending, Completed, Canceled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

var transitions = map[Status][]Status{
	Pending:   {Completed, Canceled},
	Completed: {},
	Canceled:  {},
}

// CanTransition reports whether an order may move from one status to another.
// Completed and canceled are terminal.
func CanTransition(from Status, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
