package pickup

import "fmt"

type Status string

const (
	Pending   Status = "pending"
	Assigned  Status = "assigned"
	Ready     Status = "ready"
	InTransit Status = "in_transit"
	Completed Status = "completed"
	Canceled  Status = "canceled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Pending, Assigned, Ready, InTransit, Completed, Canceled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown pickup status %q", s)
}

// The handoff moves forward one step at a time; cancelation is allowed from
// any non-terminal state. Completed and canceled lock the record.
var transitions = map[Status][]Status{
	Pending:   {Assigned, Canceled},
	Assigned:  {Ready, Canceled},
	Ready:     {InTransit, Canceled},
	InTransit: {Completed, Canceled},
	Completed: {},
	Canceled:  {},
}

func CanTransition(from Status, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
