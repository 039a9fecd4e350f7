package pickup

import "testing"

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{Pending, Assigned, true},
		{Assigned, Ready, true},
		{Ready, InTransit, true},
		{InTransit, Completed, true},

		{Pending, Canceled, true},
		{Assigned, Canceled, true},
		{Ready, Canceled, true},
		{InTransit, Canceled, true},

		// no skipping ahead
		{Pending, Ready, false},
		{Pending, Completed, false},
		{Assigned, Completed, false},

		// terminal states are locked
		{Canceled, Completed, false},
		{Canceled, Pending, false},
		{Completed, Canceled, false},
		{Completed, Pending, false},
	}

	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.ok {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestParseStatus(t *testing.T) {
	valid := []string{"pending", "assigned", "ready", "in_transit", "completed", "canceled"}
	for _, s := range valid {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", s, err)
		}
	}

	if _, err := ParseStatus("delivered"); err == nil {
		t.Error("ParseStatus(\"delivered\") expected an error")
	}
}
