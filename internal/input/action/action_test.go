package action

import (
	"reflect"
	"testing"
)

func TestAppendTransitions(t *testing.T) {
	tests := []struct {
		name string
		prev State
		next State
		want []EventKind
	}{
		{"none to none", StateNone, StateNone, nil},
		{"none to ongoing", StateNone, StateOngoing, []EventKind{EventStarted, EventOngoing}},
		{"none to fired", StateNone, StateFired, []EventKind{EventStarted, EventFired}},
		{"ongoing holds", StateOngoing, StateOngoing, []EventKind{EventOngoing}},
		{"ongoing to fired", StateOngoing, StateFired, []EventKind{EventFired}},
		{"ongoing canceled", StateOngoing, StateNone, []EventKind{EventCanceled}},
		{"fired repeats", StateFired, StateFired, []EventKind{EventFired}},
		{"fired to ongoing", StateFired, StateOngoing, []EventKind{EventOngoing}},
		{"fired completed", StateFired, StateNone, []EventKind{EventCompleted}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendTransitions(nil, tt.prev, tt.next)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AppendTransitions(%s, %s) = %v, want %v", tt.prev, tt.next, got, tt.want)
			}
		})
	}
}

func TestStateOrdering(t *testing.T) {
	if Max(StateNone, StateOngoing) != StateOngoing {
		t.Error("Max(None, Ongoing) != Ongoing")
	}
	if Max(StateFired, StateOngoing) != StateFired {
		t.Error("Max(Fired, Ongoing) != Fired")
	}
	if Min(StateFired, StateOngoing) != StateOngoing {
		t.Error("Min(Fired, Ongoing) != Ongoing")
	}
	if Min(StateNone, StateFired) != StateNone {
		t.Error("Min(None, Fired) != None")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateNone, "None"},
		{StateOngoing, "Ongoing"},
		{StateFired, "Fired"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
