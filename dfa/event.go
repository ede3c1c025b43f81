package dfa

import "fmt"

// EventKind classifies what a tagged step observed.
type EventKind uint8

const (
	// CandidateStart marks an offset where a match of the tagged pattern may
	// begin.
	CandidateStart EventKind = iota

	// MatchEnd marks an offset where a match of the tagged pattern ends.
	MatchEnd

	// EmptyMatch marks an offset holding an empty match of the tagged
	// pattern.
	EmptyMatch
)

// String returns a human-readable event kind name
func (k EventKind) String() string {
	switch k {
	case CandidateStart:
		return "CandidateStart"
	case MatchEnd:
		return "MatchEnd"
	case EmptyMatch:
		return "EmptyMatch"
	default:
		return fmt.Sprintf("UnknownEventKind(%d)", k)
	}
}

// Tag is attached to a transition or a destination state. Pattern is an
// index chosen by the caller.
type Tag struct {
	Kind    EventKind
	Pattern int
}

// Event is queued when a step crosses a tagged transition or enters a
// tagged state.
type Event struct {
	Tag
	Offset     int
	Transition Transition
}

// String returns a human-readable representation of the event
func (e Event) String() string {
	return fmt.Sprintf("%s(pattern=%d, offset=%d)", e.Kind, e.Pattern, e.Offset)
}

// OnTransition tags a transition, replacing any tags it already had.
// Calling it with no tags removes them.
func (d *DFA) OnTransition(t Transition, tags ...Tag) {
	if d.onTransition == nil {
		d.onTransition = make(map[Transition][]Tag)
	}
	if len(tags) == 0 {
		delete(d.onTransition, t)
		return
	}
	d.onTransition[t] = append([]Tag(nil), tags...)
}

// OnTransitionTo tags every transition into state, replacing any tags it
// already had. Calling it with no tags removes them.
func (d *DFA) OnTransitionTo(state StateID, tags ...Tag) {
	d.mustExist(state)
	if d.onArrive == nil {
		d.onArrive = make(map[StateID][]Tag)
	}
	if len(tags) == 0 {
		delete(d.onArrive, state)
		return
	}
	d.onArrive[state] = append([]Tag(nil), tags...)
}

// TagsTo returns the tags attached to state.
func (d *DFA) TagsTo(state StateID) []Tag {
	return d.onArrive[state]
}

// Events returns the pending events in the order they were queued.
func (d *DFA) Events() []Event {
	return d.events
}

// DrainEvents returns the pending events and empties the queue.
func (d *DFA) DrainEvents() []Event {
	ev := d.events
	d.events = nil
	return ev
}

func (d *DFA) fire(tags []Tag, t Transition, offset int) {
	for _, tag := range tags {
		d.events = append(d.events, Event{Tag: tag, Offset: offset, Transition: t})
	}
}
