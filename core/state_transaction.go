package core

// StateTransaction is a scoped mutable view of the World: every executor
// write lands in its overlay, and the buffered event queue is drained onto
// the Event Bus only once the whole transaction commits.
//
// Instructions never see or hold the live World directly — they only ever
// see the overlay through this type, so there is no path for a partial
// write to escape a failed transaction.
type StateTransaction struct {
	overlay *World
	events  []Event
}

func newStateTransaction(root *World) *StateTransaction {
	return &StateTransaction{overlay: root.Clone()}
}

// emit buffers events in instruction-completion order; they are only
// observable once the enclosing transaction commits.
func (tx *StateTransaction) emit(events ...Event) {
	tx.events = append(tx.events, events...)
}
