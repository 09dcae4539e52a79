package domain

// Action is the single store operation required to move an annotation from
// its current state to a desired flag combination.
type Action int

const (
	// ActionNone means the store already reflects the desired state.
	ActionNone Action = iota

	// ActionInsert creates a new annotation record.
	ActionInsert

	// ActionUpdate overwrites the flags of an existing record.
	ActionUpdate

	// ActionDelete removes an existing record; absence then encodes the
	// all-false state.
	ActionDelete
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionInsert:
		return "insert"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// NextAction decides the lifecycle transition for a (user, external key) pair
// given the desired flag state. current is nil when no record exists.
//
// The all-false desired state is never stored: it deletes an existing record
// and is a no-op when none exists. Every other desired state inserts or
// updates. Keeping this decision in one place is what enforces the
// "no all-false rows" invariant.
func NextAction(current *Annotation, favorite, archived bool) Action {
	wantDefault := !favorite && !archived

	switch {
	case current == nil && wantDefault:
		return ActionNone
	case current == nil:
		return ActionInsert
	case wantDefault:
		return ActionDelete
	default:
		return ActionUpdate
	}
}
