package panel

// Status represents the lifecycle state of a panel
type Status int

const (
	// StatusIdle means no operation has run yet
	StatusIdle Status = iota
	// StatusLoading means a request is in flight; inputs are disabled
	StatusLoading
	// StatusError means the last operation failed; prior state is retained
	StatusError
	// StatusReady means the last operation succeeded
	StatusReady
)

// String returns a human-readable name for the status
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// List is the state core shared by every list-backed panel. It owns an
// ordered view of the resources the server last returned, at most one
// editable draft, a single outcome message, and the busy flag that blocks
// overlapping submissions.
//
// List performs no I/O. The owning screen starts an operation with Begin,
// runs the network call, and reports the outcome through exactly one
// Finish* call.
type List[T any] struct {
	id func(T) string

	items   []T
	draft   *T
	editing bool

	status  Status
	busy    bool
	message string
	failed  bool
}

// NewList creates an empty panel core. id extracts the server-assigned
// identifier from a resource.
func NewList[T any](id func(T) string) *List[T] {
	return &List[T]{id: id, status: StatusIdle}
}

// Items returns the current resource list in fetch order.
func (l *List[T]) Items() []T {
	return l.items
}

// Status returns the panel lifecycle state.
func (l *List[T]) Status() Status {
	return l.status
}

// Busy reports whether an operation is in flight.
func (l *List[T]) Busy() bool {
	return l.busy
}

// Message returns the last outcome message and whether it is a failure.
// There is never more than one message; a new outcome replaces it.
func (l *List[T]) Message() (string, bool) {
	return l.message, l.failed
}

// Begin marks an operation in flight. It returns false, leaving all state
// untouched, when another operation is already running - the caller must
// not submit.
func (l *List[T]) Begin() bool {
	if l.busy {
		return false
	}
	l.busy = true
	l.status = StatusLoading
	return true
}

// FinishFetch reports a successful fetch. The list is replaced wholesale
// with the server's copy; nothing is merged.
func (l *List[T]) FinishFetch(items []T, successMsg string) {
	l.items = items
	l.succeed(successMsg)
}

// FinishCreate reports a successful create. The server's copy of the new
// resource is appended and the draft is cleared.
func (l *List[T]) FinishCreate(item T, successMsg string) {
	l.items = append(l.items, item)
	l.ClearDraft()
	l.succeed(successMsg)
}

// FinishUpdate reports a successful update. The server's copy replaces the
// matching list entry by identifier and the draft is cleared.
func (l *List[T]) FinishUpdate(item T, successMsg string) {
	l.items = ReplaceByID(l.items, l.id, item)
	l.ClearDraft()
	l.succeed(successMsg)
}

// FinishDelete reports a successful delete. Exactly one entry - the one
// whose identifier matches - is removed.
func (l *List[T]) FinishDelete(id string, successMsg string) {
	l.items = RemoveByID(l.items, l.id, id)
	l.succeed(successMsg)
}

// FinishAction reports a successful operation that does not change the
// list (e.g. a device control call whose effect is observed by refetching).
func (l *List[T]) FinishAction(successMsg string) {
	l.succeed(successMsg)
}

// FinishFailure reports a failed operation. The list, draft and selection
// are retained exactly as they were; only the message changes.
func (l *List[T]) FinishFailure(msg string) {
	l.busy = false
	l.status = StatusError
	l.message = msg
	l.failed = true
}

func (l *List[T]) succeed(msg string) {
	l.busy = false
	l.status = StatusReady
	l.message = msg
	l.failed = false
}

// Select copies an existing resource into the draft for editing. Any prior
// unsaved draft is discarded without confirmation.
func (l *List[T]) Select(item T) {
	copied := item
	l.draft = &copied
	l.editing = true
}

// StartNew opens a fresh draft for a resource to be created, discarding
// any prior draft.
func (l *List[T]) StartNew() {
	var zero T
	l.draft = &zero
	l.editing = false
}

// Draft returns a pointer to the current draft, or nil when no draft is
// open. Mutations through the pointer edit the draft in place; the list
// entry it was copied from is untouched until the server confirms.
func (l *List[T]) Draft() *T {
	return l.draft
}

// Editing reports whether the open draft corresponds to an existing
// resource (submit means update) rather than a new one (submit means
// create).
func (l *List[T]) Editing() bool {
	return l.draft != nil && l.editing
}

// ClearDraft discards the draft and selection.
func (l *List[T]) ClearDraft() {
	l.draft = nil
	l.editing = false
}

// ReplaceByID returns items with the entry whose identifier matches
// replacement's substituted. Order is preserved; a missing identifier
// leaves the slice unchanged.
func ReplaceByID[T any](items []T, id func(T) string, replacement T) []T {
	target := id(replacement)
	for i := range items {
		if id(items[i]) == target {
			items[i] = replacement
			break
		}
	}
	return items
}

// RemoveByID returns items without the first entry whose identifier equals
// target. Only identifier equality is considered, so entries sharing every
// other field are left alone. A missing identifier leaves the slice
// unchanged.
func RemoveByID[T any](items []T, id func(T) string, target string) []T {
	for i := range items {
		if id(items[i]) == target {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return items
}
