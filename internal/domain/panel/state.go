// Package panel models the query panel as an immutable state value.
//
// Every transition is a pure method returning a new State. Requests carry the
// sequence number they were dispatched with; only the latest dispatched request
// may resolve the panel, so a slow earlier response can never overwrite a newer one.
package panel

import (
	"github.com/kailas-cloud/recopanel/internal/domain/query"
	"github.com/kailas-cloud/recopanel/internal/domain/recommendation"
)

// FailureMessage is the only error text ever shown to the user.
const FailureMessage = "Failed to fetch recommendations. Ensure backend is running."

// Condition is the request lifecycle tag.
type Condition int

// Lifecycle conditions.
const (
	Idle Condition = iota
	Loading
	Succeeded
	Failed
)

func (c Condition) String() string {
	switch c {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Request is one dispatched call to the collaborator.
type Request struct {
	Seq     uint64
	Payload query.Payload
}

// State is the whole panel. The zero value is Idle.
type State struct {
	condition Condition
	query     string
	items     []recommendation.Item
	errMsg    string
	seq       uint64
}

// New returns the initial Idle panel.
func New() State {
	return State{}
}

// Submit starts a request for raw. A blank query is a no-op: the state is
// returned unchanged and ok is false.
func (s State) Submit(raw string) (next State, req Request, ok bool) {
	if query.IsBlank(raw) {
		return s, Request{}, false
	}
	next = State{
		condition: Loading,
		query:     raw,
		seq:       s.seq + 1,
	}
	return next, Request{Seq: next.seq, Payload: query.Classify(raw)}, true
}

// Succeed replaces the result list with items if seq is the latest dispatched request.
func (s State) Succeed(seq uint64, items []recommendation.Item) State {
	if !s.Accepts(seq) {
		return s
	}
	cp := make([]recommendation.Item, len(items))
	copy(cp, items)
	return State{
		condition: Succeeded,
		query:     s.query,
		items:     cp,
		seq:       s.seq,
	}
}

// Fail records the generic failure message if seq is the latest dispatched request.
// The cause is not kept in the state.
func (s State) Fail(seq uint64) State {
	if !s.Accepts(seq) {
		return s
	}
	return State{
		condition: Failed,
		query:     s.query,
		errMsg:    FailureMessage,
		seq:       s.seq,
	}
}

// Resolve applies the outcome of a request: Fail when err is non-nil, Succeed otherwise.
func (s State) Resolve(seq uint64, items []recommendation.Item, err error) State {
	if err != nil {
		return s.Fail(seq)
	}
	return s.Succeed(seq, items)
}

// WithQuery records the text currently typed, without touching the lifecycle.
func (s State) WithQuery(raw string) State {
	s.query = raw
	return s
}

// Accepts reports whether a resolution for seq would be applied.
func (s State) Accepts(seq uint64) bool {
	return s.condition == Loading && seq == s.seq
}

// Condition returns the lifecycle tag.
func (s State) Condition() Condition { return s.condition }

// Query returns the last submitted (or typed) text.
func (s State) Query() string { return s.query }

// Seq returns the sequence number of the latest dispatched request.
func (s State) Seq() uint64 { return s.seq }

// Items returns a copy of the current result list.
func (s State) Items() []recommendation.Item {
	if len(s.items) == 0 {
		return nil
	}
	cp := make([]recommendation.Item, len(s.items))
	copy(cp, s.items)
	return cp
}

// Error returns the user-facing error message, empty unless Failed.
func (s State) Error() string { return s.errMsg }

// Busy reports whether the submit control should be disabled.
func (s State) Busy() bool { return s.condition == Loading }

// ShowError reports whether the error banner is rendered.
func (s State) ShowError() bool { return s.errMsg != "" }

// ShowResults reports whether the results table is rendered.
func (s State) ShowResults() bool { return len(s.items) > 0 }

// IsIdle reports the initial appearance: no banner, no table, not loading.
func (s State) IsIdle() bool {
	return !s.Busy() && !s.ShowError() && !s.ShowResults()
}
