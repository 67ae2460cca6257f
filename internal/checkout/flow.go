package checkout

import (
	"errors"
	"sync"
	"time"
)

type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

var (
	ErrSubmissionInProgress = errors.New("checkout is already being submitted")
	ErrEmptyCart            = errors.New("cart is empty")
)

// Flow is one session's view of checkout.
type Flow struct {
	State     State  `json:"state"`
	Draft     Draft  `json:"draft"`
	LastError string `json:"lastError,omitempty"`
	OrderID   string `json:"orderId,omitempty"`

	touched time.Time
}

// flowIdleTTL is how long a settled flow is kept after its last change.
const flowIdleTTL = 24 * time.Hour

// flows holds a Flow per session. The Submitting state is the guard against
// double submission; the mutex only protects the map and the flow fields.
type flows struct {
	mu  sync.Mutex
	m   map[string]*Flow
	ttl time.Duration
	now func() time.Time
}

func newFlows() *flows {
	return &flows{m: map[string]*Flow{}, ttl: flowIdleTTL, now: time.Now}
}

// entry returns the session's flow, creating it in state st when missing,
// and evicts flows that sat idle past the ttl. Callers hold f.mu.
func (f *flows) entry(sessionID string, st State) *Flow {
	now := f.now()
	for id, fl := range f.m {
		if fl.State != StateSubmitting && now.Sub(fl.touched) > f.ttl {
			delete(f.m, id)
		}
	}
	fl, ok := f.m[sessionID]
	if !ok {
		fl = &Flow{State: st}
		f.m[sessionID] = fl
	}
	fl.touched = now
	return fl
}

func (f *flows) get(sessionID string) (Flow, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl, ok := f.m[sessionID]
	if !ok {
		return Flow{State: StateEditing, Draft: NewDraft()}, false
	}
	return *fl, true
}

// begin stores the draft and moves the flow to Submitting. A flow that
// already succeeded starts over as a fresh checkout.
func (f *flows) begin(sessionID string, d Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl := f.entry(sessionID, StateEditing)
	if fl.State == StateSubmitting {
		return ErrSubmissionInProgress
	}
	fl.State = StateSubmitting
	fl.Draft = d
	fl.LastError = ""
	fl.OrderID = ""
	return nil
}

// reject keeps the customer editing after a failed validation. A Failed flow
// stays Failed so the last error remains visible.
func (f *flows) reject(sessionID string, d Draft, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl := f.entry(sessionID, StateEditing)
	if fl.State == StateSubmitting {
		return ErrSubmissionInProgress
	}
	if fl.State == StateSucceeded {
		fl.State = StateEditing
		fl.OrderID = ""
	}
	fl.Draft = d
	fl.LastError = reason
	return nil
}

func (f *flows) fail(sessionID, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fl, ok := f.m[sessionID]; ok {
		fl.State = StateFailed
		fl.LastError = reason
		fl.touched = f.now()
	}
}

func (f *flows) succeed(sessionID, orderID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fl, ok := f.m[sessionID]; ok {
		fl.State = StateSucceeded
		fl.OrderID = orderID
		fl.LastError = ""
		fl.touched = f.now()
	}
}
