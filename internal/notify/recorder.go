package notify

import (
	"context"
	"sync"
)

// Recorder keeps every message in memory.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *Recorder) Notify(_ context.Context, m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, m)
	return nil
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.msgs))
	copy(out, r.msgs)
	return out
}
