package auditmock

import (
	"context"
	"sync"

	"asset-custody/internal/domain/audit"
)

var _ audit.Sink = (*Sink)(nil)

// Sink captures entries in memory. Set Err to make every write fail.
type Sink struct {
	mu      sync.Mutex
	Err     error
	Entries []audit.Entry
}

func (s *Sink) Log(_ context.Context, e audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Entries = append(s.Entries, e)
	return nil
}

func (s *Sink) Snapshot() []audit.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]audit.Entry, len(s.Entries))
	copy(out, s.Entries)
	return out
}

// Actions lists "entity:action" pairs in write order.
func (s *Sink) Actions() []string {
	var out []string
	for _, e := range s.Snapshot() {
		out = append(out, string(e.EntityType)+":"+string(e.Action))
	}
	return out
}
