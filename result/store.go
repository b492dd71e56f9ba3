package result

import (
	"encoding/json"
	"sync"
)

// Entry is one committed run.
type Entry struct {
	// Seq is the request sequence number the entry was committed with.
	Seq uint64
	// RequestID is the identifier sent to the compute service.
	RequestID string
	// Algorithm is the algorithm the run was requested for.
	Algorithm string
	// Raw is the response body, byte for byte.
	Raw json.RawMessage
	// Result is the decoded variant.
	Result Result
}

// Store holds the most recent Entry. The zero value is an empty store.
//
// Sequence numbers come from Next and are strictly increasing. Commit only
// accepts an entry whose sequence number is higher than the last committed
// one, so the newest request wins regardless of response arrival order.
// Store is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	issued    uint64
	committed uint64
	cur       *Entry
}

// Next allocates the sequence number for a new request.
func (s *Store) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Commit makes e the current entry unless a newer one is already committed.
// It reports whether e was stored.
func (s *Store) Commit(e *Entry) bool {
	if e == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.Seq <= s.committed {
		return false
	}
	s.committed = e.Seq
	s.cur = e
	return true
}

// Load returns the current entry, or nil when nothing has been committed.
func (s *Store) Load() *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}
