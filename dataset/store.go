package dataset

import "sync/atomic"

// Store holds the active Dataset. The zero value is an empty store.
// Store is safe for concurrent use.
type Store struct {
	cur atomic.Pointer[Dataset]
}

// Load returns the active Dataset, or nil when none has been loaded.
func (s *Store) Load() *Dataset {
	return s.cur.Load()
}

// Replace makes d the active Dataset and returns the one it replaced.
// A nil d is ignored so that the store can never be emptied by a failed load.
func (s *Store) Replace(d *Dataset) (prev *Dataset) {
	if d == nil {
		return s.cur.Load()
	}
	return s.cur.Swap(d)
}
