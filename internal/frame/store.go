// internal/frame/store.go
package frame

import "sync/atomic"

// Store holds the latest published frame record.
//
// Publication is by pointer replacement: a record is never mutated after it
// is stored, so readers and the writer need no lock.
type Store struct {
	cur atomic.Pointer[Record]
}

// Publish makes rec the current record.
func (s *Store) Publish(rec Record) {
	s.cur.Store(&rec)
}

// Current returns a copy of the current frame.
// Before the first publish it returns the all-zero frame and ok=false.
func (s *Store) Current() (Frame, bool) {
	rec := s.cur.Load()
	if rec == nil {
		return Frame{}, false
	}
	return rec.Data, true
}

// CurrentRecord returns the current record, if any.
func (s *Store) CurrentRecord() (Record, bool) {
	rec := s.cur.Load()
	if rec == nil {
		return Record{}, false
	}
	return *rec, true
}
