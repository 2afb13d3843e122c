// internal/frame/store_test.go
package frame

import (
	"testing"
	"time"
)

func TestStore_EmptyReturnsZeroFrame(t *testing.T) {
	s := &Store{}

	f, ok := s.Current()
	if ok {
		t.Fatalf("expected ok=false before first publish")
	}
	if f.Active() != 0 {
		t.Fatalf("expected all-zero frame")
	}
}

func TestStore_PublishReplaces(t *testing.T) {
	s := &Store{}

	var f1 Frame
	f1[0] = 1
	s.Publish(Record{Data: f1, Seq: 1, At: time.Now()})

	var f2 Frame
	f2[0] = 2
	s.Publish(Record{Data: f2, Seq: 2, At: time.Now()})

	got, ok := s.Current()
	if !ok || got[0] != 2 {
		t.Fatalf("expected latest frame, got ok=%v v=%d", ok, got[0])
	}

	rec, ok := s.CurrentRecord()
	if !ok || rec.Seq != 2 {
		t.Fatalf("expected seq 2, got %d", rec.Seq)
	}
}
