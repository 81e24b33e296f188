package audio

import (
	"sync"
	"testing"
)

func segmentOf(vals ...float32) *Segment {
	return &Segment{samples: vals}
}

func TestQueue_EnqueueConsumeOrder(t *testing.T) {
	q := NewQueue()
	a := segmentOf(1, 2, 3)
	b := segmentOf(4, 5)
	q.Enqueue(a)
	q.Enqueue(b)

	if q.Entries() != 2 {
		t.Errorf("Expected 2 entries, got %d", q.Entries())
	}
	if q.Samples() != 5 {
		t.Errorf("Expected 5 samples queued, got %d", q.Samples())
	}

	var got []float32
	for {
		s := q.Consume(10)
		if len(s) == 0 {
			break
		}
		got = append(got, s...)
	}
	want := []float32{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("Expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected sample %v at %d, got %v", want[i], i, got[i])
		}
	}
}

func TestQueue_ConsumeStopsAtEntryBoundary(t *testing.T) {
	q := NewQueue()
	q.Enqueue(segmentOf(1, 2, 3))
	q.Enqueue(segmentOf(4, 5, 6))

	s := q.Consume(2)
	if len(s) != 2 {
		t.Fatalf("Expected 2 samples, got %d", len(s))
	}
	// The head entry has one sample left; a larger request returns only it.
	s = q.Consume(100)
	if len(s) != 1 || s[0] != 3 {
		t.Fatalf("Expected the head remainder [3], got %v", s)
	}
	s = q.Consume(100)
	if len(s) != 3 || s[0] != 4 {
		t.Fatalf("Expected the next entry [4 5 6], got %v", s)
	}
}

func TestQueue_AggregateInvariant(t *testing.T) {
	q := NewQueue()
	segs := []*Segment{
		segmentOf(1, 1, 1, 1),
		segmentOf(2, 2),
		segmentOf(3, 3, 3),
	}
	total := 0
	for _, s := range segs {
		q.Enqueue(s)
		total += s.Len()
		if q.Samples() != total {
			t.Fatalf("Expected aggregate %d after enqueue, got %d", total, q.Samples())
		}
	}
	for total > 0 {
		s := q.Consume(2)
		total -= len(s)
		if q.Samples() != total {
			t.Fatalf("Expected aggregate %d after consume, got %d", total, q.Samples())
		}
	}
	if q.Entries() != 0 {
		t.Errorf("Expected empty queue, got %d entries", q.Entries())
	}
}

func TestQueue_EmptyConsume(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 5; i++ {
		if s := q.Consume(8); len(s) != 0 {
			t.Fatalf("Expected zero samples from empty queue, got %d", len(s))
		}
	}
	// A later enqueue still works after repeated underruns.
	q.Enqueue(segmentOf(7))
	s := q.Consume(8)
	if len(s) != 1 || s[0] != 7 {
		t.Errorf("Expected [7] after enqueue, got %v", s)
	}
}

func TestQueue_PoolReuse(t *testing.T) {
	q := NewQueue()
	seg := segmentOf(1, 2)

	// Cycle entries through the queue; the arena must not grow past the
	// peak concurrent depth.
	for i := 0; i < 100; i++ {
		q.Enqueue(seg)
		for len(q.Consume(8)) != 0 {
		}
	}
	if n := len(q.arena); n != 1 {
		t.Errorf("Expected arena of 1 slot after sequential reuse, got %d", n)
	}

	for i := 0; i < 3; i++ {
		q.Enqueue(seg)
	}
	for len(q.Consume(8)) != 0 {
	}
	if n := len(q.arena); n != 3 {
		t.Errorf("Expected arena of 3 slots after depth-3 burst, got %d", n)
	}
}

func TestQueue_SharedSegmentCursorsIndependent(t *testing.T) {
	q := NewQueue()
	seg := segmentOf(1, 2, 3)
	q.Enqueue(seg)
	q.Enqueue(seg)

	if s := q.Consume(3); len(s) != 3 {
		t.Fatalf("Expected 3 samples, got %d", len(s))
	}
	// The second reference starts at its own cursor, not the shared one.
	s := q.Consume(1)
	if len(s) != 1 || s[0] != 1 {
		t.Errorf("Expected second entry to restart at the segment head, got %v", s)
	}
}

func TestQueue_ConcurrentProducerConsumer(t *testing.T) {
	q := NewQueue()
	seg := segmentOf(1, 2, 3, 4)
	const rounds = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			q.Enqueue(seg)
		}
	}()

	consumed := 0
	for consumed < rounds*seg.Len() {
		consumed += len(q.Consume(16))
	}
	wg.Wait()

	if q.Samples() != 0 {
		t.Errorf("Expected drained queue, got %d samples", q.Samples())
	}
	if q.Entries() != 0 {
		t.Errorf("Expected no entries, got %d", q.Entries())
	}
}
