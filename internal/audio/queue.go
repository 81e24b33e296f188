package audio

import "sync"

// Queue is the playback queue: a strict FIFO of segment references with
// aggregate fill tracking. Entries live in a slot-indexed arena with an
// internal free list, so steady-state enqueue and consume do not allocate.
//
// The queue tolerates one producer calling Enqueue concurrently with one
// consumer calling Consume; no lock is held for more than constant work, so
// the consumer may run on a real-time audio thread.
type Queue struct {
	mu      sync.Mutex
	arena   []entry
	free    []int32 // reusable slots, LIFO
	head    int32
	tail    int32
	count   int
	samples int
}

// entry references one segment with a read cursor. The remaining sample
// count is seg.Len() - cursor.
type entry struct {
	seg    *Segment
	cursor int
	next   int32
}

// NewQueue returns an empty playback queue.
func NewQueue() *Queue {
	return &Queue{head: -1, tail: -1}
}

// Enqueue appends a reference to seg at the tail. The segment itself is
// never copied.
func (q *Queue) Enqueue(seg *Segment) {
	q.mu.Lock()
	i := q.alloc()
	e := &q.arena[i]
	e.seg = seg
	e.cursor = 0
	e.next = -1
	if q.tail >= 0 {
		q.arena[q.tail].next = i
	} else {
		q.head = i
	}
	q.tail = i
	q.count++
	q.samples += seg.Len()
	q.mu.Unlock()
}

// alloc takes a slot from the free list, growing the arena only when the
// list is empty. Caller holds q.mu.
func (q *Queue) alloc() int32 {
	if n := len(q.free); n > 0 {
		i := q.free[n-1]
		q.free = q.free[:n-1]
		return i
	}
	q.arena = append(q.arena, entry{})
	return int32(len(q.arena) - 1)
}

// Consume returns up to max contiguous samples starting at the head entry's
// cursor. It may return fewer than max when the head entry runs out; the
// caller issues another call. An empty queue yields a zero-length slice,
// which is the expected underrun signal, not an error.
func (q *Queue) Consume(max int) []float32 {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head < 0 || max <= 0 {
		return nil
	}
	e := &q.arena[q.head]
	n := e.seg.Len() - e.cursor
	if n > max {
		n = max
	}
	out := e.seg.samples[e.cursor : e.cursor+n]
	e.cursor += n
	q.samples -= n
	if e.cursor == e.seg.Len() {
		i := q.head
		q.head = e.next
		if q.head < 0 {
			q.tail = -1
		}
		e.seg = nil
		q.free = append(q.free, i)
		q.count--
	}
	return out
}

// Samples returns the aggregate remaining sample count across all entries.
// This is the sole backpressure signal exposed to the stream driver.
func (q *Queue) Samples() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.samples
}

// Entries returns the number of queued entries.
func (q *Queue) Entries() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}
