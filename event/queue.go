package event

import (
	"sync"

	"github.com/lixenwraith/cursor-trail/parameter"
)

// Queue is a bounded MPSC ring of host events, drained once per frame by the loop thread
//
// Pointer moves coalesce: a move pushed right after another pending move replaces it,
// since the frame update reads only the latest pointer position. Presses, keys and
// resizes keep their order relative to the surviving moves.
//
// Overflow: the oldest pending move is evicted first. With no move pending the oldest
// event is evicted, except that an incoming move is dropped instead of displacing a
// discrete event.
type Queue struct {
	mu     sync.Mutex
	events [parameter.EventQueueSize]Event
	head   uint64 // Read index
	tail   uint64 // Write index
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) slot(i uint64) *Event {
	return &q.events[i&parameter.EventBufferMask]
}

// Push adds an event, safe for concurrent producers
func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if ev.Type == EventPointerMove && q.tail > q.head {
		if last := q.slot(q.tail - 1); last.Type == EventPointerMove {
			*last = ev
			return
		}
	}

	if q.tail-q.head == parameter.EventQueueSize {
		if !q.evictMove() {
			if ev.Type == EventPointerMove {
				return
			}
			q.head++
		}
	}

	*q.slot(q.tail) = ev
	q.tail++
}

// evictMove removes the oldest pending pointer move, shifting older events up one slot
func (q *Queue) evictMove() bool {
	for i := q.head; i < q.tail; i++ {
		if q.slot(i).Type != EventPointerMove {
			continue
		}
		for j := i; j > q.head; j-- {
			*q.slot(j) = *q.slot(j - 1)
		}
		q.head++
		return true
	}
	return false
}

// Consume returns all pending events in FIFO order and empties the queue
// Single consumer only
func (q *Queue) Consume() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := q.tail - q.head
	if n == 0 {
		return nil
	}

	result := make([]Event, 0, n)
	for i := q.head; i < q.tail; i++ {
		result = append(result, *q.slot(i))
	}
	q.head = q.tail
	return result
}

// Len returns the pending event count
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int(q.tail - q.head)
}
