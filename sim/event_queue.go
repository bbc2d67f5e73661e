package sim

import (
	"container/heap"
	"time"
)

// eventHeap implements heap.Interface ordered by (time, priority, seq).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if !h[i].Time.Equal(h[j].Time) {
		return h[i].Time.Before(h[j].Time)
	}
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// EventQueue orders pending events by (time ascending, priority ascending,
// sequence ascending). The tie-break ordering is the determinism contract:
// identical inputs across runs yield identical execution order.
type EventQueue struct {
	heap      eventHeap
	nextSeq   uint64
	drainTime time.Time
}

// NewEventQueue creates a queue whose initial drain time is start.
// Events strictly before the drain time are rejected.
func NewEventQueue(start time.Time) *EventQueue {
	return &EventQueue{drainTime: start}
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int { return len(q.heap) }

// DrainTime returns the time up to which events have been drained.
func (q *EventQueue) DrainTime() time.Time { return q.drainTime }

// Schedule inserts an event, assigning its sequence number. It fails with
// *InvalidScheduleError if the event time is strictly before the queue's
// current drain time (no scheduling into the past).
func (q *EventQueue) Schedule(ev Event) error {
	if ev.Time.Before(q.drainTime) {
		return &InvalidScheduleError{Kind: ev.Kind, EventTime: ev.Time, DrainTime: q.drainTime}
	}
	ev.seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.heap, ev)
	return nil
}

// PopDue removes and returns, in (time, priority, sequence) order, all
// events with scheduled time at or before now. The drain time advances to
// now, so each event is consumed exactly once.
func (q *EventQueue) PopDue(now time.Time) []Event {
	if now.After(q.drainTime) {
		q.drainTime = now
	}
	var due []Event
	for len(q.heap) > 0 && !q.heap[0].Time.After(now) {
		due = append(due, heap.Pop(&q.heap).(Event))
	}
	return due
}

// PeekNextTime returns the earliest pending event time. The second return
// value is false when the queue is empty. State is not mutated.
func (q *EventQueue) PeekNextTime() (time.Time, bool) {
	if len(q.heap) == 0 {
		return time.Time{}, false
	}
	return q.heap[0].Time, true
}
