package event

import (
	"sync/atomic"

	"github.com/lixenwraith/vi-lander/parameter"
)

// slot pairs an event with its ready flag; ready is set only after the event is written
type slot struct {
	ev    GameEvent
	ready atomic.Bool
}

// EventQueue is a bounded multi-producer, single-consumer ring of simulation events
// Producers claim a sequence number with CAS on tail, the simulation loop drains from head
// When producers lap the consumer the oldest events are discarded and counted in Dropped
type EventQueue struct {
	slots   [parameter.EventQueueSize]slot
	head    atomic.Uint64
	tail    atomic.Uint64
	dropped atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends ev, overwriting the oldest pending event when the ring is full
func (eq *EventQueue) Push(ev GameEvent) {
	seq := eq.claim()
	s := &eq.slots[seq&parameter.EventBufferMask]
	s.ev = ev
	s.ready.Store(true)
	eq.trim(seq + 1)
}

// claim reserves the next write sequence
func (eq *EventQueue) claim() uint64 {
	for {
		seq := eq.tail.Load()
		if eq.tail.CompareAndSwap(seq, seq+1) {
			return seq
		}
	}
}

// trim advances head so at most EventQueueSize sequences stay pending below end
func (eq *EventQueue) trim(end uint64) {
	if end < parameter.EventQueueSize {
		return
	}
	floor := end - parameter.EventQueueSize
	for {
		head := eq.head.Load()
		if head >= floor {
			return
		}
		if eq.head.CompareAndSwap(head, floor) {
			eq.dropped.Add(floor - head)
			return
		}
	}
}

// Consume returns all pending events in FIFO order and advances head
func (eq *EventQueue) Consume() []GameEvent {
	return eq.ConsumeInto(nil)
}

// ConsumeInto appends pending events to dst so the caller can reuse one buffer across ticks
// Draining stops at the first slot whose producer has not finished writing
func (eq *EventQueue) ConsumeInto(dst []GameEvent) []GameEvent {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return dst
	}

	from := head
	if tail-from > parameter.EventQueueSize {
		from = tail - parameter.EventQueueSize
	}

	seq := from
	for ; seq < tail; seq++ {
		s := &eq.slots[seq&parameter.EventBufferMask]
		if !s.ready.Load() {
			break
		}
		dst = append(dst, s.ev)
		s.ready.Store(false)
	}

	if from > head && eq.head.CompareAndSwap(head, from) {
		eq.dropped.Add(from - head)
	}
	eq.release(seq)
	return dst
}

// release moves head to seq unless a producer already trimmed past it
func (eq *EventQueue) release(seq uint64) {
	for {
		head := eq.head.Load()
		if head >= seq || eq.head.CompareAndSwap(head, seq) {
			return
		}
	}
}

// Len returns the approximate number of pending events
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, parameter.EventQueueSize))
}

// Dropped returns how many events were discarded because the ring was full
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
