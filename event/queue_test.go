package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/vi-lander/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	for i := 0; i < 5; i++ {
		Emit(q, EventThrustStart, int64(i))
	}
	if q.Len() != 5 {
		t.Errorf("Expected 5 pending, got %d", q.Len())
	}

	got := q.Consume()
	if len(got) != 5 {
		t.Fatalf("Expected 5 events, got %d", len(got))
	}
	for i, ev := range got {
		if ev.Frame != int64(i) {
			t.Errorf("Expected frame %d at position %d, got %d", i, i, ev.Frame)
		}
	}
	if q.Consume() != nil {
		t.Error("Expected empty queue after consume")
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewEventQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		Emit(q, EventContact, int64(i))
	}

	got := q.Consume()
	if len(got) != parameter.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", parameter.EventQueueSize, len(got))
	}
	if got[0].Frame != 10 {
		t.Errorf("Expected oldest surviving frame 10, got %d", got[0].Frame)
	}
	if got[len(got)-1].Frame != int64(total-1) {
		t.Errorf("Expected newest frame %d, got %d", total-1, got[len(got)-1].Frame)
	}
	if d := q.Dropped(); d != 10 {
		t.Errorf("Expected 10 dropped events, got %d", d)
	}
}

func TestQueueDrainKeepsDropCount(t *testing.T) {
	q := NewEventQueue()
	for round := 0; round < 3; round++ {
		for i := 0; i < parameter.EventQueueSize; i++ {
			Emit(q, EventThrustStart, int64(i))
		}
		if got := len(q.Consume()); got != parameter.EventQueueSize {
			t.Fatalf("Expected %d events in round %d, got %d", parameter.EventQueueSize, round, got)
		}
	}
	if d := q.Dropped(); d != 0 {
		t.Errorf("Expected no drops when drained each round, got %d", d)
	}
	if n := q.Len(); n != 0 {
		t.Errorf("Expected empty queue, got %d", n)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				Emit(q, EventPick, 0)
			}
		}()
	}
	wg.Wait()

	if got := len(q.Consume()); got != 80 {
		t.Errorf("Expected 80 events, got %d", got)
	}
}

func TestRouterDispatch(t *testing.T) {
	q := NewEventQueue()
	r := NewRouter()

	var landed []*TouchdownPayload
	var thrust int
	r.Subscribe(EventLanded, func(ev GameEvent) {
		landed = append(landed, ev.Payload.(*TouchdownPayload))
	})
	r.Subscribe(EventThrustStart, func(GameEvent) { thrust++ })
	r.Subscribe(EventThrustStart, func(GameEvent) { thrust++ })

	EmitWith(q, EventLanded, &TouchdownPayload{Impulse: 333}, 7)
	Emit(q, EventThrustStart, 8)
	Emit(q, EventMuteToggle, 9)

	if n := r.Drain(q); n != 3 {
		t.Errorf("Expected 3 drained events, got %d", n)
	}
	if len(landed) != 1 || landed[0].Impulse != 333 {
		t.Errorf("Expected one landed payload with impulse 333, got %v", landed)
	}
	if thrust != 2 {
		t.Errorf("Expected both thrust handlers to run, got %d", thrust)
	}
	if r.Drain(q) != 0 {
		t.Error("Expected nothing left to drain")
	}
}

func TestEventTypeString(t *testing.T) {
	if EventExploded.String() != "exploded" {
		t.Errorf("Expected exploded, got %s", EventExploded.String())
	}
	if EventType(999).String() != "unknown" {
		t.Error("Expected unknown for unregistered type")
	}
}
