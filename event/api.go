package event

// Emit pushes a payload-free event
func Emit(q *EventQueue, t EventType, frame int64) {
	q.Push(GameEvent{Type: t, Frame: frame})
}

// EmitWith pushes an event carrying payload
func EmitWith(q *EventQueue, t EventType, payload any, frame int64) {
	q.Push(GameEvent{Type: t, Payload: payload, Frame: frame})
}

// Handler consumes one event
type Handler func(GameEvent)

// Router fans consumed events out to handlers registered per type
// Not safe for concurrent use; owned by the simulation loop
type Router struct {
	handlers map[EventType][]Handler
	buf      []GameEvent
}

func NewRouter() *Router {
	return &Router{handlers: make(map[EventType][]Handler)}
}

// Subscribe registers h for events of type t, handlers run in registration order
func (r *Router) Subscribe(t EventType, h Handler) {
	r.handlers[t] = append(r.handlers[t], h)
}

// Drain consumes the queue and dispatches every event, returning the count
func (r *Router) Drain(q *EventQueue) int {
	r.buf = q.ConsumeInto(r.buf[:0])
	for _, ev := range r.buf {
		for _, h := range r.handlers[ev.Type] {
			h(ev)
		}
	}
	n := len(r.buf)
	// Drop payload references held by the buffer
	clear(r.buf)
	return n
}
