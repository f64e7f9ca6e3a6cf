// Package events provides typed publish/subscribe used in place of
// string-keyed message dispatch.
package events

// Bus delivers values of type T to subscribers.
//
//   - Single-threaded: publish and subscribe happen on the simulation goroutine
//   - Handlers run synchronously in subscription order
//   - Handlers may unsubscribe (themselves or others) while being dispatched
type Bus[T any] struct {
	subs   []*subscription[T]
	nextID int
}

type subscription[T any] struct {
	id     int
	fn     func(T)
	active bool
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	b.nextID++
	sub := &subscription[T]{id: b.nextID, fn: fn, active: true}
	b.subs = append(b.subs, sub)

	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		for i, s := range b.subs {
			if s.id == sub.id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers v to every subscriber registered before the call.
func (b *Bus[T]) Publish(v T) {
	if len(b.subs) == 0 {
		return
	}
	snapshot := make([]*subscription[T], len(b.subs))
	copy(snapshot, b.subs)
	for _, s := range snapshot {
		if s.active {
			s.fn(v)
		}
	}
}

// Len returns the number of active subscribers.
func (b *Bus[T]) Len() int {
	return len(b.subs)
}
