// Package observer is a publish/subscribe core whose subjects hold only
// non-owning references to their observers.
package observer

// Observer receives the events published by a subject of type S.
//
// Update may be called any number of times, in any order relative to other
// observers, and may itself call Subscribe or Unsubscribe on source.
// A non-nil error stops the notification round that made the call.
type Observer[S, E any] interface {
	Update(source S, event E) error
}

// Func adapts a plain function into an Observer.
// A Func has no stable address of its own, so wrap it with Own before
// subscribing it.
type Func[S, E any] func(source S, event E) error

func (f Func[S, E]) Update(source S, event E) error {
	return f(source, event)
}
