package observer

import (
	"sync/atomic"
	"unsafe"
	"weak"
)

// Ref is a non-owning reference to an observer.
//
// Two refs are the same subscription when they carry the same identity
// token, whatever the observer's own notion of equality is. The zero Ref
// refers to nothing and is always expired.
type Ref[S, E any] struct {
	id   any
	load func() Observer[S, E]
}

// WeakRef returns a reference to the observer p points to. The reference
// does not keep p alive: once p has been reclaimed by the garbage collector
// the reference reports itself expired.
//
// p must point to a heap allocation. Pointers to package-level variables
// cannot be weakly referenced; wrap such observers with Own instead.
// Zero-size observers carry no state and are never reclaimed, so their refs
// hold them directly and never expire.
//
// Refs made from the same pointer share an identity.
func WeakRef[S, E any, T any, PT interface {
	*T
	Observer[S, E]
}](p PT) Ref[S, E] {
	if (*T)(p) == nil {
		return Ref[S, E]{}
	}

	if unsafe.Sizeof(*new(T)) == 0 {
		return Ref[S, E]{
			id: p,
			load: func() Observer[S, E] {
				return p
			},
		}
	}

	wp := weak.Make((*T)(p))
	return Ref[S, E]{
		id: wp,
		load: func() Observer[S, E] {
			if v := wp.Value(); v != nil {
				return PT(v)
			}
			return nil
		},
	}
}

// Get resolves the reference. ok is false when the observer is gone.
func (r Ref[S, E]) Get() (obs Observer[S, E], ok bool) {
	if r.load == nil {
		return nil, false
	}
	obs = r.load()
	return obs, obs != nil
}

func (r Ref[S, E]) Expired() bool {
	_, ok := r.Get()
	return !ok
}

// Same reports whether r and other refer to the same observer.
func (r Ref[S, E]) Same(other Ref[S, E]) bool {
	return r.id != nil && r.id == other.id
}

type control[S, E any] struct {
	obs    Observer[S, E]
	closed atomic.Bool
}

// Owner keeps an observer alive and hands out refs to it.
//
// The refs expire when Close is called, or when the Owner itself becomes
// unreachable and is collected.
type Owner[S, E any] struct {
	ctl *control[S, E]
}

func Own[S, E any](obs Observer[S, E]) *Owner[S, E] {
	return &Owner[S, E]{ctl: &control[S, E]{obs: obs}}
}

// Ref returns a reference whose identity is this owner's control block.
func (o *Owner[S, E]) Ref() Ref[S, E] {
	wp := weak.Make(o.ctl)
	return Ref[S, E]{
		id: wp,
		load: func() Observer[S, E] {
			ctl := wp.Value()
			if ctl == nil || ctl.closed.Load() {
				return nil
			}
			return ctl.obs
		},
	}
}

func (o *Owner[S, E]) Observer() Observer[S, E] {
	return o.ctl.obs
}

// Close expires every ref handed out by this owner. It is idempotent.
func (o *Owner[S, E]) Close() {
	o.ctl.closed.Store(true)
}

func (o *Owner[S, E]) Closed() bool {
	return o.ctl.closed.Load()
}
