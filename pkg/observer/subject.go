package observer

// Subject is the public half of a publisher: anyone may subscribe and
// unsubscribe. Concrete subjects embed it.
type Subject[S, E any] struct {
	reg *registry[S, E]
}

// Notifier is the publishing half of a subject. A concrete subject keeps it
// in an unexported field so only its own state changes are announced.
type Notifier[S, E any] struct {
	source S
	reg    *registry[S, E]
}

// New returns the two halves of a subject whose observers will be handed
// source on every update.
//
//	type Stock struct {
//		*observer.Subject[*Stock, PriceChanged]
//		notifier *observer.Notifier[*Stock, PriceChanged]
//	}
//
//	s := &Stock{}
//	s.Subject, s.notifier = observer.New[*Stock, PriceChanged](s)
func New[S, E any](source S) (*Subject[S, E], *Notifier[S, E]) {
	reg := newRegistry[S, E]()
	return &Subject[S, E]{reg: reg}, &Notifier[S, E]{source: source, reg: reg}
}

// Subscribe registers ref. Subscribing an identity that is already
// registered, or an expired ref, does nothing.
func (s *Subject[S, E]) Subscribe(ref Ref[S, E]) {
	s.reg.add(ref)
}

// Unsubscribe removes ref if it is registered. A Notify in progress skips it
// from then on, but an Update call already running is not interrupted.
func (s *Subject[S, E]) Unsubscribe(ref Ref[S, E]) {
	s.reg.remove(ref)
}

// Len returns the number of registered entries. Entries whose observer is
// gone are counted until a Notify discovers and prunes them.
func (s *Subject[S, E]) Len() int {
	return s.reg.len()
}

// Notify delivers event to every observer registered when the call began
// and still registered and alive when its turn comes. Observers subscribed
// during the call are not visited.
//
// The first error returned by an observer is returned as is, and the
// observers not yet visited in this round are skipped. A panic in an
// observer propagates the same way.
func (n *Notifier[S, E]) Notify(event E) error {
	var expired []uint64
	defer func() {
		n.reg.prune(expired)
	}()

	var err error
	n.reg.snapshot().Scan(func(seq uint64, ref Ref[S, E]) bool {
		// unsubscribed by an observer visited earlier in this round
		if !n.reg.registered(seq) {
			return true
		}
		obs, ok := ref.Get()
		if !ok {
			expired = append(expired, seq)
			return true
		}
		err = obs.Update(n.source, event)
		return err == nil
	})
	return err
}
