package observer

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/btree"
)

const degree = 32

// registry is the set of refs subscribed to one subject, at most one per
// identity. Entries are kept in subscription order so a snapshot is a cheap
// copy-on-write clone of the tree.
type registry[S, E any] struct {
	mu      sync.Mutex
	nextSeq uint64
	index   map[any]uint64
	entries *btree.Map[uint64, Ref[S, E]]
}

func newRegistry[S, E any]() *registry[S, E] {
	return &registry[S, E]{
		index:   make(map[any]uint64),
		entries: btree.NewMap[uint64, Ref[S, E]](degree),
	}
}

func (r *registry[S, E]) add(ref Ref[S, E]) {
	if ref.Expired() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[ref.id]; ok {
		return
	}
	r.nextSeq++
	r.index[ref.id] = r.nextSeq
	r.entries.Set(r.nextSeq, ref)
	log.Debugf("observer subscribed, seq: %d, subscribers: %d", r.nextSeq, r.entries.Len())
}

func (r *registry[S, E]) remove(ref Ref[S, E]) {
	if ref.id == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seq, ok := r.index[ref.id]
	if !ok {
		return
	}
	delete(r.index, ref.id)
	r.entries.Delete(seq)
	log.Debugf("observer unsubscribed, seq: %d, subscribers: %d", seq, r.entries.Len())
}

// snapshot returns the entries registered right now. Later mutations of the
// registry are not visible through it.
func (r *registry[S, E]) snapshot() *btree.Map[uint64, Ref[S, E]] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries.Copy()
}

// registered reports whether the entry taken into a snapshot as seq is still
// subscribed.
func (r *registry[S, E]) registered(seq uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries.Get(seq)
	return ok
}

// prune drops entries found expired during a round. An identity that was
// removed and subscribed again in the meantime has a new seq and is kept.
func (r *registry[S, E]) prune(seqs []uint64) {
	if len(seqs) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, seq := range seqs {
		ref, ok := r.entries.Get(seq)
		if !ok {
			continue
		}
		if r.index[ref.id] == seq {
			delete(r.index, ref.id)
		}
		r.entries.Delete(seq)
	}
}

func (r *registry[S, E]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries.Len()
}
