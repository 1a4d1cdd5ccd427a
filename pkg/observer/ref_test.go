package observer_test

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/infotraining/quote_syncer/pkg/observer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefIdentity(t *testing.T) {
	a := &listener{name: "a"}
	b := &listener{name: "b"}

	assert.True(t, ref(a).Same(ref(a)))
	assert.False(t, ref(a).Same(ref(b)))

	var zero observer.Ref[*source, int]
	assert.False(t, zero.Same(zero))
	assert.True(t, zero.Expired())

	owner := observer.Own[*source, int](a)
	assert.True(t, owner.Ref().Same(owner.Ref()))
	assert.False(t, owner.Ref().Same(ref(a)))

	obs, ok := owner.Ref().Get()
	require.True(t, ok)
	assert.Same(t, a, obs)
}

func TestNilPointerRefIsExpired(t *testing.T) {
	var l *listener
	r := observer.WeakRef[*source, int](l)
	assert.True(t, r.Expired())

	s := newSource()
	s.Subscribe(r)
	assert.Equal(t, 0, s.Len())
}

func TestOwnerClose(t *testing.T) {
	owner := observer.Own[*source, int](&listener{})
	r := owner.Ref()
	require.False(t, r.Expired())

	owner.Close()
	owner.Close()
	assert.True(t, owner.Closed())
	assert.True(t, r.Expired())
	assert.True(t, owner.Ref().Expired())
}

//go:noinline
func droppedOwnerRef() observer.Ref[*source, int] {
	return observer.Own[*source, int](&listener{name: "dropped"}).Ref()
}

func TestDroppedOwnerExpires(t *testing.T) {
	r := droppedOwnerRef()

	require.Eventually(t, func() bool {
		runtime.GC()
		return r.Expired()
	}, 5*time.Second, 10*time.Millisecond)
}

func TestExpiredRefIsNotSubscribed(t *testing.T) {
	s := newSource()
	owner := observer.Own[*source, int](&listener{})
	owner.Close()

	s.Subscribe(owner.Ref())
	assert.Equal(t, 0, s.Len())
}

var nopUpdates atomic.Int32

type nopObserver struct{}

func (*nopObserver) Update(*source, int) error {
	nopUpdates.Add(1)
	return nil
}

func TestZeroSizeObserver(t *testing.T) {
	s := newSource()
	r := observer.WeakRef[*source, int](&nopObserver{})
	require.False(t, r.Expired())
	assert.True(t, r.Same(r))

	s.Subscribe(r)
	require.Equal(t, 1, s.Len())

	before := nopUpdates.Load()
	runtime.GC()
	require.NoError(t, s.notifier.Notify(1))
	assert.Equal(t, before+1, nopUpdates.Load())
	assert.False(t, r.Expired())

	s.Unsubscribe(r)
	assert.Equal(t, 0, s.Len())
}

var globalListener = listener{name: "global"}

func TestPackageLevelObserverThroughOwner(t *testing.T) {
	s := newSource()
	owner := observer.Own[*source, int](&globalListener)
	s.Subscribe(owner.Ref())

	require.NoError(t, s.notifier.Notify(7))
	assert.Contains(t, globalListener.received(), 7)

	owner.Close()
	require.NoError(t, s.notifier.Notify(8))
	assert.NotContains(t, globalListener.received(), 8)
}
