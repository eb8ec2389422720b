// Copyright 2020 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package waker

import (
	"context"
	"sync"

	"github.com/golang/glog"
)

// A testWaker lets a test decide exactly when polling loops run.  Each wakee
// calls Wake at the top of its loop; the test's WakeFunc releases a number
// of them together and then blocks until a number of wakees have come back
// around to Wake, so that one full poll cycle has completed when it returns.
type testWaker struct {
	ctx  context.Context
	name string

	wakeeReady chan struct{} // a wakee has been released and is waiting for the broadcast
	wakeeDone  chan struct{} // a wakee has called Wake
	waiting    chan struct{} // releases one blocked wakee

	mu   sync.Mutex // protects wake
	wake chan struct{}
}

// WakeFunc wakes up `wake` goroutines blocked on a test Waker, then waits
// for `wait` goroutines to call Wake again before returning.
type WakeFunc func(wake, wait int)

// NewTest returns a Waker for use in tests and the function that triggers it.
// `wait` is the number of wakees expected to call Wake before the first
// WakeFunc call; `name` labels the waker in debug logs.
func NewTest(ctx context.Context, wait int, name string) (Waker, WakeFunc) {
	t := &testWaker{
		ctx:        ctx,
		name:       name,
		wakeeReady: make(chan struct{}),
		wakeeDone:  make(chan struct{}),
		waiting:    make(chan struct{}),
		wake:       make(chan struct{}),
	}
	initDone := make(chan struct{})
	go func() {
		defer close(initDone)
		glog.Infof("TestWaker(%s) waiting for %d initial wakees", t.name, wait)
		for i := 0; i < wait; i++ {
			select {
			case <-ctx.Done():
				return
			case <-t.wakeeDone:
			}
		}
	}()
	awaken := func(wake, wait int) {
		<-initDone
		glog.Infof("TestWaker(%s) releasing %d wakees", t.name, wake)
		for i := 0; i < wake; i++ {
			t.waiting <- struct{}{}
		}
		for i := 0; i < wake; i++ {
			<-t.wakeeReady
		}
		t.broadcastWakeAndReset()
		glog.Infof("TestWaker(%s) waiting for %d wakees to return to Wake", t.name, wait)
		for i := 0; i < wait; i++ {
			<-t.wakeeDone
		}
		glog.Infof("TestWaker(%s) wakees returned", t.name)
	}
	return t, awaken
}

// Wake implements the Waker interface.
func (t *testWaker) Wake() <-chan struct{} {
	t.mu.Lock()
	w := t.wake
	t.mu.Unlock()
	glog.V(2).Infof("Wakee on TestWaker(%s) waiting on chan %p", t.name, w)
	// The WakeFunc can't broadcast on w until this goroutine has been released.
	go func() {
		select {
		case <-t.ctx.Done():
			return
		case t.wakeeDone <- struct{}{}:
		}
		select {
		case <-t.ctx.Done():
			return
		case <-t.waiting:
		}
		select {
		case <-t.ctx.Done():
			return
		case t.wakeeReady <- struct{}{}:
		}
	}()
	return w
}

func (t *testWaker) broadcastWakeAndReset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	glog.V(2).Infof("TestWaker(%s) broadcasting on chan %p", t.name, t.wake)
	close(t.wake)
	t.wake = make(chan struct{})
}

// alwaysWaker never blocks the wakee.
type alwaysWaker struct {
	wake chan struct{}
}

// NewTestAlways returns a Waker whose Wake channel is always closed.
func NewTestAlways() Waker {
	w := &alwaysWaker{wake: make(chan struct{})}
	close(w.wake)
	return w
}

func (w *alwaysWaker) Wake() <-chan struct{} {
	return w.wake
}
