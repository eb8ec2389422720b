// Copyright 2020 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package waker

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
)

// A timedWaker wakes every waiting caller once per interval.
type timedWaker struct {
	mu   sync.Mutex // protects wake
	wake chan struct{}
}

// NewTimed returns a Waker that fires every interval until ctx is cancelled.
func NewTimed(ctx context.Context, interval time.Duration) Waker {
	t := &timedWaker{wake: make(chan struct{})}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				glog.V(1).Info("timed waker stopped")
				return
			case <-ticker.C:
				t.broadcast()
			}
		}
	}()
	return t
}

func (t *timedWaker) broadcast() {
	t.mu.Lock()
	defer t.mu.Unlock()
	close(t.wake)
	t.wake = make(chan struct{})
}

// Wake implements the Waker interface.
func (t *timedWaker) Wake() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wake
}
