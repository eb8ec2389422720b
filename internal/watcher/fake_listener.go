// Copyright 2015 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package watcher

import (
	"sync"
)

// FakeListener implements an in-memory Listener that records the messages it
// receives, for use in tests.
type FakeListener struct {
	mu       sync.Mutex
	messages []string
	err      error
	failAt   int
}

// NewFakeListener returns a FakeListener that accepts every message.
func NewFakeListener() *FakeListener {
	return &FakeListener{failAt: -1}
}

// Update records message, or returns the injected error.
func (l *FakeListener) Update(message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failAt == 0 {
		return l.err
	}
	if l.failAt > 0 {
		l.failAt--
	}
	l.messages = append(l.messages, message)
	return nil
}

// InjectError makes the listener accept n more messages, then fail every
// following Update with err.
func (l *FakeListener) InjectError(n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failAt = n
	l.err = err
}

// Messages returns a copy of the messages received so far.
func (l *FakeListener) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

// Reset discards the received messages.
func (l *FakeListener) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = nil
}
