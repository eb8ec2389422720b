// Copyright 2019 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package dirwatch

import (
	"context"
	"testing"
	"time"

	"github.com/google/dirwatch/internal/testutil"
	"github.com/google/dirwatch/internal/waker"
)

const shutdownDeadline = 10 * time.Second

// TestServer wraps a Server whose polls are triggered by the test.
type TestServer struct {
	*Server

	tb testing.TB

	cancel context.CancelFunc
	awaken waker.WakeFunc
}

// TestMakeServer makes a new TestServer for use in tests, but does not start
// the server.  If an error occurs during creation, a testing.Fatal is issued.
func TestMakeServer(tb testing.TB, options ...Option) *TestServer {
	tb.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	tb.Cleanup(cancel)
	w, awaken := waker.NewTest(ctx, 1, "poll")
	m, err := New(ctx, append(options, PollWaker(w))...)
	testutil.FatalIfErr(tb, err)
	return &TestServer{Server: m, tb: tb, cancel: cancel, awaken: awaken}
}

// TestStartServer creates a new TestServer and starts it running.  It
// returns the server, and a cleanup function.
func TestStartServer(tb testing.TB, options ...Option) (*TestServer, func()) {
	tb.Helper()
	ts := TestMakeServer(tb, options...)
	return ts, ts.Start()
}

// Start starts the TestServer and returns a cleanup function.
func (ts *TestServer) Start() func() {
	ts.tb.Helper()
	errc := make(chan error, 1)
	go func() {
		errc <- ts.Run()
	}()

	return func() {
		ts.tb.Helper()
		ts.cancel()
		select {
		case err := <-errc:
			testutil.FatalIfErr(ts.tb, err)
		case <-time.After(shutdownDeadline):
			ts.tb.Fatal("timeout waiting for Run to return after cancel")
		}
	}
}

// PollWatched triggers one check for changes, and returns once it has completed.
func (ts *TestServer) PollWatched() {
	ts.tb.Helper()
	ts.awaken(1, 1)
}
