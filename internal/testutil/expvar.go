// Copyright 2021 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package testutil

import (
	"expvar"
	"testing"
	"time"

	"github.com/golang/glog"
)

const defaultDoOrTimeoutDeadline = 10 * time.Second

// TestGetExpvar fetches the expvar metric `name`, and returns the expvar.
// Callers are responsible for type assertions on the returned value.
func TestGetExpvar(tb testing.TB, name string) expvar.Var {
	tb.Helper()
	v := expvar.Get(name)
	if v == nil {
		tb.Fatalf("expvar %q not published", name)
	}
	glog.V(2).Infof("Var %q is %v", name, v)
	return v
}

func intValue(v expvar.Var) int64 {
	if v == nil {
		return 0
	}
	return v.(*expvar.Int).Value()
}

// ExpectExpvarDeltaWithDeadline returns a deferrable function which tests if
// the expvar Int `name` has changed by want, waiting up to a deadline once the
// returned function is called.  The starting value is read before returning.
func ExpectExpvarDeltaWithDeadline(tb testing.TB, name string, want int64) func() {
	tb.Helper()
	get := func() int64 { return intValue(TestGetExpvar(tb, name)) }
	return expectDelta(tb, name, get, want)
}

// ExpectMapExpvarDeltaWithDeadline is like ExpectExpvarDeltaWithDeadline, for
// the key `key` of the expvar Map `name`.
func ExpectMapExpvarDeltaWithDeadline(tb testing.TB, name, key string, want int64) func() {
	tb.Helper()
	get := func() int64 { return intValue(TestGetExpvar(tb, name).(*expvar.Map).Get(key)) }
	return expectDelta(tb, name+"["+key+"]", get, want)
}

func expectDelta(tb testing.TB, name string, get func() int64, want int64) func() {
	tb.Helper()
	start := get()
	check := func() (bool, error) {
		return get()-start == want, nil
	}
	return func() {
		tb.Helper()
		ok, err := DoOrTimeout(check, defaultDoOrTimeoutDeadline, 10*time.Millisecond)
		FatalIfErr(tb, err)
		if !ok {
			now := get()
			tb.Errorf("Did not see %s have delta by deadline: got %v - %v = %d, want %d", name, now, start, now-start, want)
		}
	}
}
