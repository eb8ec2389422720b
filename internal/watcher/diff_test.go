// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package watcher

import (
	"testing"
	"time"

	"github.com/google/dirwatch/internal/snapshot"
	"github.com/google/dirwatch/internal/testutil"
)

var (
	t0 = time.Date(2020, time.March, 1, 12, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Second)
)

type files map[string]time.Time

var diffTests = []struct {
	name       string
	prev, curr files
	want       []Event
}{
	{"both empty", nil, nil, nil},
	{"unchanged", files{"a": t0, "b": t1}, files{"a": t0, "b": t1}, nil},
	{"added", files{"a": t0}, files{"a": t0, "b": t0}, []Event{{Added, "b"}}},
	{"removed", files{"a": t0, "b": t0}, files{"a": t0}, []Event{{Removed, "b"}}},
	{"modified", files{"a": t0}, files{"a": t1}, []Event{{Modified, "a"}}},
	{"modified backwards", files{"a": t1}, files{"a": t0}, []Event{{Modified, "a"}}},
	{"nanosecond", files{"a": t0}, files{"a": t0.Add(time.Nanosecond)}, []Event{{Modified, "a"}}},
	{"same instant", files{"a": t0}, files{"a": t0.In(time.FixedZone("X", -3600))}, nil},
	{"renamed", files{"a": t0}, files{"b": t0}, []Event{{Added, "b"}, {Removed, "a"}}},
	{
		"everything",
		files{"keep": t0, "gone2": t0, "gone1": t0, "touch2": t0, "touch1": t0},
		files{"keep": t0, "new2": t0, "new1": t0, "touch2": t1, "touch1": t1},
		[]Event{
			{Added, "new1"}, {Added, "new2"},
			{Removed, "gone1"}, {Removed, "gone2"},
			{Modified, "touch1"}, {Modified, "touch2"},
		},
	},
}

func TestDiff(t *testing.T) {
	for _, tc := range diffTests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Diff(snapshot.New(tc.prev), snapshot.New(tc.curr))
			testutil.ExpectNoDiff(t, tc.want, got, testutil.EquateEmpty())
		})
	}
}

// Each path in either snapshot yields at most one event, and applying the
// events to prev's key set gives curr's key set.
func TestDiffKeySets(t *testing.T) {
	for _, tc := range diffTests {
		prev, curr := snapshot.New(tc.prev), snapshot.New(tc.curr)
		keys := map[string]bool{}
		for _, p := range prev.Paths() {
			keys[p] = true
		}
		seen := map[string]bool{}
		for _, e := range Diff(prev, curr) {
			if seen[e.Pathname] {
				t.Errorf("%s: more than one event for %q", tc.name, e.Pathname)
			}
			seen[e.Pathname] = true
			switch e.Op {
			case Added:
				keys[e.Pathname] = true
			case Removed:
				delete(keys, e.Pathname)
			}
		}
		var got []string
		for _, p := range prev.Paths() {
			if keys[p] {
				got = append(got, p)
			}
		}
		for _, p := range curr.Paths() {
			if keys[p] && !prev.Has(p) {
				got = append(got, p)
			}
		}
		testutil.ExpectNoDiff(t, curr.Paths(), got, testutil.EquateEmpty(), testutil.SortSlices(func(a, b string) bool { return a < b }))
	}
}

func TestEventString(t *testing.T) {
	for _, tc := range []struct {
		e    Event
		want string
	}{
		{Event{Added, "/tmp/a.txt"}, "Added file: /tmp/a.txt"},
		{Event{Removed, "/tmp/a.txt"}, "Removed file: /tmp/a.txt"},
		{Event{Modified, "/tmp/a.txt"}, "Modified file: /tmp/a.txt"},
	} {
		if got := tc.e.String(); got != tc.want {
			t.Errorf("%#v.String() = %q, want %q", tc.e, got, tc.want)
		}
	}
}
