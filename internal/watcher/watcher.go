// Copyright 2015 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

// Package watcher provides a way of polling a directory for changes to the
// files in it and notifying listeners when they occur.
package watcher

import (
	"fmt"
	"reflect"

	"github.com/google/dirwatch/internal/snapshot"
	"github.com/pkg/errors"
)

type OpType int

const (
	_ OpType = iota
	Added
	Removed
	Modified
)

func (op OpType) String() string {
	switch op {
	case Added:
		return "Added"
	case Removed:
		return "Removed"
	case Modified:
		return "Modified"
	}
	return fmt.Sprintf("OpType(%d)", int(op))
}

// Event describes one change to a file found between two snapshots.
type Event struct {
	Op       OpType
	Pathname string
}

// String returns the message sent to listeners for this event.
func (e Event) String() string {
	return fmt.Sprintf("%s file: %s", e.Op, e.Pathname)
}

// Listener describes an interface for receiving change notifications.
// Listeners are registered and removed by identity: == for comparable types,
// the underlying pointer for funcs, maps and slices.
type Listener interface {
	// Update is called once per change.  A non-nil error aborts the check in
	// progress.
	Update(message string) error
}

// ListenerFunc adapts an ordinary function to the Listener interface.
type ListenerFunc func(message string) error

// Update calls f(message).
func (f ListenerFunc) Update(message string) error {
	return f(message)
}

// sameListener reports whether a and b are the same listener.  Values of
// comparable types are compared with ==; funcs, maps and slices by the
// pointer they hold.  Any other uncomparable values are never the same.
func sameListener(a, b Listener) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil || ta.Comparable() {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ta.Kind() {
	case reflect.Func, reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	return false
}

var (
	// ErrDirectoryNotFound is returned by New when the directory does not exist.
	ErrDirectoryNotFound = snapshot.ErrDirectoryNotFound
	// ErrDirectoryUnavailable is returned by CheckForChanges when the directory can't be read.
	ErrDirectoryUnavailable = errors.New("directory unavailable")
	// ErrListenerFailed is returned by CheckForChanges when a listener's Update fails.
	ErrListenerFailed = errors.New("listener failed")
)

// checkError ties a failed check to both its kind and its cause, so callers
// can match either with errors.Is.
type checkError struct {
	kind error
	err  error
}

func (e *checkError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.err)
}

func (e *checkError) Is(target error) bool {
	return target == e.kind
}

func (e *checkError) Unwrap() error {
	return e.err
}

// Cause satisfies the github.com/pkg/errors causer interface.
func (e *checkError) Cause() error {
	return e.err
}

// Diff compares two snapshots and returns the events that turn prev into
// curr.  Added events come first, then Removed, then Modified; each group is
// sorted by pathname.  A file is Modified when its modification time differs
// at all between the snapshots.
func Diff(prev, curr *snapshot.Snapshot) []Event {
	var added, modified, removed []Event
	for _, p := range curr.Paths() {
		prevTime, ok := prev.ModTime(p)
		if !ok {
			added = append(added, Event{Added, p})
			continue
		}
		if currTime, _ := curr.ModTime(p); !currTime.Equal(prevTime) {
			modified = append(modified, Event{Modified, p})
		}
	}
	for _, p := range prev.Paths() {
		if !curr.Has(p) {
			removed = append(removed, Event{Removed, p})
		}
	}
	events := make([]Event, 0, len(added)+len(removed)+len(modified))
	events = append(events, added...)
	events = append(events, removed...)
	return append(events, modified...)
}
