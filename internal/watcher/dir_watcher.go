// Copyright 2015 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package watcher

import (
	"context"
	"expvar"
	"os"
	"sync"

	"github.com/golang/glog"
	"github.com/google/dirwatch/internal/snapshot"
	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

var (
	checkCount      = expvar.NewInt("checks_total")
	checkErrorCount = expvar.NewInt("check_errors_total")
	eventCount      = expvar.NewMap("events_total")
)

// ReadFunc takes a snapshot of the directory dir.
type ReadFunc func(dir string) (*snapshot.Snapshot, error)

// Option configures a DirWatcher.
type Option interface {
	apply(*DirWatcher) error
}

// Listeners subscribes the listeners to the DirWatcher at construction.
func Listeners(ls ...Listener) Option {
	return listeners(ls)
}

type listeners []Listener

func (opt listeners) apply(w *DirWatcher) error {
	for _, l := range opt {
		w.Subscribe(l)
	}
	return nil
}

// Reader replaces the function used to take snapshots of the directory.
func Reader(read ReadFunc) Option {
	return reader(read)
}

type reader ReadFunc

func (opt reader) apply(w *DirWatcher) error {
	if opt == nil {
		return errors.New("nil snapshot reader")
	}
	w.read = ReadFunc(opt)
	return nil
}

// DirWatcher detects changes to the regular files in one directory by
// comparing successive snapshots of it, and notifies its listeners of each
// change.
type DirWatcher struct {
	dir  string
	read ReadFunc

	checkMu sync.Mutex // serialises CheckForChanges

	previousMu sync.RWMutex // protects `previous'
	previous   *snapshot.Snapshot

	listenersMu sync.RWMutex // protects `listeners'
	listeners   []Listener
}

// New returns a DirWatcher for dir, holding a snapshot of its current
// contents.  If dir does not exist the error matches ErrDirectoryNotFound.
func New(dir string, opts ...Option) (*DirWatcher, error) {
	w := &DirWatcher{
		dir:  dir,
		read: snapshot.Read,
	}
	for _, opt := range opts {
		if err := opt.apply(w); err != nil {
			return nil, err
		}
	}
	s, err := w.read(dir)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			// An unreadable directory can't be watched any more than a missing one.
			return nil, &checkError{ErrDirectoryNotFound, errors.Wrap(err, "failed to take initial snapshot")}
		}
		return nil, errors.Wrap(err, "failed to take initial snapshot")
	}
	w.previous = s
	glog.Infof("Watching %q, %d files", dir, s.Len())
	return w, nil
}

// Dir returns the directory being watched.
func (w *DirWatcher) Dir() string {
	return w.dir
}

// Snapshot returns the snapshot the next check will be compared against.
func (w *DirWatcher) Snapshot() *snapshot.Snapshot {
	w.previousMu.RLock()
	defer w.previousMu.RUnlock()
	return w.previous
}

// Subscribe adds l to the listeners notified of changes.  Subscribing a
// listener that is already subscribed has no effect.
func (w *DirWatcher) Subscribe(l Listener) {
	w.listenersMu.Lock()
	defer w.listenersMu.Unlock()
	for _, existing := range w.listeners {
		if sameListener(existing, l) {
			glog.V(1).Infof("Listener %T already subscribed", l)
			return
		}
	}
	w.listeners = append(w.listeners, l)
}

// Unsubscribe removes l from the listeners.  It is not an error to remove a
// listener that isn't subscribed.
func (w *DirWatcher) Unsubscribe(l Listener) {
	w.listenersMu.Lock()
	defer w.listenersMu.Unlock()
	for i, existing := range w.listeners {
		if sameListener(existing, l) {
			// Copy rather than shift in place; a check in progress may hold the old slice.
			ls := make([]Listener, 0, len(w.listeners)-1)
			ls = append(ls, w.listeners[:i]...)
			w.listeners = append(ls, w.listeners[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of subscribed listeners.
func (w *DirWatcher) Listeners() int {
	w.listenersMu.RLock()
	defer w.listenersMu.RUnlock()
	return len(w.listeners)
}

// CheckForChanges takes a new snapshot of the directory, notifies every
// listener of each difference from the previous snapshot, and then makes the
// new snapshot the previous one.
//
// If the directory can't be read the error matches ErrDirectoryUnavailable.
// If a listener fails, no further notifications are sent and the error
// matches ErrListenerFailed.  In both cases the previous snapshot is kept, so
// the next check compares against the last complete one.
//
// Checks are serialised; the context is used only for tracing, and a check
// is never interrupted once started.
func (w *DirWatcher) CheckForChanges(ctx context.Context) error {
	_, span := trace.StartSpan(ctx, "watcher.CheckForChanges")
	defer span.End()
	span.AddAttributes(trace.StringAttribute("dir", w.dir))

	w.checkMu.Lock()
	defer w.checkMu.Unlock()
	checkCount.Add(1)

	current, err := w.read(w.dir)
	if err != nil {
		checkErrorCount.Add(1)
		span.SetStatus(trace.Status{Code: trace.StatusCodeUnavailable, Message: err.Error()})
		return &checkError{ErrDirectoryUnavailable, err}
	}
	// Only this method replaces `previous', and we hold checkMu.
	events := Diff(w.previous, current)
	span.AddAttributes(trace.Int64Attribute("events", int64(len(events))))

	w.listenersMu.RLock()
	ls := w.listeners
	w.listenersMu.RUnlock()

	for _, e := range events {
		glog.V(2).Infof("sending %s", e)
		eventCount.Add(e.Op.String(), 1)
		msg := e.String()
		for _, l := range ls {
			if err := l.Update(msg); err != nil {
				checkErrorCount.Add(1)
				span.SetStatus(trace.Status{Code: trace.StatusCodeAborted, Message: err.Error()})
				return &checkError{ErrListenerFailed, errors.Wrapf(err, "%T.Update(%q)", l, msg)}
			}
		}
	}

	w.previousMu.Lock()
	w.previous = current
	w.previousMu.Unlock()
	return nil
}
