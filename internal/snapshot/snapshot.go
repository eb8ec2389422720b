// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

// Package snapshot records the modification times of the regular files in a
// single directory at a point in time.
package snapshot

import (
	"expvar"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var (
	// readCount counts successful directory reads.
	readCount = expvar.NewInt("snapshot_reads_total")
	// vanishedCount counts entries that were listed but gone by the time they were stat'd.
	vanishedCount = expvar.NewInt("snapshot_vanished_entries_total")
)

// ErrDirectoryNotFound is returned when the path to read does not name an existing directory.
var ErrDirectoryNotFound = errors.New("directory not found")

// Snapshot is an immutable mapping of file path to last modification time.
type Snapshot struct {
	modTimes map[string]time.Time
}

// New returns a Snapshot containing a copy of modTimes.
func New(modTimes map[string]time.Time) *Snapshot {
	s := &Snapshot{modTimes: make(map[string]time.Time, len(modTimes))}
	for p, t := range modTimes {
		s.modTimes[p] = t
	}
	return s
}

// Len returns the number of files in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.modTimes)
}

// ModTime returns the recorded modification time of path, and whether path is
// present in the snapshot.
func (s *Snapshot) ModTime(path string) (time.Time, bool) {
	t, ok := s.modTimes[path]
	return t, ok
}

// Has reports whether path is present in the snapshot.
func (s *Snapshot) Has(path string) bool {
	_, ok := s.modTimes[path]
	return ok
}

// Paths returns the paths in the snapshot in ascending order.
func (s *Snapshot) Paths() []string {
	paths := make([]string, 0, len(s.modTimes))
	for p := range s.modTimes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Equal reports whether s and o hold the same paths with the same modification times.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s.Len() != o.Len() {
		return false
	}
	for p, t := range s.modTimes {
		ot, ok := o.modTimes[p]
		if !ok || !t.Equal(ot) {
			return false
		}
	}
	return true
}

// Read lists the immediate entries of dir and returns a Snapshot of the
// regular files found there.  Subdirectories and other non-regular entries
// are skipped.  Symbolic links are followed.  Entries that disappear while
// the directory is being read are left out of the snapshot.
func Read(dir string) (*Snapshot, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrDirectoryNotFound, "%q", dir)
		}
		return nil, errors.Wrapf(err, "failed to stat %q", dir)
	}
	if !fi.IsDir() {
		return nil, errors.Wrapf(ErrDirectoryNotFound, "%q is not a directory", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrDirectoryNotFound, "%q", dir)
		}
		return nil, errors.Wrapf(err, "failed to read directory %q", dir)
	}
	s := &Snapshot{modTimes: make(map[string]time.Time, len(entries))}
	for _, entry := range entries {
		pathname := filepath.Join(dir, entry.Name())
		fi, err := os.Stat(pathname)
		if err != nil {
			if os.IsNotExist(err) {
				glog.V(2).Infof("%s vanished during read", pathname)
				vanishedCount.Add(1)
			} else {
				glog.V(1).Info(err)
			}
			continue
		}
		if !fi.Mode().IsRegular() {
			glog.V(2).Infof("Skipping non-regular file %s", pathname)
			continue
		}
		s.modTimes[pathname] = fi.ModTime()
	}
	readCount.Add(1)
	return s, nil
}
