// Copyright 2015 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

//go:build !windows
// +build !windows

package watcher

import (
	"context"
	"os"
	"testing"

	"github.com/google/dirwatch/internal/testutil"
)

func TestNewUnreadableDirectory(t *testing.T) {
	testutil.SkipIfRoot(t)
	workdir := testutil.TestTempDir(t)
	testutil.FatalIfErr(t, os.Chmod(workdir, 0))

	w, err := New(workdir)
	if w != nil {
		t.Errorf("New returned a watcher for an unreadable directory")
	}
	testutil.ExpectErrorIs(t, err, ErrDirectoryNotFound)
}

func TestCheckUnreadableDirectory(t *testing.T) {
	testutil.SkipIfRoot(t)
	workdir := testutil.TestTempDir(t)
	w, _ := newTestWatcher(t, workdir)
	testutil.FatalIfErr(t, os.Chmod(workdir, 0))

	err := w.CheckForChanges(context.Background())
	testutil.ExpectErrorIs(t, err, ErrDirectoryUnavailable)
}
