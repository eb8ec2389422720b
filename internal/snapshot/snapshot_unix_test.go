// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

//go:build !windows
// +build !windows

package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/dirwatch/internal/snapshot"
	"github.com/google/dirwatch/internal/testutil"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

func TestReadSkipsFifo(t *testing.T) {
	workdir := testutil.TestTempDir(t)
	a := testutil.TestCreateFile(t, filepath.Join(workdir, "a.txt"), t0)
	testutil.FatalIfErr(t, unix.Mkfifo(filepath.Join(workdir, "pipe"), 0o600))

	s, err := snapshot.Read(workdir)
	testutil.FatalIfErr(t, err)
	testutil.ExpectNoDiff(t, []string{a}, s.Paths())
}

func TestReadFollowsSymlinks(t *testing.T) {
	workdir := testutil.TestTempDir(t)
	target := testutil.TestCreateFile(t, filepath.Join(workdir, "target"), t0)
	link := filepath.Join(workdir, "link")
	testutil.FatalIfErr(t, os.Symlink(target, link))
	dirlink := filepath.Join(workdir, "dirlink")
	testutil.FatalIfErr(t, os.Symlink(os.TempDir(), dirlink))
	dangling := filepath.Join(workdir, "dangling")
	testutil.FatalIfErr(t, os.Symlink(filepath.Join(workdir, "nowhere"), dangling))

	defer testutil.ExpectExpvarDeltaWithDeadline(t, "snapshot_vanished_entries_total", 1)()
	s, err := snapshot.Read(workdir)
	testutil.FatalIfErr(t, err)
	testutil.ExpectNoDiff(t, []string{link, target}, s.Paths())
	got, _ := s.ModTime(link)
	if !got.Equal(t0) {
		t.Errorf("ModTime(%q) = %v, want target's %v", link, got, t0)
	}
}

func TestReadPermissionDenied(t *testing.T) {
	testutil.SkipIfRoot(t)
	workdir := testutil.TestTempDir(t)
	testutil.FatalIfErr(t, os.Chmod(workdir, 0))

	_, err := snapshot.Read(workdir)
	if err == nil {
		t.Fatal("expected error reading unreadable directory")
	}
	// Callers decide what an unreadable directory means; Read keeps the cause.
	if errors.Is(err, snapshot.ErrDirectoryNotFound) {
		t.Errorf("permission denied reported as not found: %v", err)
	}
	testutil.ExpectErrorIs(t, err, os.ErrPermission)
}
