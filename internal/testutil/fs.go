// Copyright 2019 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package testutil

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestTempDir creates a temporary directory for use during tests, returning
// the pathname.  The directory is removed when the test completes.
func TestTempDir(tb testing.TB) string {
	tb.Helper()
	name, err := ioutil.TempDir("", "dirwatch-test")
	if err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(func() {
		// Tests may revoke permissions on the directory.
		_ = os.Chmod(name, 0o700)
		if err := os.RemoveAll(name); err != nil {
			tb.Fatalf("os.RemoveAll(%s): %s", name, err)
		}
	})
	return name
}

// TestCreateFile creates an empty file called name with the given
// modification time, returning the cleaned pathname.
func TestCreateFile(tb testing.TB, name string, mtime time.Time) string {
	tb.Helper()
	name = filepath.Clean(name)
	f, err := os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		tb.Fatal(err)
	}
	FatalIfErr(tb, f.Close())
	TestSetModTime(tb, name, mtime)
	return name
}

// TestSetModTime sets the access and modification times of name to mtime.
func TestSetModTime(tb testing.TB, name string, mtime time.Time) {
	tb.Helper()
	if err := os.Chtimes(name, mtime, mtime); err != nil {
		tb.Fatal(err)
	}
}

// TestRemove removes name, failing the test on error.
func TestRemove(tb testing.TB, name string) {
	tb.Helper()
	if err := os.RemoveAll(name); err != nil {
		tb.Fatal(err)
	}
}
