// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package listener_test

import (
	"bytes"
	"testing"

	"github.com/google/dirwatch/internal/listener"
	"github.com/google/dirwatch/internal/testutil"
	"github.com/google/dirwatch/internal/watcher"
	"github.com/pkg/errors"
)

var (
	_ watcher.Listener = (*listener.Console)(nil)
	_ watcher.Listener = listener.Log{}
)

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := listener.NewConsole(&buf)
	testutil.FatalIfErr(t, c.Update("Added file: a.txt"))
	testutil.FatalIfErr(t, c.Update("Removed file: b.txt"))
	testutil.ExpectNoDiff(t, "Added file: a.txt\nRemoved file: b.txt\n", buf.String())
}

type brokenWriter struct{}

var errBroken = errors.New("broken pipe")

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errBroken
}

func TestConsoleWriteError(t *testing.T) {
	c := listener.NewConsole(brokenWriter{})
	err := c.Update("Added file: a.txt")
	testutil.ExpectErrorIs(t, err, errBroken)
}

func TestLog(t *testing.T) {
	testutil.FatalIfErr(t, listener.Log{}.Update("Modified file: a.txt"))
}
