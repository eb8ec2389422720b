// Copyright 2019 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package testutil

import (
	"os/user"
	"testing"
)

// SkipIfRoot skips the test when running as the superuser, who can't be
// denied permission to read a directory.
func SkipIfRoot(tb testing.TB) {
	tb.Helper()
	u, err := user.Current()
	if err != nil {
		tb.Skipf("Couldn't determine current user id: %s", err)
	}
	if u.Uid == "0" {
		tb.Skip("Skipping test when run as root")
	}
}
