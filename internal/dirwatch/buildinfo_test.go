// Copyright 2020 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package dirwatch_test

import (
	"runtime"
	"testing"

	"github.com/google/dirwatch/internal/dirwatch"
	"github.com/google/dirwatch/internal/testutil"
)

func TestBuildInfoString(t *testing.T) {
	suffix := " built with " + runtime.Version() + " for " + runtime.GOOS + "/" + runtime.GOARCH
	for _, tc := range []struct {
		name string
		b    dirwatch.BuildInfo
		want string
	}{
		{"full", dirwatch.BuildInfo{Branch: "main", Version: "v1.0", Revision: "1a2b3c"}, "dirwatch version v1.0 (main@1a2b3c)"},
		{"version only", dirwatch.BuildInfo{Version: "test"}, "dirwatch version test (unknown@unknown)"},
		{"empty", dirwatch.BuildInfo{}, "dirwatch version unknown (unknown@unknown)"},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			testutil.ExpectNoDiff(t, tc.want+suffix, tc.b.String())
		})
	}
}
