// Copyright 2020 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package dirwatch

import (
	"fmt"
	"runtime"
)

// BuildInfo records where in the git history a dirwatch binary came from, as
// supplied by the linker.
type BuildInfo struct {
	Branch   string
	Version  string
	Revision string
}

// orUnknown stands in for build fields the linker didn't set.
func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// String formats the build as, for example,
// "dirwatch version v1.0 (main@1a2b3c) built with go1.16 for linux/amd64".
func (b BuildInfo) String() string {
	return fmt.Sprintf("dirwatch version %s (%s@%s) built with %s for %s/%s",
		orUnknown(b.Version),
		orUnknown(b.Branch), orUnknown(b.Revision),
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
