// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// promptDirectory asks on w for the directory to watch, and reads one line
// of reply from r.  The reply is used as typed, apart from its line ending.
func promptDirectory(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprintln(w, "Enter the path of the directory to watch:")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errors.Wrap(err, "failed to read directory path")
	}
	// Spaces are legal in file names; only the line ending is dropped.
	path := strings.TrimRight(line, "\r\n")
	if path == "" {
		return "", errors.New("no directory path given")
	}
	return path, nil
}
