// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

// Package listener contains sinks for change notifications.
package listener

import (
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Console writes each message on its own line to W.
type Console struct {
	W io.Writer
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{W: w}
}

// Update writes message to the console.
func (c *Console) Update(message string) error {
	if _, err := io.WriteString(c.W, message+"\n"); err != nil {
		return errors.Wrap(err, "failed to write to console")
	}
	return nil
}

// Log sends each message to the INFO log.
type Log struct{}

// Update logs message.
func (Log) Update(message string) error {
	glog.Info(message)
	return nil
}
