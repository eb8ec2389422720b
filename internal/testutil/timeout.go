// Copyright 2020 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package testutil

import (
	"time"

	"github.com/golang/glog"
)

// DoOrTimeout calls do every interval until it returns true or an error, or
// until deadline passes, in which case it returns false.
func DoOrTimeout(do func() (bool, error), deadline, interval time.Duration) (bool, error) {
	timeout := time.After(deadline)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		ok, err := do()
		glog.V(2).Infof("ok, err: %v %v", ok, err)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		select {
		case <-timeout:
			return false, nil
		case <-ticker.C:
		}
	}
}
