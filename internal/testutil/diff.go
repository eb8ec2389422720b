// Copyright 2018 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Diff returns a human readable report of the differences between a and b,
// or the empty string if they are equal.
func Diff(a, b interface{}, opts ...cmp.Option) string {
	return cmp.Diff(a, b, opts...)
}

// ExpectNoDiff reports a test error if want and got differ.
func ExpectNoDiff(tb testing.TB, want, got interface{}, opts ...cmp.Option) bool {
	tb.Helper()
	if diff := Diff(want, got, opts...); diff != "" {
		tb.Errorf("Unexpected diff, -want +got:\n%s", diff)
		return false
	}
	return true
}

// EquateEmpty treats nil and empty slices and maps as equal.
func EquateEmpty() cmp.Option {
	return cmpopts.EquateEmpty()
}

// SortSlices sorts slices with less before comparing them.
func SortSlices(less interface{}) cmp.Option {
	return cmpopts.SortSlices(less)
}
