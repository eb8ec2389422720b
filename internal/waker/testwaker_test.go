// Copyright 2020 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package waker_test

import (
	"context"
	"testing"

	"github.com/google/dirwatch/internal/waker"
)

// loop stands in for a polling loop, counting each time it's woken.
func loop(ctx context.Context, w waker.Waker, polls chan<- int) {
	for i := 1; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-w.Wake():
			polls <- i
		}
	}
}

func TestTestWakerOneCyclePerWake(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w, awaken := waker.NewTest(ctx, 1, "test")
	polls := make(chan int, 10)
	go loop(ctx, w, polls)

	for want := 1; want <= 3; want++ {
		awaken(1, 1)
		select {
		case got := <-polls:
			if got != want {
				t.Errorf("poll %d, want %d", got, want)
			}
		default:
			t.Fatalf("awaken returned before poll %d", want)
		}
	}
	select {
	case got := <-polls:
		t.Errorf("unexpected poll %d", got)
	default:
	}
}

func TestTestWakerBlocksUntilWoken(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w, awaken := waker.NewTest(ctx, 1, "test")
	c := w.Wake()
	select {
	case <-c:
		t.Fatal("Wake() channel closed before awaken")
	default:
	}
	awaken(1, 0)
	select {
	case <-c:
	default:
		t.Error("Wake() channel not closed after awaken")
	}
}

func TestTestAlwaysWaker(t *testing.T) {
	w := waker.NewTestAlways()
	for i := 0; i < 3; i++ {
		select {
		case <-w.Wake():
		default:
			t.Fatal("always waker blocked")
		}
	}
}
