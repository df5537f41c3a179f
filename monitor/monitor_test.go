/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package monitor_test

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"

	"dirpx.dev/objrt/monitor"
)

func mustEnter(t *testing.T, m *monitor.Monitor, ctx context.Context) context.Context {
	t.Helper()
	held, err := m.Enter(ctx)
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}
	return held
}

// waitForWaiters polls until n goroutines are parked in Wait.
func waitForWaiters(t *testing.T, m *monitor.Monitor, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for m.Waiters() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Waiters() = %d, want %d", m.Waiters(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestWithoutHold_IllegalMonitorState(t *testing.T) {
	var m monitor.Monitor
	ctx := context.Background()

	if err := m.Wait(ctx, 0); !errors.Is(err, monitor.ErrIllegalMonitorState) {
		t.Fatalf("Wait without hold = %v, want ErrIllegalMonitorState", err)
	}
	if err := m.Notify(ctx); !errors.Is(err, monitor.ErrIllegalMonitorState) {
		t.Fatalf("Notify without hold = %v, want ErrIllegalMonitorState", err)
	}
	if err := m.NotifyAll(ctx); !errors.Is(err, monitor.ErrIllegalMonitorState) {
		t.Fatalf("NotifyAll without hold = %v, want ErrIllegalMonitorState", err)
	}
	if err := m.Exit(ctx); !errors.Is(err, monitor.ErrIllegalMonitorState) {
		t.Fatalf("Exit without hold = %v, want ErrIllegalMonitorState", err)
	}
}

func TestHoldOfAnotherMonitor_IsNotAHold(t *testing.T) {
	var a, b monitor.Monitor
	held := mustEnter(t, &a, context.Background())
	defer a.Exit(held)

	if err := b.Notify(held); !errors.Is(err, monitor.ErrIllegalMonitorState) {
		t.Fatalf("Notify on b with a's hold = %v, want ErrIllegalMonitorState", err)
	}
}

func TestStaleHold_AfterExit(t *testing.T) {
	var m monitor.Monitor
	held := mustEnter(t, &m, context.Background())
	if err := m.Exit(held); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	if m.Holds(held) {
		t.Fatal("Holds after Exit = true")
	}
	if err := m.Notify(held); !errors.Is(err, monitor.ErrIllegalMonitorState) {
		t.Fatalf("Notify with stale hold = %v, want ErrIllegalMonitorState", err)
	}
}

func TestEnter_Reentrant(t *testing.T) {
	var m monitor.Monitor
	held := mustEnter(t, &m, context.Background())
	again := mustEnter(t, &m, held)
	if again != held {
		t.Fatal("reentrant Enter must return the same hold context")
	}
	if err := m.Exit(again); err != nil {
		t.Fatalf("Exit(inner): %v", err)
	}
	if !m.Holds(held) {
		t.Fatal("outer hold lost after inner Exit")
	}
	if err := m.Exit(held); err != nil {
		t.Fatalf("Exit(outer): %v", err)
	}
	if m.Holds(held) {
		t.Fatal("Holds after final Exit = true")
	}
}

func TestEnter_BlocksAndHonorsContext(t *testing.T) {
	var m monitor.Monitor
	held := mustEnter(t, &m, context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := m.Enter(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Enter on held monitor = %v, want DeadlineExceeded", err)
	}
	if err := m.Exit(held); err != nil {
		t.Fatalf("Exit: %v", err)
	}
}

func TestWait_TimeoutResumesHoldingMonitor(t *testing.T) {
	var m monitor.Monitor
	held := mustEnter(t, &m, context.Background())
	held = mustEnter(t, &m, held) // depth 2 must survive the wait

	start := time.Now()
	if err := m.Wait(held, 50*time.Millisecond); err != nil {
		t.Fatalf("Wait(50ms) = %v, want nil on timeout", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("Wait returned after %v, want >= 50ms", elapsed)
	}
	if !m.Holds(held) {
		t.Fatal("monitor not held after timed Wait")
	}
	if m.Waiters() != 0 {
		t.Fatalf("timed-out waiter still queued: %d", m.Waiters())
	}
	for i := 0; i < 2; i++ {
		if err := m.Exit(held); err != nil {
			t.Fatalf("Exit #%d: %v", i+1, err)
		}
	}
}

func TestWait_NegativeTimeout(t *testing.T) {
	var m monitor.Monitor
	held := mustEnter(t, &m, context.Background())
	defer m.Exit(held)
	if err := m.Wait(held, -time.Second); !errors.Is(err, monitor.ErrNegativeTimeout) {
		t.Fatalf("Wait(-1s) = %v, want ErrNegativeTimeout", err)
	}
}

func TestWaitNotify_HandOff(t *testing.T) {
	var m monitor.Monitor
	var ready bool
	var observed atomic.Bool
	done := make(chan error, 1)

	go func() {
		done <- m.Synchronized(context.Background(), func(held context.Context) error {
			if err := m.Await(held, func() bool { return ready }); err != nil {
				return err
			}
			observed.Store(m.Holds(held))
			return nil
		})
	}()

	waitForWaiters(t, &m, 1)
	err := m.Synchronized(context.Background(), func(held context.Context) error {
		ready = true
		return m.Notify(held)
	})
	if err != nil {
		t.Fatalf("notifier: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("waiter: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("waiter never resumed after Notify")
	}
	if !observed.Load() {
		t.Fatal("waiter resumed without holding the monitor")
	}
}

func TestNotify_WakesOneNotifyAll_WakesRest(t *testing.T) {
	var m monitor.Monitor
	const n = 4
	var woke atomic.Int32
	var wg sync.WaitGroup

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = m.Synchronized(context.Background(), func(held context.Context) error {
				err := m.Wait(held, 0)
				woke.Add(1)
				return err
			})
		}()
	}
	waitForWaiters(t, &m, n)

	held := mustEnter(t, &m, context.Background())
	if err := m.Notify(held); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if err := m.Exit(held); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	waitForWaiters(t, &m, n-1)
	deadline := time.Now().Add(5 * time.Second)
	for woke.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	if got := woke.Load(); got != 1 {
		t.Fatalf("after Notify woke = %d, want 1", got)
	}

	held = mustEnter(t, &m, context.Background())
	if err := m.NotifyAll(held); err != nil {
		t.Fatalf("NotifyAll: %v", err)
	}
	if err := m.Exit(held); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	wg.Wait()
	if got := woke.Load(); got != n {
		t.Fatalf("after NotifyAll woke = %d, want %d", got, n)
	}
}

func TestNotify_NoWaitersIsNoop(t *testing.T) {
	var m monitor.Monitor
	err := m.Synchronized(context.Background(), func(held context.Context) error {
		if err := m.Notify(held); err != nil {
			return err
		}
		return m.NotifyAll(held)
	})
	if err != nil {
		t.Fatalf("notify without waiters = %v", err)
	}
}

func TestWait_CancelReacquiresBeforeReturning(t *testing.T) {
	var m monitor.Monitor
	ctx, cancel := context.WithCancel(context.Background())
	held := mustEnter(t, &m, ctx)

	go func() {
		for m.Waiters() == 0 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()
	err := m.Wait(held, 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait after cancel = %v, want context.Canceled", err)
	}
	if !m.Holds(held) {
		t.Fatal("cancelled Wait returned without the hold")
	}
	if err := m.Exit(held); err != nil {
		t.Fatalf("Exit: %v", err)
	}
}

func TestClose_WakesWaitersAndRejectsEnter(t *testing.T) {
	var m monitor.Monitor
	done := make(chan error, 1)
	go func() {
		done <- m.Synchronized(context.Background(), func(held context.Context) error {
			return m.Wait(held, 0)
		})
	}()
	waitForWaiters(t, &m, 1)

	m.Close()
	m.Close() // idempotent

	select {
	case err := <-done:
		if !errors.Is(err, monitor.ErrClosed) {
			t.Fatalf("Wait on closed monitor = %v, want ErrClosed", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Close left a waiter blocked")
	}
	if _, err := m.Enter(context.Background()); !errors.Is(err, monitor.ErrClosed) {
		t.Fatalf("Enter after Close = %v, want ErrClosed", err)
	}
	if !m.Closed() {
		t.Fatal("Closed() = false after Close")
	}
}

func TestSynchronized_MutualExclusion(t *testing.T) {
	var m monitor.Monitor
	counter := 0
	workers := runtime.GOMAXPROCS(0) * 4
	const iterations = 200

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = m.Synchronized(context.Background(), func(context.Context) error {
					counter++
					return nil
				})
			}
		}()
	}
	wg.Wait()

	if counter != workers*iterations {
		t.Fatalf("counter = %d, want %d", counter, workers*iterations)
	}
}

func TestSynchronized_ReleasesOnPanic(t *testing.T) {
	var m monitor.Monitor
	func() {
		defer func() { _ = recover() }()
		_ = m.Synchronized(context.Background(), func(context.Context) error {
			panic("boom")
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	held, err := m.Enter(ctx)
	if err != nil {
		t.Fatalf("monitor still held after panic: %v", err)
	}
	_ = m.Exit(held)
}
