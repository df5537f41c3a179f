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

// Package monitor provides per-object monitors: a reentrant lock paired with
// a condition queue supporting Wait, Notify and NotifyAll.
//
// Go has no goroutine identity, so ownership travels in a context. Enter
// returns a context that proves the hold; Wait, Notify, NotifyAll and Exit
// verify that proof and fail with ErrIllegalMonitorState without it.
//
//	ctx, err := m.Enter(ctx)
//	if err != nil {
//	    return err
//	}
//	defer m.Exit(ctx)
//	for !ready {
//	    if err := m.Wait(ctx, 50*time.Millisecond); err != nil {
//	        return err
//	    }
//	}
//
// A hold context handed to another goroutine hands the hold over with it;
// only one goroutine should use it at a time.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrIllegalMonitorState is returned when Wait, Notify, NotifyAll or Exit
	// is called with a context that does not hold the monitor.
	ErrIllegalMonitorState = errors.New("objrt(monitor): monitor not held by caller")
	// ErrClosed is returned by Enter and Wait once the monitor is closed.
	ErrClosed = errors.New("objrt(monitor): monitor closed")
	// ErrNegativeTimeout is returned by Wait for a negative timeout.
	ErrNegativeTimeout = errors.New("objrt(monitor): negative timeout")
)

// Monitor is a reentrant mutual-exclusion lock with a FIFO condition queue.
// The zero value is ready to use. A Monitor must not be copied after first use.
type Monitor struct {
	once sync.Once
	// lock is a one-slot semaphore; a buffered value means "held".
	lock chan struct{}

	// mu guards the fields below.
	mu      sync.Mutex
	owner   *hold
	depth   int
	waiters []*waiter
	closed  bool
}

// hold is the ownership token of one acquisition. It has a field so that
// distinct holds never share an address.
type hold struct{ _ int }

// holdKey keys a monitor's hold in a context.
type holdKey struct{ m *Monitor }

type waiter struct {
	wake chan struct{}
	// closed is set under Monitor.mu when Close woke the waiter.
	closed bool
}

func (m *Monitor) init() {
	m.once.Do(func() { m.lock = make(chan struct{}, 1) })
}

func (m *Monitor) holdOf(ctx context.Context) *hold {
	h, _ := ctx.Value(holdKey{m}).(*hold)
	return h
}

// ownedBy reports whether ctx carries the current hold. Callers hold m.mu.
func (m *Monitor) ownedBy(ctx context.Context) bool {
	h := m.holdOf(ctx)
	return h != nil && m.owner == h
}

// Enter acquires the monitor, blocking until it is free or ctx is done.
// If ctx already holds the monitor the hold is re-entered and ctx is
// returned unchanged. The returned context proves ownership.
func (m *Monitor) Enter(ctx context.Context) (context.Context, error) {
	m.init()

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ctx, ErrClosed
	}
	if m.ownedBy(ctx) {
		m.depth++
		m.mu.Unlock()
		return ctx, nil
	}
	m.mu.Unlock()

	select {
	case m.lock <- struct{}{}:
	case <-ctx.Done():
		return ctx, errors.Wrap(ctx.Err(), "objrt(monitor): enter")
	}

	h := &hold{}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		<-m.lock
		return ctx, ErrClosed
	}
	m.owner, m.depth = h, 1
	m.mu.Unlock()
	return context.WithValue(ctx, holdKey{m}, h), nil
}

// Exit releases one level of the hold carried by ctx.
func (m *Monitor) Exit(ctx context.Context) error {
	m.mu.Lock()
	if !m.ownedBy(ctx) {
		m.mu.Unlock()
		return errors.Wrap(ErrIllegalMonitorState, "exit")
	}
	m.depth--
	if m.depth > 0 {
		m.mu.Unlock()
		return nil
	}
	m.owner = nil
	m.mu.Unlock()
	<-m.lock
	return nil
}

// Holds reports whether ctx currently holds the monitor.
func (m *Monitor) Holds(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ownedBy(ctx)
}

// Waiters returns the number of goroutines blocked in Wait.
func (m *Monitor) Waiters() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.waiters)
}

// Wait releases the monitor, blocks, and reacquires it before returning.
//
// A timeout of zero waits until notified; a positive timeout also returns
// once it elapses, which is not an error. Callers must re-check their
// condition in a loop: a nil return does not mean the condition holds.
//
// Cancellation of ctx returns a wrapped ctx.Err(), and closing the monitor
// returns ErrClosed; in both cases the hold is restored first, including
// its reentrancy depth.
func (m *Monitor) Wait(ctx context.Context, timeout time.Duration) error {
	if timeout < 0 {
		return errors.Wrapf(ErrNegativeTimeout, "%v", timeout)
	}

	m.mu.Lock()
	if !m.ownedBy(ctx) {
		m.mu.Unlock()
		return errors.Wrap(ErrIllegalMonitorState, "wait")
	}
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	h, depth := m.owner, m.depth
	w := &waiter{wake: make(chan struct{}, 1)}
	m.waiters = append(m.waiters, w)
	m.owner, m.depth = nil, 0
	m.mu.Unlock()
	<-m.lock

	var expired <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expired = t.C
	}

	var cause error
	select {
	case <-w.wake:
	case <-expired:
		m.dequeue(w)
	case <-ctx.Done():
		// A notify that already picked w wins over the cancellation so the
		// signal is not lost.
		if m.dequeue(w) {
			cause = ctx.Err()
		}
	}

	m.lock <- struct{}{}
	m.mu.Lock()
	m.owner, m.depth = h, depth
	closed := w.closed
	m.mu.Unlock()

	if cause != nil {
		return errors.Wrap(cause, "objrt(monitor): wait interrupted")
	}
	if closed {
		return ErrClosed
	}
	return nil
}

// dequeue removes w from the wait queue and reports whether it was still
// queued, i.e. not yet picked by Notify, NotifyAll or Close.
func (m *Monitor) dequeue(w *waiter) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, q := range m.waiters {
		if q == w {
			m.waiters = append(m.waiters[:i], m.waiters[i+1:]...)
			return true
		}
	}
	return false
}

// Notify wakes the longest-waiting goroutine, if any.
func (m *Monitor) Notify(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ownedBy(ctx) {
		return errors.Wrap(ErrIllegalMonitorState, "notify")
	}
	if len(m.waiters) == 0 {
		return nil
	}
	w := m.waiters[0]
	m.waiters = m.waiters[1:]
	w.wake <- struct{}{}
	return nil
}

// NotifyAll wakes every waiting goroutine. Each re-contends for the lock.
func (m *Monitor) NotifyAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ownedBy(ctx) {
		return errors.Wrap(ErrIllegalMonitorState, "notifyAll")
	}
	m.wakeAll(false)
	return nil
}

// wakeAll signals and clears the queue. Callers hold m.mu.
func (m *Monitor) wakeAll(closed bool) {
	for _, w := range m.waiters {
		w.closed = closed
		w.wake <- struct{}{}
	}
	m.waiters = nil
}

// Close marks the monitor closed and wakes every waiter; their Wait calls
// return ErrClosed once they reacquire the lock. A current holder keeps its
// hold and may still Exit. Close is idempotent.
func (m *Monitor) Close() {
	m.init()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.wakeAll(true)
}

// Closed reports whether Close was called.
func (m *Monitor) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Synchronized runs fn while holding the monitor, passing it the hold
// context. The monitor is released even if fn panics.
func (m *Monitor) Synchronized(ctx context.Context, fn func(context.Context) error) (err error) {
	held, err := m.Enter(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if xerr := m.Exit(held); err == nil {
			err = xerr
		}
	}()
	return fn(held)
}

// Await waits until cond reports true, re-checking it after every wakeup.
// It must be called while holding the monitor; cond runs under the hold.
func (m *Monitor) Await(ctx context.Context, cond func() bool) error {
	for !cond() {
		if err := m.Wait(ctx, 0); err != nil {
			return err
		}
	}
	return nil
}
