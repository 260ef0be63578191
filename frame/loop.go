// Package frame schedules per-refresh callbacks. A host owns one Loop and
// pumps it once for every display refresh; engines request their next tick
// through the Scheduler interface.
package frame

import "github.com/kamstrup/intmap"

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

// Scheduler requests a callback for the next refresh and cancels it.
// Cancelling an unknown or already-run handle does nothing.
type Scheduler interface {
	Request(fn func()) Handle
	Cancel(h Handle)
}

// Loop is a single-threaded Scheduler. It is not safe for concurrent use.
type Loop struct {
	last    Handle
	pending *intmap.Map[Handle, func()]
	queue   []Handle
	pumps   uint64
}

var _ Scheduler = (*Loop)(nil)

func NewLoop() *Loop {
	return &Loop{
		pending: intmap.New[Handle, func()](8),
	}
}

// Request queues fn for the next Pump.
func (l *Loop) Request(fn func()) Handle {
	l.last++
	l.pending.Put(l.last, fn)
	l.queue = append(l.queue, l.last)
	return l.last
}

// Cancel drops a queued callback.
func (l *Loop) Cancel(h Handle) {
	l.pending.Del(h)
}

// Pending returns the number of callbacks waiting for the next Pump.
func (l *Loop) Pending() int {
	return l.pending.Len()
}

// Pumps returns how many times Pump has run.
func (l *Loop) Pumps() uint64 {
	return l.pumps
}

// Pump runs the callbacks that were queued when it was called, in request
// order. Callbacks requested while pumping wait for the next Pump, and a
// callback cancelled while pumping does not run.
func (l *Loop) Pump() int {
	l.pumps++
	batch := l.queue
	l.queue = nil

	ran := 0
	for _, h := range batch {
		fn, ok := l.pending.Get(h)
		if !ok {
			continue
		}
		l.pending.Del(h)
		fn()
		ran++
	}
	return ran
}
