package concurrency

import (
	"runtime"
	"sync/atomic"
)

// Flag is a spin-synchronized permission bit shared between one active
// writer and one active reader. It gates access to a single resource by
// alternating between raised (true) and lowered (false), with every
// transition performed by a compare-and-swap so two threads can never
// hold the same phase at once.
//
// The zero value is a lowered flag. Flag is usable as a slice element;
// all methods take a pointer receiver.
type Flag struct {
	state atomic.Bool
}

// NewFlag returns a flag initialized to the given state.
func NewFlag(set bool) *Flag {
	f := &Flag{}
	f.state.Store(set)
	return f
}

// Raise spins until the flag is lowered, then raises it. There is no
// timeout: if no cooperating caller ever lowers the flag, Raise never
// returns.
func (f *Flag) Raise() {
	for !f.state.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// Lower spins until the flag is raised, then lowers it. Mirror of Raise.
func (f *Flag) Lower() {
	for !f.state.CompareAndSwap(true, false) {
		runtime.Gosched()
	}
}

// TryLower attempts a single raised->lowered transition and reports
// whether this call obtained the flag. A false result means the flag was
// not raised at the instant of the attempt; nothing was consumed.
func (f *Flag) TryLower() bool {
	return f.state.CompareAndSwap(true, false)
}

// WaitLower spins until the flag is raised and consumes it.
func (f *Flag) WaitLower() {
	for !f.state.CompareAndSwap(true, false) {
		runtime.Gosched()
	}
}

// IsSet reports the current state without modifying it.
func (f *Flag) IsSet() bool {
	return f.state.Load()
}
