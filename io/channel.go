// Package io provides I/O channel implementations for the thermite
// machine. Channels carry signed 32-bit values: a Tape for line-oriented
// text streams, a Temporary in-memory FIFO, and a read-only Rom.
package io

// Channel defines the interface for all I/O channels used by 'in' and
// 'out'.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive reads the next value from the channel.
	Receive() (value int32, err error)
	// Send writes a single value to the channel.
	Send(value int32) error
}
