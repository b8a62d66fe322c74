package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Tape provides sequential text I/O of integers.
// It wraps an io.Reader for input and an io.Writer for output; input
// values are separated by white space, and each output value is written
// as one decimal line.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	scanner *bufio.Scanner
	scanned io.Reader
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Receive scans the next integer from the input stream.
// Decimal, 0x hex, 0o octal and 0b binary forms are accepted.
func (tc *Tape) Receive() (value int32, err error) {
	if tc.Input == nil {
		err = ErrChannelEmpty
		return
	}

	if tc.scanner == nil || tc.scanned != tc.Input {
		tc.scanner = bufio.NewScanner(tc.Input)
		tc.scanner.Split(bufio.ScanWords)
		tc.scanned = tc.Input
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = ErrChannelEmpty
		}
		return
	}

	word := tc.scanner.Text()
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrChannelSyntax(word)
		return
	}

	value = int32(v64)
	return
}

// Send writes a value to the output stream as a decimal line.
func (tc *Tape) Send(value int32) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)

	return
}
