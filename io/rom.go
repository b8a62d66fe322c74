package io

import (
	"strconv"
	"strings"
)

// Rom is a read-only channel replaying a fixed list of values.
// Rewind restarts the replay from the first value.
type Rom struct {
	Data []int32

	index int
}

var _ Channel = (*Rom)(nil)

// Rewind restarts the replay.
func (rc *Rom) Rewind() {
	rc.index = 0
}

// Receive returns the next value of the list.
func (rc *Rom) Receive() (value int32, err error) {
	if rc.index >= len(rc.Data) {
		err = ErrChannelEmpty
		return
	}

	value = rc.Data[rc.index]
	rc.index++

	return
}

// Send is not permitted on a read-only channel.
func (rc *Rom) Send(value int32) error {
	return ErrChannelFull
}

// ParseValues parses a comma separated list of integers, as given for
// ROM contents. Decimal, 0x hex, 0o octal and 0b binary forms are
// accepted; an empty list has no values.
func ParseValues(text string) (values []int32, err error) {
	if len(strings.TrimSpace(text)) == 0 {
		return
	}

	for _, word := range strings.Split(text, ",") {
		word = strings.TrimSpace(word)
		var v64 int64
		v64, err = strconv.ParseInt(word, 0, 32)
		if err != nil {
			err = ErrChannelSyntax(word)
			values = nil
			return
		}
		values = append(values, int32(v64))
	}

	return
}
