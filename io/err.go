package io

import (
	"errors"

	"github.com/ezrec/thermite/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull   = errors.New(f("channel full"))
	ErrChannelEmpty  = errors.New(f("channel empty"))
	ErrChannelClosed = errors.New(f("channel closed"))
)

// ErrChannelSyntax is raised when input text is not an integer.
type ErrChannelSyntax string

func (err ErrChannelSyntax) Error() string {
	return f("'%v' is not an integer", string(err))
}
