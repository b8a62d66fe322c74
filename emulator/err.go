package emulator

import (
	"errors"

	"github.com/ezrec/thermite/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("instruction limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
