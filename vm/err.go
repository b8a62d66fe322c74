// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"errors"
	"fmt"

	"github.com/ezrec/thermite/translate"
)

var f = translate.From

var (
	// Execution faults
	ErrDivisionByZero       = errors.New(f("division by zero"))
	ErrUnsupportedOperation = errors.New(f("unsupported operation"))
	ErrInstructionInvalid   = errors.New(f("instruction invalid"))
	ErrChannelInvalid       = errors.New(f("channel invalid"))
	ErrIpRange              = errors.New(f("ip out of range"))

	// Program setup faults
	ErrMissingEntryLabel = errors.New(f("missing entry label '%v'", ENTRY_LABEL))
	ErrMissingTerminator = errors.New(f("missing hlt instruction"))
)

// ErrLabelUndefined is raised by a branch to an unknown label.
type ErrLabelUndefined string

func (el ErrLabelUndefined) Error() string {
	return f("label %v undefined", string(el))
}

func (el ErrLabelUndefined) Is(err error) (ok bool) {
	_, ok = err.(ErrLabelUndefined)
	return
}

// ErrExecute reports a fault raised by an instruction, with a snapshot
// of the machine state at the time of the fault.
type ErrExecute struct {
	Ip          int
	Instruction Instruction
	Registers   [REGISTER_COUNT]int32
	Labels      JumpTable
	Err         error
}

func (err *ErrExecute) Error() string {
	return f("ip %d '%v' %v", err.Ip, err.Instruction, err.Err)
}

func (err *ErrExecute) Unwrap() error {
	return err.Err
}

// Dump returns the register and label snapshot as text.
func (err *ErrExecute) Dump() (text string) {
	for reg := range Registers() {
		text += fmt.Sprintf("% 5s: %d\n", reg, err.Registers[reg])
	}
	text += err.Labels.String()

	return
}
