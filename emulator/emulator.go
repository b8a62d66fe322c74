// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs assembled thermite programs in batch mode, with
// I/O channels attached and an optional instruction budget.
package emulator

import (
	"fmt"
	"iter"

	"github.com/ezrec/thermite/internal"
	"github.com/ezrec/thermite/io"
	"github.com/ezrec/thermite/vm"
)

// Emulator state. Machine + program listing + IO channels.
type Emulator struct {
	Verbose     bool        // If set, enables verbose logging.
	*vm.Machine             // Reference to the machine.
	Program     *vm.Program // Reference to the currently running program listing.

	// Limit is the maximum number of instructions a run may execute.
	// Zero runs without limit.
	Limit int

	Tape io.Tape // Tape IO channel.
	Rom  io.Rom  // ROM IO channel, replacing the tape input once loaded.
}

// NewEmulator creates a new emulator, reading and writing the tape.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: vm.NewMachine(),
		Program: &vm.Program{},
	}

	emu.Machine.Input = &emu.Tape
	emu.Machine.Output = &emu.Tape

	return
}

// LoadRom replaces the tape input of 'in' with a fixed list of values.
func (emu *Emulator) LoadRom(values []int32) {
	emu.Rom.Data = values
	emu.Rom.Rewind()
	emu.Machine.Input = &emu.Rom
}

// Defines returns an iterator over all of the defines.
// ROM_SIZE is the count of values loaded into the ROM.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"ROM_SIZE": fmt.Sprintf("%d", len(emu.Rom.Data)),
	}

	return internal.IterSeq2Concat(internal.SortedDefines(defines),
		emu.Machine.Defines(),
	)
}

// Reset the machine and start the program listing.
func (emu *Emulator) Reset() (err error) {
	emu.Machine.Verbose = emu.Verbose

	emu.Machine.Reset()

	err = emu.Machine.Start(emu.Program.Instructions())
	if err != nil {
		err = &ErrRuntime{Err: err}
		return
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Machine.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return emu.Machine.Ip
}

// Code returns the current instruction.
func (emu *Emulator) Code() vm.Instruction {
	op := emu.Program.Debug(emu.Machine.Ip)
	if op == nil {
		return vm.Instruction{}
	}

	return op.Instruction
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Machine.Ip)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Machine.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.Limit > 0 && emu.Machine.Ticks >= emu.Limit {
		err = ErrTickLimit
		return
	}

	done, err = emu.Machine.Tick()

	return
}

// Run ticks the emulator until the program halts or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
