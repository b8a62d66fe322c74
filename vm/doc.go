// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package vm implements the thermite register machine.
//
// The machine has sixteen signed 32-bit general-purpose registers
// (r0-r9, ra-rf), an instruction pointer, a jump table of labels, and a
// running flag. Programs are sequences of Instruction values; labels are
// resolved to program positions before execution starts.
//
// Two execution modes are provided. Run executes a complete program from
// its "main" label until a hlt instruction, failing on the first fault.
// Step evaluates one instruction at a time against persistent state, as
// used by the interactive shell; a fault in one step leaves the machine
// usable for the next.
package vm
