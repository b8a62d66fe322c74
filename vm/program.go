// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"iter"
)

// Opcode is an assembled instruction with its source location.
type Opcode struct {
	LineNo int      // Source line number.
	Words  []string // Source words.
	Instruction
}

// Program is an assembled listing.
type Program struct {
	Opcodes []Opcode
}

// Instructions returns the program's instruction sequence.
func (prog *Program) Instructions() (codes []Instruction) {
	codes = make([]Instruction, 0, len(prog.Opcodes))
	for _, op := range prog.Opcodes {
		codes = append(codes, op.Instruction)
	}

	return
}

// Debug returns the opcode at an instruction position, or nil.
func (prog *Program) Debug(ip int) *Opcode {
	if ip < 0 || ip >= len(prog.Opcodes) {
		return nil
	}

	return &prog.Opcodes[ip]
}

// Codes iterates over the instructions, with their positions.
func (prog *Program) Codes() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, code Instruction) bool) {
		for ip, op := range prog.Opcodes {
			if !yield(ip, op.Instruction) {
				return
			}
		}
	}
}
