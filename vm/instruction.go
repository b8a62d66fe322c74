// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"fmt"
)

// Instruction is a single decoded machine instruction.
//
// Operand usage by class:
//
//	io:         Dst
//	arithmetic: Src, Arg, Dst
//	bitwise:    Src, Arg, Dst
//	branch:     Label, and Src for jz/jnz
//	control:    Label
//	assignment: Value (str) or Src (cpy), Dst
type Instruction struct {
	Op    Op       // Operation.
	Src   Register // Source register.
	Arg   Register // Operand register.
	Dst   Register // Destination register.
	Value int32    // Literal for str.
	Label string   // Label name for branches and labels.
}

// MakeNop creates a no-operation instruction.
func MakeNop() Instruction {
	return Instruction{Op: OP_NOP}
}

// MakeHalt creates the terminator instruction.
func MakeHalt() Instruction {
	return Instruction{Op: OP_HLT}
}

// MakeIo creates an 'out' or 'in' instruction on a register.
func MakeIo(op Op, reg Register) Instruction {
	return Instruction{Op: op, Dst: reg}
}

// MakeAlu creates an arithmetic or bitwise instruction:
// dst := src <op> arg
func MakeAlu(op Op, src, arg, dst Register) Instruction {
	return Instruction{Op: op, Src: src, Arg: arg, Dst: dst}
}

// MakeJump creates an unconditional branch to a label.
func MakeJump(label string) Instruction {
	return Instruction{Op: OP_JMP, Label: label}
}

// MakeBranch creates a 'jz' or 'jnz' branch that tests a register.
func MakeBranch(op Op, reg Register, label string) Instruction {
	return Instruction{Op: op, Src: reg, Label: label}
}

// MakeLabel creates a label definition.
func MakeLabel(name string) Instruction {
	return Instruction{Op: OP_LBL, Label: name}
}

// MakeStore creates a load-immediate of value into dst.
func MakeStore(value int32, dst Register) Instruction {
	return Instruction{Op: OP_STR, Value: value, Dst: dst}
}

// MakeCopy creates a register to register copy.
func MakeCopy(src, dst Register) Instruction {
	return Instruction{Op: OP_CPY, Src: src, Dst: dst}
}

// Valid returns true if the instruction carries the operands its
// operation requires.
func (code Instruction) Valid() bool {
	switch code.Op.Class() {
	case CLASS_NILADIC:
		return true
	case CLASS_IO:
		return code.Dst.Valid()
	case CLASS_ARITHMETIC, CLASS_BITWISE:
		return code.Src.Valid() && code.Arg.Valid() && code.Dst.Valid()
	case CLASS_BRANCH:
		if len(code.Label) == 0 {
			return false
		}
		return code.Op == OP_JMP || code.Src.Valid()
	case CLASS_CONTROL:
		return len(code.Label) != 0
	case CLASS_ASSIGNMENT:
		if !code.Dst.Valid() {
			return false
		}
		return code.Op == OP_STR || code.Src.Valid()
	}

	return false
}

// String returns the assembly language form of the instruction.
func (code Instruction) String() (out string) {
	switch code.Op.Class() {
	case CLASS_NILADIC:
		out = code.Op.String()
	case CLASS_IO:
		out = fmt.Sprintf("%v %v", code.Op, code.Dst)
	case CLASS_ARITHMETIC, CLASS_BITWISE:
		out = fmt.Sprintf("%v %v %v %v", code.Op, code.Src, code.Arg, code.Dst)
	case CLASS_BRANCH:
		if code.Op == OP_JMP {
			out = fmt.Sprintf("%v %v", code.Op, code.Label)
		} else {
			out = fmt.Sprintf("%v %v %v", code.Op, code.Src, code.Label)
		}
	case CLASS_CONTROL:
		out = code.Label + ":"
	case CLASS_ASSIGNMENT:
		if code.Op == OP_STR {
			out = fmt.Sprintf("%v %d %v", code.Op, code.Value, code.Dst)
		} else {
			out = fmt.Sprintf("%v %v %v", code.Op, code.Src, code.Dst)
		}
	default:
		out = code.Op.String()
	}

	return
}
