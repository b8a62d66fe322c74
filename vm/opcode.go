// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"fmt"
)

// Class is the category of an operation.
type Class int

const (
	CLASS_INVALID    = Class(0) // invalid
	CLASS_NILADIC    = Class(1) // niladic
	CLASS_IO         = Class(2) // io
	CLASS_ARITHMETIC = Class(3) // arithmetic
	CLASS_BITWISE    = Class(4) // bitwise
	CLASS_BRANCH     = Class(5) // branch
	CLASS_CONTROL    = Class(6) // control
	CLASS_ASSIGNMENT = Class(7) // assignment
)

var className = [...]string{
	"invalid", "niladic", "io", "arithmetic",
	"bitwise", "branch", "control", "assignment",
}

func (class Class) String() string {
	if class < 0 || int(class) >= len(className) {
		return fmt.Sprintf("Class(%d)", int(class))
	}
	return className[class]
}

// Op is an instruction operation.
type Op int

const (
	OP_NOP = Op(0)  // nop
	OP_HLT = Op(1)  // hlt
	OP_OUT = Op(2)  // out
	OP_IN  = Op(3)  // in
	OP_ADD = Op(4)  // add
	OP_SUB = Op(5)  // sub
	OP_MUL = Op(6)  // mul
	OP_DIV = Op(7)  // div
	OP_MAX = Op(8)  // max
	OP_MIN = Op(9)  // min
	OP_AND = Op(10) // and
	OP_OR  = Op(11) // or
	OP_XOR = Op(12) // xor
	OP_SHL = Op(13) // shl
	OP_SHR = Op(14) // shr
	OP_JMP = Op(15) // jmp
	OP_JZ  = Op(16) // jz
	OP_JNZ = Op(17) // jnz
	OP_LBL = Op(18) // lbl
	OP_STR = Op(19) // str
	OP_CPY = Op(20) // cpy
)

var opInfo = [...]struct {
	name  string
	class Class
}{
	OP_NOP: {"nop", CLASS_NILADIC},
	OP_HLT: {"hlt", CLASS_NILADIC},
	OP_OUT: {"out", CLASS_IO},
	OP_IN:  {"in", CLASS_IO},
	OP_ADD: {"add", CLASS_ARITHMETIC},
	OP_SUB: {"sub", CLASS_ARITHMETIC},
	OP_MUL: {"mul", CLASS_ARITHMETIC},
	OP_DIV: {"div", CLASS_ARITHMETIC},
	OP_MAX: {"max", CLASS_ARITHMETIC},
	OP_MIN: {"min", CLASS_ARITHMETIC},
	OP_AND: {"and", CLASS_BITWISE},
	OP_OR:  {"or", CLASS_BITWISE},
	OP_XOR: {"xor", CLASS_BITWISE},
	OP_SHL: {"shl", CLASS_BITWISE},
	OP_SHR: {"shr", CLASS_BITWISE},
	OP_JMP: {"jmp", CLASS_BRANCH},
	OP_JZ:  {"jz", CLASS_BRANCH},
	OP_JNZ: {"jnz", CLASS_BRANCH},
	OP_LBL: {"lbl", CLASS_CONTROL},
	OP_STR: {"str", CLASS_ASSIGNMENT},
	OP_CPY: {"cpy", CLASS_ASSIGNMENT},
}

func (op Op) known() bool {
	return op >= 0 && int(op) < len(opInfo)
}

func (op Op) String() string {
	if !op.known() {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opInfo[op].name
}

// Class returns the category of the operation.
func (op Op) Class() Class {
	if !op.known() {
		return CLASS_INVALID
	}
	return opInfo[op].class
}

// ParseOp resolves an assembly mnemonic.
// Labels are written as 'name:', so 'lbl' is not a mnemonic.
func ParseOp(mnemonic string) (op Op, ok bool) {
	for n, info := range opInfo {
		if info.name == mnemonic && Op(n) != OP_LBL {
			op = Op(n)
			ok = true
			return
		}
	}

	return
}
