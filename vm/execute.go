// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"log"
)

// Execute applies a single instruction to the machine state.
//
// Branches overwrite the instruction pointer with the label position;
// advancing past the instruction is left to the caller. An instruction
// either completes or faults without changing any register.
func (m *Machine) Execute(code Instruction) (err error) {
	if !code.Valid() {
		if code.Op.Class() == CLASS_INVALID {
			err = ErrUnsupportedOperation
		} else {
			err = ErrInstructionInvalid
		}
		return
	}

	if m.Verbose {
		log.Printf("%03d: %v", m.Ip, code)
	}

	rf := &m.Register

	switch code.Op {
	case OP_NOP, OP_LBL:
		// no-op
	case OP_HLT:
		m.Running = false
	case OP_OUT:
		if m.Output == nil {
			err = ErrChannelInvalid
			return
		}
		err = m.Output.Send(rf.Read(code.Dst))
		if err != nil {
			return
		}
	case OP_IN:
		if m.Input == nil {
			err = ErrChannelInvalid
			return
		}
		var value int32
		value, err = m.Input.Receive()
		if err != nil {
			return
		}
		rf.Write(code.Dst, value)
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MAX, OP_MIN,
		OP_AND, OP_OR, OP_XOR, OP_SHL, OP_SHR:
		var value int32
		value, err = doAlu(code.Op, rf.Read(code.Src), rf.Read(code.Arg))
		if err != nil {
			return
		}
		rf.Write(code.Dst, value)
	case OP_JMP:
		err = m.jump(code.Label)
		if err != nil {
			return
		}
	case OP_JZ:
		if rf.Read(code.Src) == 0 {
			err = m.jump(code.Label)
			if err != nil {
				return
			}
		}
	case OP_JNZ:
		if rf.Read(code.Src) != 0 {
			err = m.jump(code.Label)
			if err != nil {
				return
			}
		}
	case OP_STR:
		rf.Write(code.Dst, code.Value)
	case OP_CPY:
		rf.Write(code.Dst, rf.Read(code.Src))
	default:
		err = ErrUnsupportedOperation
		return
	}

	m.Ticks++

	return
}

// jump moves the instruction pointer to a label.
func (m *Machine) jump(label string) (err error) {
	ip, err := m.Labels.Lookup(label)
	if err != nil {
		return
	}

	m.Ip = ip

	return
}

// doAlu performs an arithmetic or bitwise operation with two's
// complement wrap-around.
func doAlu(op Op, input int32, value int32) (output int32, err error) {
	switch op {
	case OP_ADD:
		output = input + value
	case OP_SUB:
		output = input - value
	case OP_MUL:
		output = input * value
	case OP_DIV:
		if value == 0 {
			err = ErrDivisionByZero
			return
		}
		// math.MinInt32 / -1 wraps to math.MinInt32.
		output = input / value
	case OP_MAX:
		output = max(input, value)
	case OP_MIN:
		output = min(input, value)
	case OP_AND:
		output = input & value
	case OP_OR:
		output = input | value
	case OP_XOR:
		output = input ^ value
	case OP_SHL:
		output = input << (uint32(value) & 0x1f) // clamp to 31 bits of shift
	case OP_SHR:
		output = input >> (uint32(value) & 0x1f) // arithmetic shift
	default:
		err = ErrUnsupportedOperation
	}

	return
}
