// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// refAlu computes an ALU result through 64-bit arithmetic.
func refAlu(op Op, a, b int32) (out int32, ok bool) {
	ok = true
	switch op {
	case OP_ADD:
		out = int32(int64(a) + int64(b))
	case OP_SUB:
		out = int32(int64(a) - int64(b))
	case OP_MUL:
		out = int32(int64(a) * int64(b))
	case OP_DIV:
		if b == 0 {
			ok = false
			return
		}
		out = int32(int64(a) / int64(b))
	case OP_MAX:
		out = a
		if b > a {
			out = b
		}
	case OP_MIN:
		out = a
		if b < a {
			out = b
		}
	case OP_AND:
		out = int32(uint32(a) & uint32(b))
	case OP_OR:
		out = int32(uint32(a) | uint32(b))
	case OP_XOR:
		out = int32(uint32(a) ^ uint32(b))
	case OP_SHL:
		out = int32(uint32(a) << (uint32(b) % 32))
	case OP_SHR:
		out = int32(int64(a) >> (uint32(b) % 32))
	}
	return
}

func FuzzExecute(f *testing.F) {
	for op := OP_ADD; op <= OP_SHR; op++ {
		f.Add(int(op), int32(0), int32(0))
		f.Add(int(op), int32(-1), int32(1))
		f.Add(int(op), int32(-2147483648), int32(-1))
		f.Add(int(op), int32(2147483647), int32(33))
	}

	f.Fuzz(func(t *testing.T, opcode int, a int32, b int32) {
		assert := assert.New(t)

		op := OP_ADD + Op(uint(opcode)%uint(OP_SHR-OP_ADD+1))

		m := NewMachine()
		m.Register.Write(REG_R1, a)
		m.Register.Write(REG_R2, b)
		m.Register.Write(REG_R3, 0x5a5a)

		expect, ok := refAlu(op, a, b)

		err := m.Execute(MakeAlu(op, REG_R1, REG_R2, REG_R3))
		if !ok {
			assert.ErrorIs(err, ErrDivisionByZero)
			assert.Equal(int32(0x5a5a), m.Register.Read(REG_R3))
			return
		}

		assert.NoError(err, op.String())
		assert.Equal(expect, m.Register.Read(REG_R3), op.String())
		assert.Equal(a, m.Register.Read(REG_R1))
		assert.Equal(b, m.Register.Read(REG_R2))
	})
}
