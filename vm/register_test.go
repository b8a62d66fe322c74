// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFile_Zero(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	for reg := range Registers() {
		assert.Equal(int32(0), rf.Read(reg), reg.String())
	}
}

func TestRegisterFile_Write(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	rf.Write(REG_RA, -12345)
	rf.Write(REG_R0, 7)

	assert.Equal(int32(-12345), rf.Read(REG_RA))
	assert.Equal(int32(7), rf.Read(REG_R0))
	assert.Equal(int32(0), rf.Read(REG_RB))

	values := rf.Values()
	assert.Equal(int32(-12345), values[REG_RA])

	rf.Reset()
	assert.Equal(int32(0), rf.Read(REG_RA))
	assert.Equal(int32(-12345), values[REG_RA])
}

func TestRegister_Names(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name string
		reg  Register
	}{
		{"r0", REG_R0},
		{"r9", REG_R9},
		{"ra", REG_RA},
		{"RB", REG_RB},
		{"rf", REG_RF},
	}

	for _, entry := range table {
		reg, ok := ParseRegister(entry.name)
		assert.True(ok, entry.name)
		assert.Equal(entry.reg, reg, entry.name)
	}

	_, ok := ParseRegister("rg")
	assert.False(ok)
	_, ok = ParseRegister("ip")
	assert.False(ok)

	assert.Equal("rc", REG_RC.String())
	assert.Equal("Register(16)", Register(16).String())
	assert.False(Register(-1).Valid())
	assert.False(Register(REGISTER_COUNT).Valid())
}

func TestRegisters(t *testing.T) {
	assert := assert.New(t)

	var regs []Register
	for reg := range Registers() {
		regs = append(regs, reg)
	}

	assert.Len(regs, REGISTER_COUNT)
	assert.Equal(REG_R0, regs[0])
	assert.Equal(REG_RF, regs[REGISTER_COUNT-1])
}
