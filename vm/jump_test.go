// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildJumpTable(t *testing.T) {
	assert := assert.New(t)

	program := []Instruction{
		MakeLabel("main"),
		MakeStore(1, REG_RA),
		MakeLabel("loop"),
		MakeJump("loop"),
		MakeLabel("end"),
		MakeHalt(),
	}

	jt := BuildJumpTable(program)
	assert.Equal(JumpTable{"main": 0, "loop": 2, "end": 4}, jt)

	jt = BuildJumpTable(nil)
	assert.Empty(jt)
}

func TestJumpTable_Overwrite(t *testing.T) {
	assert := assert.New(t)

	program := []Instruction{
		MakeLabel("x"),
		MakeNop(),
		MakeLabel("x"),
	}

	jt := BuildJumpTable(program)
	assert.Equal(JumpTable{"x": 2}, jt)

	jt.Insert("x", 7)
	ip, err := jt.Lookup("x")
	assert.NoError(err)
	assert.Equal(7, ip)
}

func TestJumpTable_Build_Replaces(t *testing.T) {
	assert := assert.New(t)

	jt := JumpTable{"stale": 3}
	jt.Build([]Instruction{MakeLabel("fresh")})
	assert.Equal(JumpTable{"fresh": 0}, jt)
}

func TestJumpTable_Lookup_Undefined(t *testing.T) {
	assert := assert.New(t)

	jt := JumpTable{}
	_, err := jt.Lookup("nowhere")
	assert.Error(err)
	assert.Equal(ErrLabelUndefined("nowhere"), err)
	assert.True(errors.Is(err, ErrLabelUndefined("")))
}

func TestJumpTable_String(t *testing.T) {
	assert := assert.New(t)

	jt := JumpTable{"main": 0, "end": 12}
	assert.Equal("end: 0012\nmain: 0000\n", jt.String())
}
