package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/thermite/asm"
	"github.com/ezrec/thermite/io"
	"github.com/ezrec/thermite/vm"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Machine)
	assert.Equal(vm.Channel(&emu.Tape), emu.Machine.Input)
	assert.Equal(vm.Channel(&emu.Tape), emu.Machine.Output)

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}
	assert.Equal("0", defines["ROM_SIZE"])
	assert.Equal("16", defines["REGISTERS"])
	assert.Equal("2147483647", defines["INT32_MAX"])
}

func doAssemble(emu *Emulator, program []string, t *testing.T) {
	assembler := &asm.Assembler{}
	assembler.PredefineAll(emu.Defines())

	prog, err := assembler.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	emu.Program = prog
}

func doRun(emu *Emulator, program []string, input string, t *testing.T) (output string, err error) {
	doAssemble(emu, program, t)

	emu.Tape.Input = strings.NewReader(input)
	tape_output := &bytes.Buffer{}
	emu.Tape.Output = tape_output

	err = emu.Reset()
	if err != nil {
		return
	}

	err = emu.Run()
	output = tape_output.String()
	return
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []string{
		"main:",
		"  in ra",
		"  in rb",
		"  add ra rb rc",
		"  out rc",
		"  hlt",
	}

	output, err := doRun(emu, program, "3 4\n", t)
	assert.NoError(err)
	assert.Equal("7\n", output)
	assert.Equal(6, emu.Ticks())
	assert.False(emu.Running)
	assert.Equal(int32(7), emu.Register.Read(vm.REG_RC))
}

func TestEmulatorLoop(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []string{
		"main:",
		"  str 3 ra",
		"  str 1 rb",
		"loop:",
		"  out ra",
		"  sub ra rb ra",
		"  jnz ra loop",
		"  hlt",
	}

	output, err := doRun(emu, program, "", t)
	assert.NoError(err)
	assert.Equal("3\n2\n1\n", output)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.LoadRom([]int32{1, 2, 3})

	program := []string{
		"main:",
		"  str ROM_SIZE ra",
		"  out ra",
		"  str INT32_MIN ra",
		"  out ra",
		"  str $(REGISTERS-1) ra",
		"  out ra",
		"  hlt",
	}

	output, err := doRun(emu, program, "", t)
	assert.NoError(err)
	assert.Equal("3\n-2147483648\n15\n", output)
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []string{
		"; header",
		"main: str 2 ra",
		"",
		"  out ra",
		"  hlt",
	}

	doAssemble(emu, program, t)
	output := &bytes.Buffer{}
	emu.Tape.Output = output
	assert.NoError(emu.Reset())

	for _, op := range emu.Program.Opcodes {
		assert.Equal(op.LineNo, emu.LineNo())
		assert.Equal(op.Instruction, emu.Code())
		done, err := emu.Tick()
		assert.NoError(err)
		assert.Equal(op.Instruction.Op == vm.OP_HLT, done)
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal("2\n", output.String())
	assert.Equal(3, emu.Ip())
}

func TestEmulatorLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Limit = 10

	program := []string{
		"main:",
		"loop:",
		"jmp loop",
		"hlt",
	}

	_, err := doRun(emu, program, "", t)
	assert.ErrorIs(err, ErrTickLimit)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(3, runtime.LineNo)
	}
	assert.Equal(10, emu.Ticks())

	// Reset rearms the budget.
	assert.NoError(emu.Reset())
	assert.Equal(0, emu.Ticks())
	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
}

func TestEmulatorFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []string{
		"main:",
		"str 1 ra",
		"div ra rb rc",
		"hlt",
	}

	_, err := doRun(emu, program, "", t)
	assert.ErrorIs(err, vm.ErrDivisionByZero)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(3, runtime.LineNo)
	}

	var execute *vm.ErrExecute
	if assert.True(errors.As(err, &execute)) {
		assert.Equal(2, execute.Ip)
		assert.Equal(vm.MakeAlu(vm.OP_DIV, vm.REG_RA, vm.REG_RB, vm.REG_RC), execute.Instruction)
		assert.Equal(int32(1), execute.Registers[vm.REG_RA])
	}
	assert.Equal(int32(0), emu.Register.Read(vm.REG_RC))
}

func TestEmulatorInputEmpty(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []string{
		"main: in ra",
		"hlt",
	}

	_, err := doRun(emu, program, "", t)
	assert.ErrorIs(err, io.ErrChannelEmpty)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(1, runtime.LineNo)
	}
}

func TestEmulatorReset(t *testing.T) {
	table := [...]struct {
		name    string
		program []string
		err     error
	}{
		{"no-main", []string{"start:", "hlt"}, vm.ErrMissingEntryLabel},
		{"no-hlt", []string{"main:", "nop"}, vm.ErrMissingTerminator},
		{"empty", []string{}, vm.ErrMissingEntryLabel},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			emu := NewEmulator()
			doAssemble(emu, entry.program, t)

			err := emu.Reset()
			assert.ErrorIs(err, entry.err)

			var runtime *ErrRuntime
			if assert.True(errors.As(err, &runtime)) {
				assert.Equal(0, runtime.LineNo)
			}
		})
	}
}

func TestEmulatorRom(t *testing.T) {
	assert := assert.New(t)

	values, err := io.ParseValues("6, 7")
	if !assert.NoError(err) {
		return
	}

	emu := NewEmulator()
	emu.LoadRom(values)
	assert.Equal(vm.Channel(&emu.Rom), emu.Machine.Input)

	temp := &io.Temporary{Capacity: 4}
	emu.Machine.Output = temp

	program := []string{
		"main:",
		"  str ROM_SIZE rd",
		"  in ra",
		"  in rb",
		"  mul ra rb rc",
		"  out rc",
		"  out rd",
		"  hlt",
	}

	doAssemble(emu, program, t)

	// Reset rewinds the ROM for every run.
	for range 2 {
		assert.NoError(emu.Reset())
		assert.NoError(emu.Run())
		assert.Equal([]int32{42, 2}, temp.Drain())
	}
}
