// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"math"
	"slices"

	"github.com/ezrec/thermite/internal"
	"github.com/ezrec/thermite/io"
)

// ENTRY_LABEL is the label where batch execution starts.
const ENTRY_LABEL = "main"

// Channel is an I/O channel interface.
type Channel io.Channel

var _vm_defines = map[string]string{
	"REGISTERS": fmt.Sprintf("%d", REGISTER_COUNT),
	"INT32_MAX": fmt.Sprintf("%d", math.MaxInt32),
	"INT32_MIN": fmt.Sprintf("%d", math.MinInt32),
}

// Machine is the state of one virtual machine instance.
//
// A Machine is not safe for concurrent use. Run and Step must not be
// called from more than one goroutine at a time.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Register RegisterFile // Register bank.
	Ip       int          // Index of the instruction being executed.
	Labels   JumpTable    // Label positions in the current program.
	Running  bool         // Cleared by hlt.

	Input  Channel // Source for 'in'.
	Output Channel // Sink for 'out'.

	Ticks int // Executed instruction counter.

	program []Instruction
}

// NewMachine creates a machine with zeroed registers and no program.
func NewMachine() (m *Machine) {
	m = &Machine{
		Labels:  make(JumpTable, 16),
		Running: true,
	}

	return
}

// Defines for the machine.
func (m *Machine) Defines() iter.Seq2[string, string] {
	return internal.SortedDefines(_vm_defines)
}

// Program returns a copy of the current instruction sequence.
func (m *Machine) Program() []Instruction {
	return slices.Clone(m.program)
}

// Reset the machine state.
// - Clears the registers, labels and program.
// - Zeros the tick counter.
// - Rewinds the I/O channels.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("vm: reset")
	}

	m.Register.Reset()
	if m.Labels == nil {
		m.Labels = make(JumpTable, 16)
	}
	clear(m.Labels)
	m.program = nil
	m.Ip = 0
	m.Running = true
	m.Ticks = 0

	for _, channel := range []Channel{m.Input, m.Output} {
		if channel != nil {
			channel.Rewind()
		}
	}
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	text += fmt.Sprintf("% 5s: %04d\n", "ip", m.Ip)
	text += fmt.Sprintf("% 5s: %v\n", "run", m.Running)
	for reg := range Registers() {
		val := m.Register.Read(reg)
		text += fmt.Sprintf("% 5s: %04X_%04X %d\n", reg, uint32(val)>>16, uint32(val)&0xffff, val)
	}
	text += m.Labels.String()

	return
}

// fault wraps an instruction fault with a snapshot of the machine.
func (m *Machine) fault(ip int, code Instruction, err error) error {
	return &ErrExecute{
		Ip:          ip,
		Instruction: code,
		Registers:   m.Register.Values(),
		Labels:      maps.Clone(m.Labels),
		Err:         err,
	}
}

// Start prepares a complete program for batch execution.
//
// The program must define the entry label and contain a hlt instruction.
// On failure the machine state is left untouched.
func (m *Machine) Start(program []Instruction) (err error) {
	labels := BuildJumpTable(program)

	entry, ok := labels[ENTRY_LABEL]
	if !ok {
		err = ErrMissingEntryLabel
		return
	}

	if !slices.ContainsFunc(program, func(code Instruction) bool { return code.Op == OP_HLT }) {
		err = ErrMissingTerminator
		return
	}

	m.Labels = labels
	m.program = slices.Clip(program)
	m.Ip = entry
	m.Running = true

	if m.Verbose {
		log.Printf("vm: start at %v (%d)", ENTRY_LABEL, entry)
	}

	return
}

// Tick executes the instruction at the instruction pointer, then
// advances the instruction pointer unless the machine halted.
//
// A taken branch leaves the pointer on the label, so the advance
// resumes execution just past the label.
func (m *Machine) Tick() (done bool, err error) {
	if !m.Running {
		done = true
		return
	}

	ip := m.Ip
	if ip < 0 || ip >= len(m.program) {
		err = m.fault(ip, Instruction{}, ErrIpRange)
		return
	}

	code := m.program[ip]
	err = m.Execute(code)
	if err != nil {
		err = m.fault(ip, code, err)
		return
	}

	if m.Running {
		m.Ip++
	}

	done = !m.Running

	return
}

// Run executes a complete program from the entry label until hlt.
// Any fault stops execution.
func (m *Machine) Run(program []Instruction) (err error) {
	err = m.Start(program)
	if err != nil {
		return
	}

	for done := false; !done; {
		done, err = m.Tick()
		if err != nil {
			if m.Verbose {
				log.Printf("vm: %v\n%v", err, m)
			}
			return
		}
	}

	return
}

// Step appends a single instruction to the owned program, executes it,
// and advances the instruction pointer.
//
// When a taken branch leaves the instruction pointer inside the program,
// the buffered instructions run as in Tick until the pointer reaches the
// end of the program, a hlt, or a fault. A backward loop with no exit
// does not return.
//
// No entry label or terminator is required. A fault is returned but the
// machine remains usable; the instruction pointer advances regardless.
func (m *Machine) Step(code Instruction) (err error) {
	if m.Labels == nil {
		m.Labels = make(JumpTable, 16)
	}

	ip := len(m.program)
	m.Ip = ip
	m.program = append(m.program, code)

	if code.Op == OP_LBL {
		m.Labels.Insert(code.Label, ip)
	}

	m.Running = true

	err = m.Execute(code)
	m.Ip++
	if err != nil {
		err = m.fault(ip, code, err)
		return
	}

	for m.Running && m.Ip < len(m.program) {
		_, err = m.Tick()
		if err != nil {
			return
		}
	}

	return
}
