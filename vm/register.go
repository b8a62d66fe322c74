// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"fmt"
	"iter"
	"strings"
)

// Register identifies one slot of the register file.
type Register int

const (
	REG_R0 = Register(0)  // r0
	REG_R1 = Register(1)  // r1
	REG_R2 = Register(2)  // r2
	REG_R3 = Register(3)  // r3
	REG_R4 = Register(4)  // r4
	REG_R5 = Register(5)  // r5
	REG_R6 = Register(6)  // r6
	REG_R7 = Register(7)  // r7
	REG_R8 = Register(8)  // r8
	REG_R9 = Register(9)  // r9
	REG_RA = Register(10) // ra
	REG_RB = Register(11) // rb
	REG_RC = Register(12) // rc
	REG_RD = Register(13) // rd
	REG_RE = Register(14) // re
	REG_RF = Register(15) // rf

	REGISTER_COUNT = 16 // Number of registers in the file.
)

var registerName = [REGISTER_COUNT]string{
	"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
	"r8", "r9", "ra", "rb", "rc", "rd", "re", "rf",
}

// Valid returns true if the register is part of the register file.
func (reg Register) Valid() bool {
	return reg >= REG_R0 && reg < REGISTER_COUNT
}

func (reg Register) String() string {
	if !reg.Valid() {
		return fmt.Sprintf("Register(%d)", int(reg))
	}
	return registerName[reg]
}

// ParseRegister resolves an assembly register name, ignoring case.
func ParseRegister(name string) (reg Register, ok bool) {
	name = strings.ToLower(name)
	for n, rname := range registerName {
		if rname == name {
			reg = Register(n)
			ok = true
			return
		}
	}

	return
}

// Registers iterates over every register, in file order.
func Registers() iter.Seq[Register] {
	return func(yield func(reg Register) bool) {
		for reg := REG_R0; reg < REGISTER_COUNT; reg++ {
			if !yield(reg) {
				return
			}
		}
	}
}

// RegisterFile is the bank of general-purpose registers.
// Every register reads as zero until written.
type RegisterFile struct {
	value [REGISTER_COUNT]int32
}

// Read returns the value held by a register.
func (rf *RegisterFile) Read(reg Register) int32 {
	return rf.value[reg]
}

// Write stores a value into a register.
func (rf *RegisterFile) Write(reg Register, value int32) {
	rf.value[reg] = value
}

// Values returns a copy of the whole file.
func (rf *RegisterFile) Values() [REGISTER_COUNT]int32 {
	return rf.value
}

// Reset zeroes every register.
func (rf *RegisterFile) Reset() {
	clear(rf.value[:])
}
