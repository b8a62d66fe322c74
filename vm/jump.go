// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"fmt"
	"maps"
	"slices"
)

// JumpTable maps label names to instruction positions.
type JumpTable map[string]int

// BuildJumpTable scans a program for label definitions.
func BuildJumpTable(program []Instruction) (jt JumpTable) {
	jt = make(JumpTable, 16)
	jt.Build(program)
	return
}

// Build replaces the contents of the table with the labels of program.
// A later label of the same name replaces an earlier one.
func (jt JumpTable) Build(program []Instruction) {
	clear(jt)
	for ip, code := range program {
		if code.Op == OP_LBL {
			jt[code.Label] = ip
		}
	}
}

// Insert adds or replaces a single label.
func (jt JumpTable) Insert(label string, ip int) {
	jt[label] = ip
}

// Lookup resolves a label to its instruction position.
func (jt JumpTable) Lookup(label string) (ip int, err error) {
	ip, ok := jt[label]
	if !ok {
		err = ErrLabelUndefined(label)
	}
	return
}

// String lists the labels in name order.
func (jt JumpTable) String() (text string) {
	for _, label := range slices.Sorted(maps.Keys(jt)) {
		text += fmt.Sprintf("%v: %04d\n", label, jt[label])
	}

	return
}
