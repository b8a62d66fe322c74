// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm assembles thermite source text into instructions.
//
// One instruction is written per line, as a mnemonic followed by its
// operands separated by spaces:
//
//	main:               ; label definition
//	str 10 ra           ; ra := 10
//	add ra rb rc        ; rc := ra + rb
//	jnz rc main         ; branch when rc != 0
//	.equ LIMIT 100      ; equate
//	str $(LIMIT*2) rd   ; compile-time expression
//	hlt
//
// Everything after a ';' is a comment.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/thermite/vm"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
)

// Assembler is a single pass assembler for the thermite machine.
type Assembler struct {
	Verbose bool        // If set, verbosely logs the assembler actions.
	Opcode  []vm.Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.

	lineno int
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// PredefineAll predefines every equate of a sequence.
func (asm *Assembler) PredefineAll(defines iter.Seq2[string, string]) {
	for equ, value := range defines {
		asm.Predefine(equ, value)
	}
}

// Reset clears the generated opcodes and equates.
func (asm *Assembler) Reset() {
	asm.Opcode = asm.Opcode[:0]
	asm.lineno = 0
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
}

// valueOf returns the value of a simple word.
// Values from -2^31 to 2^32-1 are accepted; values above 2^31-1 are
// taken as a 32-bit pattern.
func (asm *Assembler) valueOf(word string) (value int32, err error) {
	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}
	if len(word) == 0 {
		err = ErrParseNumber("~")
		return
	}
	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil || v64 > math.MaxUint32 || v64 < math.MinInt32 {
		err = ErrParseNumber(word)
		return
	}

	value = int32(uint32(v64))

	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		if len(str) == 0 {
			continue
		}
		var value32 int32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// expandCharacters replaces 'x' character literals with their values.
func expandCharacters(line string) string {
	return reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%d", str[0])
	})
}

// parseLine expands a single line of text into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%d", lineno)

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	// Branch targets are labels, never equates.
	target := -1
	for _, word := range words {
		if strings.HasSuffix(word, ":") {
			continue
		}
		op, ok := vm.ParseOp(strings.ToLower(word))
		if ok && op.Class() == vm.CLASS_BRANCH {
			target = len(words) - 1
		}
		break
	}

	for n, word := range words {
		if n == target {
			continue
		}
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// register decodes a register operand.
func register(word string) (reg vm.Register, err error) {
	reg, ok := vm.ParseRegister(word)
	if !ok {
		err = ErrRegisterInvalid(word)
	}
	return
}

// registers decodes a fixed count of register operands.
func registers(words []string, count int) (regs []vm.Register, err error) {
	if len(words) < count {
		err = ErrOpcodeValueMissing
		return
	}
	if len(words) > count {
		err = ErrOpcodeExtraArgs
		return
	}
	for _, word := range words {
		var reg vm.Register
		reg, err = register(word)
		if err != nil {
			return
		}
		regs = append(regs, reg)
	}
	return
}

// label validates a label name.
func label(word string) (name string, err error) {
	if !reLabel.MatchString(word) {
		err = ErrLabelInvalid
		return
	}
	name = word
	return
}

// parseWords evaluates the words of a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (codes []vm.Instruction, err error) {
	initial_words := words

	defer func() {
		if err != nil {
			return
		}
		for _, code := range codes {
			if asm.Verbose {
				log.Printf("%v: %v", lineno, code)
			}
			asm.Opcode = append(asm.Opcode, vm.Opcode{LineNo: lineno, Words: initial_words, Instruction: code})
		}
	}()

	// Leading label definitions.
	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		var name string
		name, err = label(strings.TrimSuffix(words[0], ":"))
		if err != nil {
			return
		}
		codes = append(codes, vm.MakeLabel(name))
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	op, ok := vm.ParseOp(strings.ToLower(words[0]))
	if !ok {
		err = ErrInstructionInvalid
		return
	}
	args := words[1:]

	var regs []vm.Register
	switch op.Class() {
	case vm.CLASS_NILADIC:
		if len(args) > 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		codes = append(codes, vm.Instruction{Op: op})
	case vm.CLASS_IO:
		regs, err = registers(args, 1)
		if err != nil {
			return
		}
		codes = append(codes, vm.MakeIo(op, regs[0]))
	case vm.CLASS_ARITHMETIC, vm.CLASS_BITWISE:
		regs, err = registers(args, 3)
		if err != nil {
			return
		}
		codes = append(codes, vm.MakeAlu(op, regs[0], regs[1], regs[2]))
	case vm.CLASS_BRANCH:
		need := 2
		if op == vm.OP_JMP {
			need = 1
		}
		if len(args) < need {
			err = ErrTargetMissing
			return
		}
		if len(args) > need {
			err = ErrOpcodeExtraArgs
			return
		}
		var target string
		target, err = label(args[need-1])
		if err != nil {
			return
		}
		if op == vm.OP_JMP {
			codes = append(codes, vm.MakeJump(target))
		} else {
			var reg vm.Register
			reg, err = register(args[0])
			if err != nil {
				return
			}
			codes = append(codes, vm.MakeBranch(op, reg, target))
		}
	case vm.CLASS_ASSIGNMENT:
		if len(args) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		var dst vm.Register
		dst, err = register(args[1])
		if err != nil {
			return
		}
		if op == vm.OP_STR {
			var value int32
			value, err = asm.valueOf(args[0])
			if err != nil {
				return
			}
			codes = append(codes, vm.MakeStore(value, dst))
		} else {
			var src vm.Register
			src, err = register(args[0])
			if err != nil {
				return
			}
			codes = append(codes, vm.MakeCopy(src, dst))
		}
	default:
		err = ErrInstructionInvalid
		return
	}

	return
}

// assemble turns one source line into instructions.
func (asm *Assembler) assemble(text string, lineno int) (codes []vm.Instruction, err error) {
	if asm.Verbose {
		log.Printf("%v: %v\n", lineno, text)
	}

	line, _, _ := strings.Cut(expandCharacters(text), ";")
	line = strings.TrimSpace(line)

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	words, err := asm.parseLine(line, lineno)
	if err != nil {
		return
	}

	codes, err = asm.parseWords(words, lineno)
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *vm.Program, err error) {
	scanner := bufio.NewScanner(input)

	asm.Reset()

	for scanner.Scan() {
		asm.lineno += 1
		_, err = asm.assemble(scanner.Text(), asm.lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &vm.Program{
		Opcodes: append([]vm.Opcode(nil), asm.Opcode...),
	}

	return
}

// ParseLine assembles a single line of text, as typed at the
// interactive shell. Equates persist from line to line.
func (asm *Assembler) ParseLine(text string) (codes []vm.Instruction, err error) {
	if asm.Equate == nil {
		asm.Reset()
	}

	// Only the listing of the current line is kept.
	asm.Opcode = asm.Opcode[:0]

	asm.lineno += 1
	codes, err = asm.assemble(text, asm.lineno)
	return
}
