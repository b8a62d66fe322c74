// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package repl provides the line-oriented interactive shell.
//
// Each line is assembled and its instructions are stepped, one at a
// time, against a machine whose registers and labels persist for the
// whole session. Lines starting with '.' are shell commands.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/thermite/asm"
	thio "github.com/ezrec/thermite/io"
	"github.com/ezrec/thermite/vm"
)

const (
	WELCOME = "Welcome to the thermite interactive mode.\nType .help for commands, .quit or ctrl-d to exit.\n"
	PROMPT  = "vm> "
)

const help = `.regs     show registers
.labels   show labels
.list     show the instructions entered so far
.reset    clear registers, labels and equates
.help     show this message
.quit     leave the shell
`

// Shell is an interactive session on one machine.
type Shell struct {
	Machine   *vm.Machine
	Assembler *asm.Assembler
}

// NewShell creates a shell on a fresh machine.
func NewShell() (sh *Shell) {
	sh = &Shell{
		Machine:   vm.NewMachine(),
		Assembler: &asm.Assembler{},
	}

	sh.Assembler.PredefineAll(sh.Machine.Defines())

	return
}

// Run reads lines from in until end of input or .quit, writing prompts,
// 'out' values and faults to out.
func (sh *Shell) Run(in io.Reader, out io.Writer) (err error) {
	if sh.Machine.Output == nil {
		sh.Machine.Output = &thio.Tape{Output: out}
	}

	scanner := bufio.NewScanner(in)

	fmt.Fprint(out, WELCOME)

	for {
		fmt.Fprint(out, PROMPT)

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, ".") && !strings.HasPrefix(line, ".equ") {
			if sh.command(line, out) {
				return
			}
			continue
		}

		sh.eval(line, out)
	}

	fmt.Fprintln(out)

	err = scanner.Err()

	return
}

// eval assembles a line and steps each of its instructions.
// A fault abandons the rest of the line.
func (sh *Shell) eval(line string, out io.Writer) {
	codes, err := sh.Assembler.ParseLine(line)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}

	for _, code := range codes {
		err = sh.Machine.Step(code)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return
		}
	}
}

// command runs a shell command, returning true when the session ends.
func (sh *Shell) command(line string, out io.Writer) (quit bool) {
	switch strings.Fields(line)[0] {
	case ".quit", ".exit":
		quit = true
	case ".regs":
		fmt.Fprint(out, sh.Machine.String())
	case ".labels":
		fmt.Fprint(out, sh.Machine.Labels.String())
	case ".list":
		for ip, code := range sh.Machine.Program() {
			fmt.Fprintf(out, "%04d: %v\n", ip, code)
		}
	case ".reset":
		sh.Machine.Reset()
		sh.Assembler.Reset()
	case ".help":
		fmt.Fprint(out, help)
	default:
		fmt.Fprintf(out, "error: unknown command %v\n", line)
	}

	return
}
