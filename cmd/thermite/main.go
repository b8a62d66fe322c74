// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command thermite runs, disassembles, or interactively evaluates
// thermite register machine programs.
//
//	thermite [flags] run FILE
//	thermite -rom 3,4 run FILE
//	thermite [flags] repl
//	thermite [flags] disasm FILE
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/thermite/asm"
	"github.com/ezrec/thermite/emulator"
	thio "github.com/ezrec/thermite/io"
	"github.com/ezrec/thermite/repl"
	"github.com/ezrec/thermite/vm"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage:\n  %v [flags] run FILE\n  %v [flags] repl\n  %v [flags] disasm FILE\nFlags:\n", os.Args[0], os.Args[0], os.Args[0])
	flag.PrintDefaults()
}

func assemble(filename string, verbose bool, emu *emulator.Emulator) (prog *vm.Program) {
	inf, err := os.Open(filename)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}
	defer inf.Close()

	assembler := &asm.Assembler{Verbose: verbose}
	assembler.PredefineAll(emu.Defines())
	prog, err = assembler.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}

	return
}

func main() {
	var input string
	var output string
	var rom string
	var limit int
	var verbose bool

	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.StringVar(&rom, "rom", "", "Comma separated ROM values read by 'in' instead of the tape input")
	flag.IntVar(&limit, "l", 0, "Instruction limit (0 for none)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Usage = usage

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Limit = limit

	if input == "-" {
		emu.Tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	if len(rom) != 0 {
		values, err := thio.ParseValues(rom)
		if err != nil {
			log.Fatalf("-rom: %v", err)
		}
		emu.LoadRom(values)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "run":
		if len(args) != 1 {
			log.Fatalf("%v: run: one file expected, got %v", os.Args[0], args)
		}
		emu.Program = assemble(args[0], verbose, emu)

		err := emu.Reset()
		if err != nil {
			log.Fatalf("%v: %v", args[0], err)
		}
		err = emu.Run()
		if err != nil {
			var fault *vm.ErrExecute
			if verbose && errors.As(err, &fault) {
				log.Printf("%v", fault.Dump())
			}
			log.Fatalf("%v: %v", args[0], err)
		}
	case "disasm":
		if len(args) != 1 {
			log.Fatalf("%v: disasm: one file expected, got %v", os.Args[0], args)
		}
		prog := assemble(args[0], verbose, emu)
		for ip, code := range prog.Codes() {
			fmt.Fprintf(emu.Tape.Output, "%04d: %v\n", ip, code)
		}
	case "repl":
		if len(args) != 0 {
			log.Fatalf("%v: repl: unknown arguments: %v", os.Args[0], args)
		}
		sh := repl.NewShell()
		sh.Machine.Verbose = verbose
		sh.Machine.Output = &emu.Tape
		if input != "-" || len(rom) != 0 {
			sh.Machine.Input = emu.Machine.Input
		}
		err := sh.Run(os.Stdin, os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("%v: unknown command %v", os.Args[0], command)
	}
}
