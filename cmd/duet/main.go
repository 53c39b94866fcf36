// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ezrec/duet/cpu"
	"github.com/ezrec/duet/emulator"
	"github.com/ezrec/duet/translate"
)

func main() {
	var compile string
	var mode string
	var limit int
	var lang string
	var verbose bool

	flag.StringVar(&compile, "c", "-", "Program file to run, '-' for stdin")
	flag.StringVar(&mode, "m", "both", "Run mode: solo, duet, or both")
	flag.IntVar(&limit, "l", 0, "Maximum ticks per processor, 0 for no limit")
	flag.StringVar(&lang, "lang", "", "Message locale, overriding the environment")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.SetLocales(lang)
	}

	var input io.Reader = os.Stdin
	if compile != "-" {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		input = inf
	}

	asm := &cpu.Assembler{Verbose: verbose}
	prog, err := asm.Parse(input)
	if inf, ok := input.(*os.File); ok && inf != os.Stdin {
		inf.Close()
	}
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	err = run(os.Stdout, mode, prog, limit, verbose)
	if err != nil {
		os.Exit(1)
	}
}

// run executes the program in the selected mode, and writes the answers to
// out. In 'both' mode a solo failure is logged, and the duet still runs.
func run(out io.Writer, mode string, prog *cpu.Program, limit int, verbose bool) (err error) {
	var solo, duet bool
	switch mode {
	case "solo":
		solo = true
	case "duet":
		duet = true
	case "both":
		solo = true
		duet = true
	default:
		err = fmt.Errorf("unknown mode: %v", mode)
		log.Print(err)
		return
	}

	var errs []error

	if solo {
		runner := emulator.NewSolo(prog)
		runner.Verbose = verbose
		runner.Limit = limit
		last, err := runner.Run()
		if err != nil {
			err = fmt.Errorf("solo: %w", err)
			log.Print(err)
			errs = append(errs, err)
		} else {
			fmt.Fprintf(out, "last frequency: %d\n", last)
		}
	}

	if duet {
		runner := emulator.NewDuet(prog)
		runner.Verbose = verbose
		runner.Limit = limit
		sends, err := runner.Run()
		if err != nil {
			err = fmt.Errorf("duet: %w", err)
			log.Print(err)
			errs = append(errs, err)
		} else {
			fmt.Fprintf(out, "sends for p1:   %d\n", sends)
		}
	}

	return errors.Join(errs...)
}
