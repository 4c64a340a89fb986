//
// main.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

// Command spdzdump disassembles a bytecode program and prints its
// register-bank layout and instruction stream.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/markkurossi/tabulate"

	"github.com/spdzgo/runtime/program"
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	if len(flag.Args()) == 0 {
		fmt.Fprintln(os.Stderr, "usage: spdzdump program.asm...")
		os.Exit(1)
	}

	for _, arg := range flag.Args() {
		if err := dump(arg); err != nil {
			log.Fatal(err)
		}
	}
}

func dump(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	p, err := program.Parse(f)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", path)
	printSizes(p)
	printInstructions(p)
	return nil
}

func printSizes(p *program.Program) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Bank").SetAlign(tabulate.ML)
	tab.Header("Size").SetAlign(tabulate.MR)

	for _, row := range []struct {
		name string
		size int
	}{
		{"Cp", p.Sizes.Np},
		{"Sp", p.Sizes.Nsp},
		{"C2", p.Sizes.N2},
		{"S2", p.Sizes.Ns2},
		{"Ci", p.Sizes.Ni},
	} {
		r := tab.Row()
		r.Column(row.name)
		r.Column(fmt.Sprintf("%d", row.size))
	}
	tab.Print(os.Stdout)
}

func printInstructions(p *program.Program) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("PC").SetAlign(tabulate.MR)
	tab.Header("Op").SetAlign(tabulate.ML)
	tab.Header("Args").SetAlign(tabulate.ML)

	for pc, inst := range p.Instructions {
		r := tab.Row()
		r.Column(fmt.Sprintf("%d", pc))
		r.Column(inst.Op.String())
		r.Column(formatArgs(inst.Args))
	}
	tab.Print(os.Stdout)
}

func formatArgs(args []int64) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%d", a)
	}
	return s
}
