//
// main.go
//
// Copyright (c) 2024 Markku Rossi
//
// All rights reserved.
//

// Command gcpsi runs a garbled-circuit private set intersection between
// two literal string sets and prints the resulting membership mask and,
// with -verbose, garbled-circuit statistics.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/markkurossi/tabulate"

	"github.com/cipherkit/gcpsi/circuit"
	"github.com/cipherkit/gcpsi/psi"
)

type scenario struct {
	name string
	a    []string
	b    []string
}

var scenarios = map[string]scenario{
	"s1": {"s1", []string{"alice", "bob", "carol"}, []string{"bob", "dave", "carol"}},
	"s2": {"s2", []string{"alice", "bob", "carol"}, []string{"bob", "dave", "eve"}},
	"s3": {"s3", []string{"x", "y"}, []string{"u", "v"}},
	"s4": {"s4", []string{"same1", "same2"}, []string{"same1", "same2"}},
}

func main() {
	name := flag.String("scenario", "s1", "scenario to run: s1, s2, s3, or s4")
	setA := flag.String("a", "", "comma-separated elements of set A, overrides -scenario")
	setB := flag.String("b", "", "comma-separated elements of set B, overrides -scenario")
	verbose := flag.Bool("verbose", false, "print garbled circuit statistics")
	flag.Parse()

	a, b, err := resolveSets(*name, *setA, *setB)
	if err != nil {
		log.Fatal(err)
	}

	mask, stats, err := run(a, b, *verbose)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("A: %v\n", a)
	fmt.Printf("B: %v\n", b)
	fmt.Printf("mask: %v\n", mask)

	if *verbose {
		printStats(stats)
	}
}

func resolveSets(name, setA, setB string) ([]string, []string, error) {
	if len(setA) > 0 || len(setB) > 0 {
		return splitElements(setA), splitElements(setB), nil
	}
	s, ok := scenarios[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown scenario %q", name)
	}
	return s.a, s.b, nil
}

func splitElements(s string) []string {
	if len(s) == 0 {
		return nil
	}
	return strings.Split(s, ",")
}

func run(a, b []string, verbose bool) ([]bool, circuit.Stats, error) {
	hashA, err := psi.HashStringsToFlat(a, nil)
	if err != nil {
		return nil, circuit.Stats{}, err
	}
	hashB, err := psi.HashStringsToFlat(b, nil)
	if err != nil {
		return nil, circuit.Stats{}, err
	}

	flatA := make([][]byte, len(hashA))
	for i := range hashA {
		flatA[i] = hashA[i][:]
	}
	flatB := make([][]byte, len(hashB))
	for i := range hashB {
		flatB[i] = hashB[i][:]
	}

	ctx, err := psi.NewContext(len(flatA), psi.HashDigestSize*8)
	if err != nil {
		return nil, circuit.Stats{}, err
	}

	mask, err := psi.Compute(ctx, flatA, flatB)
	if err != nil {
		return nil, circuit.Stats{}, err
	}

	var stats circuit.Stats
	if verbose {
		plain, err := circuit.BuildEqBits(ctx.ElemBits)
		if err != nil {
			return nil, circuit.Stats{}, err
		}
		gc, err := circuit.Garble(plain)
		if err != nil {
			return nil, circuit.Stats{}, err
		}
		stats = circuit.ComputeStats(gc)
		circuit.Free(gc)
	}

	return mask, stats, nil
}

func printStats(s circuit.Stats) {
	tab := tabulate.New(tabulate.Github)
	tab.Header("Gates").SetAlign(tabulate.MR)
	tab.Header("AND").SetAlign(tabulate.MR)
	tab.Header("XOR").SetAlign(tabulate.MR)
	tab.Header("NOT").SetAlign(tabulate.MR)
	tab.Header("Ciphertexts").SetAlign(tabulate.MR)
	tab.Header("Bytes").SetAlign(tabulate.MR)

	row := tab.Row()
	row.Column(fmt.Sprintf("%d", s.NumGates))
	row.Column(fmt.Sprintf("%d", s.NumAND))
	row.Column(fmt.Sprintf("%d", s.NumXOR))
	row.Column(fmt.Sprintf("%d", s.NumNOT))
	row.Column(fmt.Sprintf("%d", s.NumCiphertexts))
	row.Column(fmt.Sprintf("%d", s.CiphertextBytes))

	tab.Print(os.Stdout)
}
