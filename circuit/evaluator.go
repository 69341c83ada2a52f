//
// evaluator.go
//
// Copyright (c) 2019-2024 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"

	"github.com/cipherkit/gcpsi/label"
)

// EvalGarbled evaluates gc on inputLabels (one per input wire, in
// gc.InputWires order) and writes gc.NumOutputs result labels into
// outputLabels. XOR gates are resolved with Free-XOR (no PRF call); AND
// and NOT gates derive the row keystream and unwrap the selected table
// entry. The evaluator never branches on secret data beyond selecting the
// row via the two input labels' permute bits.
func EvalGarbled(gc *GarbledCircuit, inputLabels, outputLabels []label.Label) error {
	if gc == nil || inputLabels == nil || outputLabels == nil {
		return fmt.Errorf("eval garbled: %w", ErrNullArgument)
	}
	if len(inputLabels) != gc.NumInputs {
		return fmt.Errorf("eval garbled: got %d input labels, want %d: %w",
			len(inputLabels), gc.NumInputs, ErrEmptySizes)
	}
	if len(outputLabels) != gc.NumOutputs {
		return fmt.Errorf("eval garbled: got %d output labels, want %d: %w",
			len(outputLabels), gc.NumOutputs, ErrEmptySizes)
	}

	wireVals := make([]label.Label, gc.NumWires)
	defer label.WipeSlice(wireVals)
	for i, w := range gc.InputWires {
		if int(w) >= gc.NumWires {
			return fmt.Errorf("eval garbled: %w", ErrWireOutOfRange)
		}
		wireVals[w] = inputLabels[i]
	}

	for gi, g := range gc.Gates {
		if int(g.In0) >= gc.NumWires || int(g.In1) >= gc.NumWires ||
			int(g.Out) >= gc.NumWires {
			return fmt.Errorf("eval garbled: gate %d: %w", gi, ErrWireOutOfRange)
		}

		ka := wireVals[g.In0]
		kb := wireVals[g.In1]

		switch g.Op {
		case XOR:
			wireVals[g.Out] = ka.Xor(kb)

		case AND, NOT:
			row := ka.PermuteBit()<<1 | kb.PermuteBit()
			ks, err := label.GateKeystream(gc.key, ka, kb, uint16(gi), row)
			if err != nil {
				return fmt.Errorf("eval garbled: %w", err)
			}
			wireVals[g.Out] = g.Table[row].Xor(ks)

		default:
			return fmt.Errorf("eval garbled: gate %d has %w", gi,
				ErrUnknownGateType)
		}
	}

	for i, w := range gc.OutputWires {
		if int(w) >= gc.NumWires {
			return fmt.Errorf("eval garbled: %w", ErrWireOutOfRange)
		}
		outputLabels[i] = wireVals[w]
	}
	return nil
}
