//
// decode.go
//
// Copyright (c) 2024 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"

	"github.com/cipherkit/gcpsi/label"
)

// DecodeOutputs maps each label in outputLabels back to a clear bit by
// comparing it, in constant time, against gc's known L0/L1 for the
// corresponding output wire. Both comparisons run for every output
// regardless of which (if either) matches, so decode time does not
// data-depend on the decoded bit.
func DecodeOutputs(gc *GarbledCircuit, outputLabels []label.Label, outputs []byte) error {
	if gc == nil || outputLabels == nil || outputs == nil {
		return fmt.Errorf("decode outputs: %w", ErrNullArgument)
	}
	if len(outputLabels) != gc.NumOutputs || len(outputs) != gc.NumOutputs {
		return fmt.Errorf("decode outputs: size mismatch: %w", ErrEmptySizes)
	}

	for i, w := range gc.OutputWires {
		l0 := gc.WireLabels0[w]
		l1 := gc.WireLabels1[w]
		lo := outputLabels[i]

		isZero := lo.Equal(l0)
		isOne := lo.Equal(l1)

		switch {
		case isZero:
			outputs[i] = 0
		case isOne:
			outputs[i] = 1
		default:
			return fmt.Errorf("decode outputs: wire %d: %w", w, ErrDecodeMismatch)
		}
	}
	return nil
}
