//
// garble.go
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

// GarbledGate is a garbled AND/XOR/NOT gate: same wire identifiers and
// type as the clear gate, plus a 4-row table indexed by the two-bit
// permute-color pair (color_a, color_b). XOR gates leave the table
// unused (Free-XOR).
type GarbledGate struct {
	In0   Wire
	In1   Wire
	Out   Wire
	Op    Op
	Table [4]label.Label
}

// GarbledCircuit is a garbled circuit: the clear topology, plus the two
// parallel label arrays recording the label that encodes bit 0 and bit 1
// on every wire. By the Free-XOR invariant, WireLabels1[w] =
// WireLabels0[w] XOR Delta for every wire.
type GarbledCircuit struct {
	NumWires    int
	NumInputs   int
	NumOutputs  int
	InputWires  []Wire
	OutputWires []Wire
	Gates       []GarbledGate

	WireLabels0 []label.Label
	WireLabels1 []label.Label

	key   label.Key
	delta label.Label
}

// Delta returns the global Free-XOR offset used to garble gc.
func (gc *GarbledCircuit) Delta() label.Label {
	return gc.delta
}

// Garble garbles c under label.DefaultKey, deriving a fresh Δ from that
// key. This is the API-compatible entry point matching a single
// process-wide PRF key; see GarbleWithDelta for a hermetic, per-session
// variant.
func Garble(c *Circuit) (*GarbledCircuit, error) {
	return GarbleWithKey(c, label.DefaultKey)
}

// GarbleWithKey garbles c under the given PRF key, deriving a fresh Δ
// from it.
func GarbleWithKey(c *Circuit, key label.Key) (*GarbledCircuit, error) {
	delta, err := label.DeriveDelta(key)
	if err != nil {
		return nil, fmt.Errorf("garble: %w", err)
	}
	return GarbleWithDelta(c, key, delta)
}

// GarbleWithDelta garbles c under key using the caller-supplied Δ. This
// is the hermetic form: no package-global state, so independent callers
// can garble concurrently with independent Δ values (spec.md §9 option b).
func GarbleWithDelta(c *Circuit, key label.Key, delta label.Label) (*GarbledCircuit, error) {
	if c == nil {
		return nil, fmt.Errorf("garble: %w", ErrNullArgument)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if delta.PermuteBit() != 1 {
		return nil, fmt.Errorf("garble: delta must have permute bit 1")
	}

	wireLabels0 := make([]label.Label, c.NumWires)
	wireLabels1 := make([]label.Label, c.NumWires)

	for w := 0; w < c.NumWires; w++ {
		l0, err := label.DeriveWireLabel0(key, uint16(w))
		if err != nil {
			return nil, fmt.Errorf("garble: %w", err)
		}
		wireLabels0[w] = l0
		wireLabels1[w] = l0.Xor(delta)
	}

	// First pass: Free-XOR resolution, overriding the derived labels of
	// every XOR gate's output wire.
	for _, g := range c.Gates {
		if g.Op != XOR {
			continue
		}
		l0 := wireLabels0[g.In0].Xor(wireLabels0[g.In1])
		wireLabels0[g.Out] = l0
		wireLabels1[g.Out] = l0.Xor(delta)
	}

	gates := make([]GarbledGate, len(c.Gates))

	// Second pass: garbled table build for AND/NOT gates.
	for gi, g := range c.Gates {
		gg := GarbledGate{In0: g.In0, In1: g.In1, Out: g.Out, Op: g.Op}

		if g.Op == XOR {
			gates[gi] = gg
			continue
		}

		for a := byte(0); a < 2; a++ {
			for b := byte(0); b < 2; b++ {
				ka := wireLabels0[g.In0]
				if a == 1 {
					ka = wireLabels1[g.In0]
				}
				kb := wireLabels0[g.In1]
				if b == 1 {
					kb = wireLabels1[g.In1]
				}

				var bitOut byte
				switch g.Op {
				case AND:
					bitOut = a & b
				case NOT:
					if a == 0 {
						bitOut = 1
					}
				default:
					return nil, fmt.Errorf("garble: gate %d has %w", gi,
						ErrUnknownGateType)
				}

				kout := wireLabels0[g.Out]
				if bitOut == 1 {
					kout = wireLabels1[g.Out]
				}

				row := a<<1 | b
				ks, err := label.GateKeystream(key, ka, kb, uint16(gi), row)
				if err != nil {
					return nil, fmt.Errorf("garble: %w", err)
				}
				gg.Table[row] = kout.Xor(ks)
			}
		}

		gates[gi] = gg
	}

	return &GarbledCircuit{
		NumWires:    c.NumWires,
		NumInputs:   c.NumInputs,
		NumOutputs:  c.NumOutputs,
		InputWires:  c.InputWires,
		OutputWires: c.OutputWires,
		Gates:       gates,
		WireLabels0: wireLabels0,
		WireLabels1: wireLabels1,
		key:         key,
		delta:       delta,
	}, nil
}

// Free releases gc, overwriting its label arrays and gate tables with
// zero before release, per spec.md §5's memory discipline.
func Free(gc *GarbledCircuit) {
	if gc == nil {
		return
	}
	label.WipeSlice(gc.WireLabels0)
	label.WipeSlice(gc.WireLabels1)
	for i := range gc.Gates {
		for j := range gc.Gates[i].Table {
			label.Wipe(&gc.Gates[i].Table[j])
		}
	}
	label.Wipe(&gc.delta)
}
