//
// compute.go
//
// Copyright (c) 2024 Markku Rossi
//
// All rights reserved.
//

package psi

import (
	"bytes"
	"fmt"

	"github.com/cipherkit/gcpsi/circuit"
	"github.com/cipherkit/gcpsi/label"
)

// Compute returns, for each element of a, whether it also appears in b,
// evaluated through a garbled equality circuit rather than a plaintext
// comparison. a and b must have equal length, each no larger than
// ctx.MaxElems, and every element exactly ctx.elemBytes() long.
//
// Unlike the reference implementation's silent fallback to a plaintext
// scan when circuit construction or garbling fails, Compute propagates
// that failure to the caller: a garbling error here means something is
// structurally wrong (an unreachable elem_bits value, an allocation
// failure) and masking it behind a slower, functionally-equivalent path
// would hide a bug rather than route around transient load. Callers that
// want the plaintext fallback as a deliberate choice should call
// HashOnlyCompute directly.
func Compute(ctx *Context, a, b [][]byte) ([]bool, error) {
	if ctx == nil {
		return nil, fmt.Errorf("psi: compute: %w", ErrNullArgument)
	}
	if err := ctx.validateInputs(a, b); err != nil {
		return nil, err
	}
	if len(a) == 0 {
		return nil, nil
	}

	plain, err := circuit.BuildEqBits(ctx.ElemBits)
	if err != nil {
		return nil, fmt.Errorf("psi: compute: %w", err)
	}

	gc, err := circuit.Garble(plain)
	if err != nil {
		return nil, fmt.Errorf("psi: compute: %w", err)
	}
	defer circuit.Free(gc)

	k := ctx.ElemBits
	bitInputs := make([]byte, 2*k)
	inputLabels := make([]label.Label, plain.NumInputs)
	outputLabels := make([]label.Label, 1)
	outBits := make([]byte, 1)

	mask := make([]bool, len(a))
	for i, ai := range a {
		found := false
		for _, bj := range b {
			fillBitInputs(bitInputs, ai, bj, k)

			for wi, w := range gc.InputWires {
				bit := bitInputs[wi] & 1
				if bit == 0 {
					inputLabels[wi] = gc.WireLabels0[w]
				} else {
					inputLabels[wi] = gc.WireLabels1[w]
				}
			}

			if err := circuit.EvalGarbled(gc, inputLabels, outputLabels); err != nil {
				return nil, fmt.Errorf("psi: compute: %w", err)
			}
			if err := circuit.DecodeOutputs(gc, outputLabels, outBits); err != nil {
				return nil, fmt.Errorf("psi: compute: %w", err)
			}
			if outBits[0] == 1 {
				found = true
				break
			}
		}
		mask[i] = found
	}
	return mask, nil
}

// fillBitInputs unpacks the low elemBits bits of byteA and byteB,
// least-significant bit first, into in[0:elemBits] and
// in[elemBits:2*elemBits] respectively, matching BuildEqBits' wire layout.
func fillBitInputs(in, byteA, byteB []byte, elemBits int) {
	for i := 0; i < elemBits; i++ {
		byteIdx := i / 8
		bitIdx := uint(i % 8)
		in[i] = (byteA[byteIdx] >> bitIdx) & 1
		in[elemBits+i] = (byteB[byteIdx] >> bitIdx) & 1
	}
}

// HashOnlyCompute returns the same mask as Compute but by direct
// byte-wise comparison, skipping the garbled circuit entirely. It exists
// as an explicit, caller-chosen reference path — for tests that want to
// check Compute against ground truth, or callers who have already decided
// plaintext comparison is acceptable for their threat model — not as an
// automatic fallback.
func HashOnlyCompute(ctx *Context, a, b [][]byte) ([]bool, error) {
	if ctx == nil {
		return nil, fmt.Errorf("psi: hash only compute: %w", ErrNullArgument)
	}
	if err := ctx.validateInputs(a, b); err != nil {
		return nil, err
	}
	mask := make([]bool, len(a))
	for i, ai := range a {
		for _, bj := range b {
			if bytes.Equal(ai, bj) {
				mask[i] = true
				break
			}
		}
	}
	return mask, nil
}
