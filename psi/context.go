//
// context.go
//
// Copyright (c) 2024 Markku Rossi
//
// All rights reserved.
//

// Package psi implements private set intersection over garbled equality
// circuits: for two element sets of equal size, it computes a membership
// mask indicating which of set A's elements also appear in set B. Both
// sets are passed to one call, which garbles and evaluates the circuit in
// the same process; no two-party protocol runs.
package psi

import "fmt"

// Context fixes the capacity and per-element bit width that a Compute or
// HashOnlyCompute call will run at.
type Context struct {
	MaxElems int
	ElemBits int
}

// NewContext returns a Context configured for up to maxElems elements of
// elemBits bits each. Both must be positive.
func NewContext(maxElems, elemBits int) (*Context, error) {
	if maxElems <= 0 || elemBits <= 0 {
		return nil, fmt.Errorf("psi: new context: max_elems=%d elem_bits=%d: %w",
			maxElems, elemBits, ErrEmptySizes)
	}
	return &Context{MaxElems: maxElems, ElemBits: elemBits}, nil
}

// elemBytes returns the number of bytes needed to hold ElemBits bits.
func (ctx *Context) elemBytes() int {
	return (ctx.ElemBits + 7) / 8
}

func (ctx *Context) validateInputs(a, b [][]byte) error {
	if a == nil || b == nil {
		return fmt.Errorf("psi: %w", ErrNullArgument)
	}
	if len(a) != len(b) {
		return fmt.Errorf("psi: input set sizes differ (%d vs %d): %w",
			len(a), len(b), ErrElemSizeMismatch)
	}
	if len(a) > ctx.MaxElems {
		return fmt.Errorf("psi: %d elements exceeds capacity %d: %w",
			len(a), ctx.MaxElems, ErrCapacityExceeded)
	}
	want := ctx.elemBytes()
	for i, e := range a {
		if len(e) != want {
			return fmt.Errorf("psi: element a[%d] has %d bytes, want %d: %w",
				i, len(e), want, ErrElemSizeMismatch)
		}
	}
	for i, e := range b {
		if len(e) != want {
			return fmt.Errorf("psi: element b[%d] has %d bytes, want %d: %w",
				i, len(e), want, ErrElemSizeMismatch)
		}
	}
	return nil
}
