//
// compute_test.go
//
// Copyright (c) 2024 Markku Rossi
//
// All rights reserved.
//

package psi

import (
	"testing"
)

func maskFromElements(t *testing.T, setA, setB []string) []bool {
	t.Helper()

	hashA, err := HashStringsToFlat(setA, nil)
	if err != nil {
		t.Fatalf("HashStringsToFlat(a): %v", err)
	}
	hashB, err := HashStringsToFlat(setB, nil)
	if err != nil {
		t.Fatalf("HashStringsToFlat(b): %v", err)
	}

	a := make([][]byte, len(hashA))
	for i := range hashA {
		a[i] = hashA[i][:]
	}
	b := make([][]byte, len(hashB))
	for i := range hashB {
		b[i] = hashB[i][:]
	}

	ctx, err := NewContext(len(a), HashDigestSize*8)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	mask, err := Compute(ctx, a, b)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return mask
}

func TestComputeScenarioS1(t *testing.T) {
	mask := maskFromElements(t,
		[]string{"alice", "bob", "carol"},
		[]string{"bob", "dave", "carol"})
	want := []bool{false, true, true}
	for i := range want {
		if mask[i] != want[i] {
			t.Fatalf("mask = %v, want %v", mask, want)
		}
	}
}

func TestComputeScenarioS2(t *testing.T) {
	mask := maskFromElements(t,
		[]string{"alice", "bob", "carol"},
		[]string{"bob", "dave", "eve"})
	want := []bool{false, true, false}
	for i := range want {
		if mask[i] != want[i] {
			t.Fatalf("mask = %v, want %v", mask, want)
		}
	}
}

func TestComputeScenarioS3(t *testing.T) {
	mask := maskFromElements(t, []string{"x", "y"}, []string{"u", "v"})
	want := []bool{false, false}
	for i := range want {
		if mask[i] != want[i] {
			t.Fatalf("mask = %v, want %v", mask, want)
		}
	}
}

func TestComputeScenarioS4(t *testing.T) {
	mask := maskFromElements(t,
		[]string{"same1", "same2"},
		[]string{"same1", "same2"})
	want := []bool{true, true}
	for i := range want {
		if mask[i] != want[i] {
			t.Fatalf("mask = %v, want %v", mask, want)
		}
	}
}

func TestComputeMatchesHashOnlyCompute(t *testing.T) {
	sets := [][2][]string{
		{{"alice", "bob", "carol"}, {"bob", "dave", "carol"}},
		{{"x", "y"}, {"u", "v"}},
		{{"same1", "same2"}, {"same1", "same2"}},
	}
	for _, pair := range sets {
		hashA, err := HashStringsToFlat(pair[0], nil)
		if err != nil {
			t.Fatalf("HashStringsToFlat(a): %v", err)
		}
		hashB, err := HashStringsToFlat(pair[1], nil)
		if err != nil {
			t.Fatalf("HashStringsToFlat(b): %v", err)
		}
		a := make([][]byte, len(hashA))
		for i := range hashA {
			a[i] = hashA[i][:]
		}
		b := make([][]byte, len(hashB))
		for i := range hashB {
			b[i] = hashB[i][:]
		}

		ctx, err := NewContext(len(a), HashDigestSize*8)
		if err != nil {
			t.Fatalf("NewContext: %v", err)
		}
		gcMask, err := Compute(ctx, a, b)
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		naiveMask, err := HashOnlyCompute(ctx, a, b)
		if err != nil {
			t.Fatalf("HashOnlyCompute: %v", err)
		}
		for i := range gcMask {
			if gcMask[i] != naiveMask[i] {
				t.Fatalf("Compute and HashOnlyCompute disagree at %d: %v vs %v",
					i, gcMask, naiveMask)
			}
		}
	}
}

func TestComputeRejectsCapacityExceeded(t *testing.T) {
	ctx, err := NewContext(1, 8)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	a := [][]byte{{1}, {2}}
	b := [][]byte{{1}, {2}}
	if _, err := Compute(ctx, a, b); err == nil {
		t.Fatalf("expected capacity exceeded error")
	}
}

func TestComputeRejectsElementSizeMismatch(t *testing.T) {
	ctx, err := NewContext(4, 16)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	a := [][]byte{{1}}
	b := [][]byte{{1, 0}}
	if _, err := Compute(ctx, a, b); err == nil {
		t.Fatalf("expected element size mismatch error")
	}
}

func TestComputeEmptySetsReturnsNilMask(t *testing.T) {
	ctx, err := NewContext(4, 16)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	mask, err := Compute(ctx, nil, nil)
	if err == nil {
		t.Fatalf("expected error for nil input slices")
	}
	_ = mask

	mask, err = Compute(ctx, [][]byte{}, [][]byte{})
	if err != nil {
		t.Fatalf("Compute with empty sets: %v", err)
	}
	if len(mask) != 0 {
		t.Fatalf("expected empty mask, got %v", mask)
	}
}

func TestProtoSimulateAgrees(t *testing.T) {
	hashA, err := HashStringsToFlat([]string{"alice", "bob", "carol"}, nil)
	if err != nil {
		t.Fatalf("HashStringsToFlat(a): %v", err)
	}
	hashB, err := HashStringsToFlat([]string{"bob", "dave", "carol"}, nil)
	if err != nil {
		t.Fatalf("HashStringsToFlat(b): %v", err)
	}
	a := make([][]byte, len(hashA))
	for i := range hashA {
		a[i] = hashA[i][:]
	}
	b := make([][]byte, len(hashB))
	for i := range hashB {
		b[i] = hashB[i][:]
	}

	agree, err := ProtoSimulate(a, b, HashDigestSize*8)
	if err != nil {
		t.Fatalf("ProtoSimulate: %v", err)
	}
	if !agree {
		t.Fatalf("ProtoSimulate: two independent runs disagreed")
	}
}
