//
// prf_test.go
//
// Copyright (c) 2024 Markku Rossi
//
// All rights reserved.
//

package label

import "testing"

func TestDeriveDeltaPermuteBit(t *testing.T) {
	delta, err := DeriveDelta(DefaultKey)
	if err != nil {
		t.Fatalf("DeriveDelta: %v", err)
	}
	if delta.PermuteBit() != 1 {
		t.Fatalf("expected delta permute bit 1, got %d", delta.PermuteBit())
	}
}

func TestDeriveDeltaDeterministic(t *testing.T) {
	a, err := DeriveDelta(DefaultKey)
	if err != nil {
		t.Fatalf("DeriveDelta: %v", err)
	}
	b, err := DeriveDelta(DefaultKey)
	if err != nil {
		t.Fatalf("DeriveDelta: %v", err)
	}
	if a != b {
		t.Fatalf("expected deterministic delta for a fixed key")
	}
}

func TestDeriveWireLabel0PermuteBit(t *testing.T) {
	for _, w := range []uint16{0, 1, 2, 255, 256, 65535} {
		l0, err := DeriveWireLabel0(DefaultKey, w)
		if err != nil {
			t.Fatalf("DeriveWireLabel0(%d): %v", w, err)
		}
		if l0.PermuteBit() != 0 {
			t.Fatalf("wire %d: expected permute bit 0, got %d", w,
				l0.PermuteBit())
		}
	}
}

func TestDeriveWireLabel0Distinct(t *testing.T) {
	a, err := DeriveWireLabel0(DefaultKey, 0)
	if err != nil {
		t.Fatalf("DeriveWireLabel0: %v", err)
	}
	b, err := DeriveWireLabel0(DefaultKey, 1)
	if err != nil {
		t.Fatalf("DeriveWireLabel0: %v", err)
	}
	if a.Equal(b) {
		t.Fatalf("expected distinct wires to derive distinct labels")
	}
}

func TestGateKeystreamDistinctRows(t *testing.T) {
	ka, _ := DeriveWireLabel0(DefaultKey, 0)
	kb, _ := DeriveWireLabel0(DefaultKey, 1)
	delta, _ := DeriveDelta(DefaultKey)
	ka1 := ka.Xor(delta)
	kb1 := kb.Xor(delta)

	seen := map[Label]bool{}
	for _, pair := range [][2]Label{{ka, kb}, {ka, kb1}, {ka1, kb}, {ka1, kb1}} {
		row := byte(pair[0].PermuteBit()<<1 | pair[1].PermuteBit())
		ks, err := GateKeystream(DefaultKey, pair[0], pair[1], 0, row)
		if err != nil {
			t.Fatalf("GateKeystream: %v", err)
		}
		if seen[ks] {
			t.Fatalf("keystream collision across distinct rows")
		}
		seen[ks] = true
	}
}
