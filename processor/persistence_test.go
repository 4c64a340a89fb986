//
// persistence_test.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package processor

import (
	"testing"

	"github.com/spdzgo/runtime/env"
	"github.com/spdzgo/runtime/persistence"
)

func TestWriteThenReadSharesFromFile(t *testing.T) {
	withInputFiles(t, 0)

	proc, err := NewProcessor(&env.Config{}, newTestParams())
	if err != nil {
		t.Fatal(err)
	}
	defer proc.Close()

	proc.Regs.Reset(Sizes{Nsp: 4, Ni: 1})
	v := proc.ArithField.FromUint64(9)
	proc.Regs.SetSecretP(0, mkShare(v))
	proc.Regs.SetSecretP(1, mkShare(v))

	store := persistence.NewStore(t.TempDir(), proc.PartyID, proc.ArithField)
	if err := proc.WriteSharesToFile(store, []int{0, 1}); err != nil {
		t.Fatal(err)
	}

	if err := proc.ReadSharesFromFile(store, 0, []int{2, 3}, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := proc.Regs.SecretP(2); err != nil {
		t.Fatalf("expected Sp[2] populated: %v", err)
	}
	endPosn, _ := proc.Regs.Int(0)
	if endPosn <= 0 {
		t.Fatalf("expected a positive end position, got %d", endPosn)
	}
}
