//
// persistence.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package processor

import (
	"github.com/spdzgo/runtime/persistence"
	"github.com/spdzgo/runtime/share"
)

// ReadSharesFromFile implements read_shares_from_file: it reads size
// shares from store starting at byte offset startPosn, installs them
// into Sp[destRegs[i]], and installs the resulting end-of-read byte
// offset (or the EOF/MissingFile sentinel) into Ci[endPosnReg].
func (p *Processor) ReadSharesFromFile(store *persistence.Store, startPosn int64, destRegs []int, endPosnReg int) error {
	shares, endPosn, err := store.Read(startPosn, len(destRegs))
	if err != nil {
		return NewError(ErrBackendCallFailure, "read_shares_from_file", err)
	}
	for i, reg := range destRegs {
		if i >= len(shares) {
			break
		}
		if err := p.Regs.SetSecretP(reg, shares[i]); err != nil {
			return err
		}
	}
	return p.Regs.SetInt(endPosnReg, endPosn)
}

// WriteSharesToFile implements write_shares_to_file: it appends the
// shares named by srcRegs to the end of store.
func (p *Processor) WriteSharesToFile(store *persistence.Store, srcRegs []int) error {
	shares := make([]share.Share, len(srcRegs))
	for i, reg := range srcRegs {
		s, err := p.Regs.SecretP(reg)
		if err != nil {
			return err
		}
		shares[i] = s
	}
	if err := store.Write(shares); err != nil {
		return NewError(ErrBackendCallFailure, "write_shares_to_file", err)
	}
	return nil
}
