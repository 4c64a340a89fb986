//
// persistence.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

// Package persistence implements the engine's share-to-disk log, the
// "Transactions-P{id}.data" append/random-access file: a flat binary
// concatenation of packed (A, Mac) pairs, read back from an arbitrary
// byte offset and appended to at the end.
package persistence

import (
	"fmt"
	"io"
	"os"

	"github.com/spdzgo/runtime/field"
	"github.com/spdzgo/runtime/octetstream"
	"github.com/spdzgo/runtime/share"
)

// EOF and MissingFile are the end-position sentinels
// read_shares_from_file reports: -1 means the read ran past the end
// of the file, -2 means the file does not exist at all.
const (
	EOF         = -1
	MissingFile = -2
)

// Store is the per-party transaction log of authenticated shares for
// one field, rooted at a directory following the prior design's
// Persistence/Transactions-P{id}.data naming convention.
type Store struct {
	Path  string
	Field field.Field
}

// NewStore names the transaction log for partyID under dir ("" selects
// the current working directory).
func NewStore(dir string, partyID int, f field.Field) *Store {
	path := fmt.Sprintf("Transactions-P%d.data", partyID)
	if dir != "" {
		path = dir + "/" + path
	}
	return &Store{Path: path, Field: f}
}

func (st *Store) shareSize() int {
	return 2 * st.Field.Size()
}

// Read implements read_shares_from_file: it reads size shares starting
// at byte offset startPosn. It returns (shares, endPosn, nil) on
// success; endPosn is EOF if the read ran past the end of the file. A
// missing file reports endPosn == MissingFile rather than an error.
func (st *Store) Read(startPosn int64, size int) ([]share.Share, int64, error) {
	f, err := os.Open(st.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, MissingFile, nil
		}
		return nil, 0, err
	}
	defer f.Close()

	stride := st.shareSize()
	buf := make([]byte, size*stride)
	n, err := f.ReadAt(buf, startPosn)
	if err != nil && err != io.EOF {
		return nil, 0, err
	}

	full := n / stride
	shares := make([]share.Share, full)
	os_ := octetstream.Wrap(buf[:full*stride])
	for i := 0; i < full; i++ {
		s, uerr := share.Unpack(os_, st.Field)
		if uerr != nil {
			return nil, 0, uerr
		}
		shares[i] = s
	}

	if full < size {
		return shares, EOF, nil
	}
	return shares, startPosn + int64(n), nil
}

// Write implements write_shares_to_file: it appends the given shares
// to the end of the file, creating it if necessary but never creating
// missing parent directories.
func (st *Store) Write(shares []share.Share) error {
	f, err := os.OpenFile(st.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	os_ := octetstream.New()
	for _, s := range shares {
		share.Pack(s, os_)
	}
	_, err = f.Write(os_.Bytes())
	return err
}
