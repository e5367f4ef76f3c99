// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"bytes"
)

// Comparator - three way comparison of two records
//
// returns negative if a < b, zero if a == b, positive if a > b
type Comparator func(a []byte, b []byte) int

// ErrorSink - optional diagnostic output, e.g. (*logger.L).Errorf
type ErrorSink func(format string, arguments ...interface{})

// Copy - duplicate a record so that the result does not alias the input
func Copy(r []byte) []byte {
	if nil == r {
		return nil
	}
	c := make([]byte, len(r))
	copy(c, r)
	return c
}

// KeyRange - a key held in a fixed byte range of each record
type KeyRange struct {
	Offset int
	Length int
}

// Valid - check the range fits inside a record of the given size
func (k KeyRange) Valid(recordSize int) bool {
	return k.Offset >= 0 && k.Length > 0 && k.Offset+k.Length <= recordSize
}

// Extract - the key bytes of a record
//
// an argument that is exactly Length bytes is taken to be a bare key
func (k KeyRange) Extract(r []byte) []byte {
	if len(r) == k.Length {
		return r
	}
	end := k.Offset + k.Length
	if end > len(r) {
		end = len(r)
	}
	if k.Offset >= end {
		return nil
	}
	return r[k.Offset:end]
}

// Compare - comparator over the key range of two records (or keys)
func (k KeyRange) Compare(a []byte, b []byte) int {
	return bytes.Compare(k.Extract(a), k.Extract(b))
}
