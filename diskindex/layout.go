// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package diskindex

import (
	"encoding/binary"

	"github.com/bitmark-inc/avlindex/fault"
)

// trailer field sizes
const (
	OffsetSize  = 8              // bytes in one trailer field
	ChildSize   = 2 * OffsetSize // left + right
	TrailerSize = 3 * OffsetSize // payload + left + right
	NoChild     = int64(-1)      // decoded value of an absent child
	maxDepth    = 64             // deeper than any valid median-split tree
)

// Layout - sizes of the records involved in an index
type Layout struct {
	RecordSize  int64 // bytes per index record, trailer included
	PayloadSize int64 // bytes per data record referenced by the payload offset
}

// fields in an index record
func (l Layout) payloadField() int64 { return l.RecordSize - 3*OffsetSize }
func (l Layout) leftField() int64    { return l.RecordSize - 2*OffsetSize }
func (l Layout) rightField() int64   { return l.RecordSize - OffsetSize }

// KeySpace - bytes available in front of the trailer
func (l Layout) KeySpace() int64 {
	return l.RecordSize - TrailerSize
}

// the builder only touches the two child fields
func (l Layout) validForBuild() error {
	if l.RecordSize < ChildSize {
		return fault.ErrInvalidLayout
	}
	return nil
}

// the searcher also needs the payload field and a payload size
func (l Layout) validForSearch() error {
	if l.RecordSize < TrailerSize || l.PayloadSize <= 0 {
		return fault.ErrInvalidLayout
	}
	return nil
}

// NewRecord - an index record holding key and payload offset with
// an empty trailer
func (l Layout) NewRecord(key []byte, payload int64) ([]byte, error) {
	if err := l.validForSearch(); nil != err {
		return nil, err
	}
	if int64(len(key)) > l.KeySpace() {
		return nil, fault.ErrInvalidKey
	}
	if payload < 0 {
		return nil, fault.ErrInvalidOffset
	}
	r := make([]byte, l.RecordSize)
	copy(r, key)
	putOffset(r[l.payloadField():], payload)
	return r, nil
}

// Trailer - decode payload offset and child offsets of an index
// record, absent children are NoChild
func (l Layout) Trailer(r []byte) (payload int64, left int64, right int64) {
	payload = NoChild
	if l.RecordSize >= TrailerSize {
		payload = getOffset(r[l.payloadField():])
	}
	left = decodeChild(getOffset(r[l.leftField():]))
	right = decodeChild(getOffset(r[l.rightField():]))
	return payload, left, right
}

// child offsets are stored biased by one, zero is "no child"
func encodeChild(offset int64) int64 {
	if offset < 0 {
		return 0
	}
	return offset + 1
}

func decodeChild(stored int64) int64 {
	if stored <= 0 {
		return NoChild
	}
	return stored - 1
}

func putOffset(buffer []byte, n int64) {
	binary.LittleEndian.PutUint64(buffer[:OffsetSize], uint64(n))
}

func getOffset(buffer []byte) int64 {
	return int64(binary.LittleEndian.Uint64(buffer[:OffsetSize]))
}
