// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package diskindex

import (
	"io"
	"sort"

	"github.com/bitmark-inc/avlindex/fault"
	"github.com/bitmark-inc/avlindex/record"
)

// Entry - one index entry before it is written
type Entry struct {
	Key     []byte // copied to the front of the index record
	Payload int64  // file offset of the data record
}

// WriteEntries - encode, sort and write a block of index records
//
// records are ordered with compare (stable, so equal keys keep the
// order of entries) and written contiguously from start with empty
// trailers, ready for Build.  Returns the offset just past the block
func WriteEntries(file io.WriterAt, start int64, entries []Entry, layout Layout, compare record.Comparator) (int64, error) {
	if nil == file {
		return 0, fault.ErrMissingFile
	}
	if nil == compare {
		return 0, fault.ErrMissingComparator
	}
	if start < 0 {
		return 0, fault.ErrInvalidOffset
	}

	records := make([][]byte, 0, len(entries))
	for _, e := range entries {
		r, err := layout.NewRecord(e.Key, e.Payload)
		if nil != err {
			return 0, err
		}
		records = append(records, r)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return compare(records[i], records[j]) < 0
	})

	// single write of the whole block
	block := make([]byte, 0, int64(len(records))*layout.RecordSize)
	for _, r := range records {
		block = append(block, r...)
	}
	if err := writeAt(file, block, start); nil != err {
		return 0, err
	}
	return start + int64(len(block)), nil
}
