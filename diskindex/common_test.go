// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package diskindex_test

import (
	"encoding/binary"
	"io/ioutil"
	"os"
	"testing"

	"github.com/bitmark-inc/avlindex/diskindex"
	"github.com/bitmark-inc/avlindex/record"
)

// eight byte big endian keys at the front of each index record
const keySize = 8

// index records: key + trailer
var testLayout = diskindex.Layout{
	RecordSize:  keySize + diskindex.TrailerSize,
	PayloadSize: 16,
}

var keyCompare = record.KeyRange{Offset: 0, Length: keySize}.Compare

func makeKey(n uint64) []byte {
	b := make([]byte, keySize)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// create an empty scratch file, removed by the returned function
func tempFile(t *testing.T) (*os.File, func()) {
	f, err := ioutil.TempFile("", "diskindex-*.db")
	if nil != err {
		t.Fatalf("create temporary file error: %s", err)
	}
	return f, func() {
		f.Close()
		os.Remove(f.Name())
	}
}

// write count index records with keys 10, 20, 30, … each referring
// to itself (PayloadSize == RecordSize)
func writeSelfReferencing(t *testing.T, f *os.File, count int) diskindex.Layout {
	layout := diskindex.Layout{
		RecordSize:  testLayout.RecordSize,
		PayloadSize: testLayout.RecordSize,
	}
	for i := 0; i < count; i += 1 {
		offset := int64(i) * layout.RecordSize
		r, err := layout.NewRecord(makeKey(uint64(10*(i+1))), offset)
		if nil != err {
			t.Fatalf("new record error: %s", err)
		}
		if _, err := f.WriteAt(r, offset); nil != err {
			t.Fatalf("write error: %s", err)
		}
	}
	return layout
}

// read one index record back
func readRecord(t *testing.T, f *os.File, layout diskindex.Layout, offset int64) []byte {
	r := make([]byte, layout.RecordSize)
	if _, err := f.ReadAt(r, offset); nil != err {
		t.Fatalf("read at: %d  error: %s", offset, err)
	}
	return r
}
