// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package diskindex

//go:generate mockgen -destination=mocks/file.go -package=mocks github.com/bitmark-inc/avlindex/diskindex File

import (
	"io"

	"github.com/bitmark-inc/avlindex/fault"
)

// File - positional access to an index file, e.g. *os.File
type File interface {
	io.ReaderAt
	io.WriterAt
}

// read exactly len(buffer) bytes
func readAt(file io.ReaderAt, buffer []byte, offset int64) error {
	if offset < 0 {
		return fault.ErrInvalidOffset
	}
	n, err := file.ReadAt(buffer, offset)
	if n == len(buffer) {
		// io.ReaderAt may report EOF together with a full read
		return nil
	}
	if nil == err || io.EOF == err {
		err = io.ErrUnexpectedEOF
	}
	return fault.NewIOError("read", offset, err)
}

// write all of buffer
func writeAt(file io.WriterAt, buffer []byte, offset int64) error {
	if offset < 0 {
		return fault.ErrInvalidOffset
	}
	n, err := file.WriteAt(buffer, offset)
	if nil == err && n != len(buffer) {
		err = io.ErrShortWrite
	}
	return fault.NewIOError("write", offset, err)
}

// write a single trailer field
func writeOffset(file io.WriterAt, offset int64, n int64) error {
	buffer := make([]byte, OffsetSize)
	putOffset(buffer, n)
	return writeAt(file, buffer, offset)
}
