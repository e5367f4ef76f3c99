// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// IOError - a failed read or write at a specific file offset
type IOError struct {
	Operation string // "read" or "write"
	Offset    int64  // file offset of the access
	Err       error  // underlying error
}

// Error - the error interface method
func (e *IOError) Error() string {
	return fmt.Sprintf("%s at offset: %d failed: %s", e.Operation, e.Offset, e.Err)
}

// Unwrap - expose the underlying error
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError - wrap an I/O error; nil stays nil
func NewIOError(operation string, offset int64, err error) error {
	if nil == err {
		return nil
	}
	return &IOError{
		Operation: operation,
		Offset:    offset,
		Err:       err,
	}
}

// IsErrIO - true if any error in the chain is an I/O failure
func IsErrIO(e error) bool {
	var ioErr *IOError
	return errors.As(e, &ioErr)
}
