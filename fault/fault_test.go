// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/avlindex/fault"
)

var (
	ErrAllocationOne = fault.AllocationError("allocation one")
	ErrAllocationTwo = fault.AllocationError("allocation two")
	ErrExistsOne     = fault.ExistsError("exists one ")
	ErrExistsTwo     = fault.ExistsError("exists two")
	ErrInvalidOne    = fault.InvalidError("invalid one")
	ErrInvalidTwo    = fault.InvalidError("invalid two")
	ErrNotFoundOne   = fault.NotFoundError("not found one")
	ErrNotFoundTwo   = fault.NotFoundError("not found two")
	ErrProcessOne    = fault.ProcessError("process one")
	ErrProcessTwo    = fault.ProcessError("process two")
	ErrIOOne         = fault.NewIOError("read", 24, io.ErrUnexpectedEOF)
	ErrIOTwo         = fmt.Errorf("wrapped: %w", fault.NewIOError("write", 48, io.ErrShortWrite))
)

// test that the various errors can be subclassed
func TestClasses(t *testing.T) {
	errorList := []struct {
		err        error
		allocation bool
		exists     bool
		invalid    bool
		notFound   bool
		process    bool
		io         bool
	}{
		{ErrAllocationOne, true, false, false, false, false, false},
		{ErrAllocationTwo, true, false, false, false, false, false},
		{ErrExistsOne, false, true, false, false, false, false},
		{ErrExistsTwo, false, true, false, false, false, false},
		{ErrInvalidOne, false, false, true, false, false, false},
		{ErrInvalidTwo, false, false, true, false, false, false},
		{ErrNotFoundOne, false, false, false, true, false, false},
		{ErrNotFoundTwo, false, false, false, true, false, false},
		{ErrProcessOne, false, false, false, false, true, false},
		{ErrProcessTwo, false, false, false, false, true, false},
		{ErrIOOne, false, false, false, false, false, true},
		{ErrIOTwo, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrAllocation(err) != e.allocation {
			t.Errorf("%d: expected 'allocation' == %v for err = %v", i, e.allocation, err)
		}
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrIO(err) != e.io {
			t.Errorf("%d: expected 'io' == %v for err = %v", i, e.io, err)
		}
	}
}

func TestIOErrorUnwrap(t *testing.T) {
	assert.Nil(t, fault.NewIOError("read", 0, nil), "nil error must stay nil")

	assert.True(t, errors.Is(ErrIOOne, io.ErrUnexpectedEOF), "underlying error lost")
	assert.True(t, errors.Is(ErrIOTwo, io.ErrShortWrite), "underlying error lost through wrapping")
	assert.Equal(t, "read at offset: 24 failed: unexpected EOF", ErrIOOne.Error())
}
