// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AllocationError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAllocationLimit          = AllocationError("node allocation limit reached")
	ErrAlreadyInitialised       = ExistsError("already initialised")
	ErrConfigurationNotTable    = InvalidError("configuration must return a table")
	ErrCorruptIndex             = ProcessError("index structure is corrupt")
	ErrFileAlreadyIndexed       = ExistsError("data file already holds another index")
	ErrIndexCountMismatch       = ProcessError("index record count does not match catalogue")
	ErrIndexNotFound            = NotFoundError("index is not in the catalogue")
	ErrIndexOutOfOrder          = ProcessError("index records are out of order")
	ErrInvalidArgumentCount     = InvalidError("wrong number of arguments")
	ErrInvalidElementSize       = InvalidError("element size is invalid")
	ErrInvalidIndexName         = InvalidError("index name is invalid")
	ErrInvalidKey               = InvalidError("key is invalid")
	ErrInvalidLayout            = InvalidError("record layout is invalid")
	ErrInvalidLoggerChannel     = InvalidError("invalid logger channel")
	ErrInvalidOffset            = InvalidError("file offset is invalid")
	ErrInvalidRecordCount       = InvalidError("record count is invalid")
	ErrInvalidRecordLength      = InvalidError("record length does not match element size")
	ErrKeyNotFound              = NotFoundError("key not found")
	ErrMissingComparator        = InvalidError("comparator is required")
	ErrMissingFile              = InvalidError("file is required")
	ErrNegativeSetting          = InvalidError("setting must not be negative")
	ErrNotInitialised           = ProcessError("not initialised")
	ErrPartialRecord            = InvalidError("data file ends with a partial record")
	ErrReadOnly                 = ProcessError("catalogue is read only")
	ErrRequiredConfigFile       = InvalidError("configuration file is required")
	ErrRequiredDataDirectory    = InvalidError("data directory is required")
	ErrTruncatedCatalogueRecord = ProcessError("truncated catalogue record")
	ErrUnknownCommand           = InvalidError("unknown command")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AllocationError) Error() string { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e ProcessError) Error() string    { return string(e) }

// determine the class of an error
func IsErrAllocation(e error) bool { _, ok := e.(AllocationError); return ok }
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
