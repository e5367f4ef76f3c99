// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package diskindex - binary search tree threaded through sorted
// fixed-size records in a file
//
// A block of index records, already sorted and contiguous, is turned
// into an implicit balanced tree by writing the file offsets of each
// record's children into its trailer.  The root of each sub-range is
// its median record.  The trailer is the last three little-endian
// int64 fields of the record:
//
//   [ key ... | payload offset | left child | right child ]
//
// The payload offset locates the data record that the index entry
// refers to.  Child fields hold the child's file offset plus one so
// that zero always means "no child", even for a record stored at
// offset zero.
//
// All file access is positional (ReadAt/WriteAt) so the seek offset
// of a shared file handle is never disturbed.  Concurrent use of a
// Searcher is not supported.
package diskindex
