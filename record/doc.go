// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - ordering policy shared by the in-memory tree and
// the on-disk index
//
// A record is an opaque fixed-size byte slice.  Its order is defined
// entirely by a caller supplied comparator which must be a strict
// total order for the lifetime of any structure using it.
package record
