// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the catalogue of built indexes
//
// maintain separate pools of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. int64        = big endian 8 bytes
// 4. name         = UTF-8 index name, 1..255 bytes, no control characters
//
// Indexes:
//
//   I ++ name                  - one built index
//                                data: start ++ count ++ record size ++ payload size ++ root ++ file name
//
// Version:
//
//   0x00 ++ "VERSION"          - catalogue format
//                                data: big endian uint32
package storage
