// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package avl - an AVL balanced tree of fixed-size byte records
//
// Note: an individual tree is not thread safe, so either access only
//       in a single go routine or use mutex/rwmutex to restrict
//       access.
//
// Each node keeps its own height and exclusively owns its two
// sub-trees; there are no parent pointers.  Records are copied into
// the node on insert and the order is fixed by the comparator given
// to New.  Inserting a record that compares equal to one already in
// the tree is a no-op, it does not overwrite.
//
// Deleting a node with two children copies the in-order successor
// into that node and then removes the successor from the right
// sub-tree, so record storage of an interior node is reused.
package avl
