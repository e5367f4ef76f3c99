// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avlindex/fault"
	"github.com/bitmark-inc/avlindex/record"
)

// a node in the tree
type node struct {
	left   *node  // left sub-tree
	right  *node  // right sub-tree
	data   []byte // record copy, always elementSize bytes
	height int    // 1 for a leaf
}

// Tree - type to hold the root node of a tree
type Tree struct {
	root        *node
	count       int
	elementSize int
	compare     record.Comparator
	onError     record.ErrorSink
	pool        allocator
}

// Option - optional setting for New
type Option func(*Tree)

// WithErrorSink - receive a message for each failed operation
func WithErrorSink(sink record.ErrorSink) Option {
	return func(tree *Tree) {
		tree.onError = sink
	}
}

// WithNodeLimit - fail inserts once this many nodes are in use (0 = no limit)
func WithNodeLimit(limit int) Option {
	return func(tree *Tree) {
		tree.pool.limit = limit
	}
}

// New - create an initially empty tree
//
// the comparator is bound for the whole life of the tree
func New(elementSize int, compare record.Comparator, options ...Option) (*Tree, error) {
	if elementSize <= 0 {
		return nil, fault.ErrInvalidElementSize
	}
	if nil == compare {
		return nil, fault.ErrMissingComparator
	}
	tree := &Tree{
		root:        nil,
		count:       0,
		elementSize: elementSize,
		compare:     compare,
		pool: allocator{
			elementSize: elementSize,
		},
	}
	for _, option := range options {
		option(tree)
	}
	if tree.pool.limit < 0 {
		return nil, fault.ErrInvalidRecordCount
	}
	return tree, nil
}

// IsEmpty - true if tree contains no data
func (tree *Tree) IsEmpty() bool {
	return nil == tree.root
}

// Count - number of nodes currently in the tree
func (tree *Tree) Count() int {
	return tree.count
}

// ElementSize - bytes per record
func (tree *Tree) ElementSize() int {
	return tree.elementSize
}

// Height - height of the root, 0 for an empty tree
func (tree *Tree) Height() int {
	return height(tree.root)
}

// Clear - discard every node, returning them to the pool
func (tree *Tree) Clear() {
	tree.pool.freeTree(tree.root)
	tree.root = nil
	tree.count = 0
}

// send a message to the error sink if one was set
func (tree *Tree) report(format string, arguments ...interface{}) {
	if nil != tree.onError {
		tree.onError(format, arguments...)
	}
}
