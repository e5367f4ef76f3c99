// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Visitor - called for each record during a traversal
type Visitor func(r []byte) error

// First - the record with the lowest key value, nil if empty
func (tree *Tree) First() []byte {
	p := tree.root.first()
	if nil == p {
		return nil
	}
	return p.data
}

// MinValue - same as First
func (tree *Tree) MinValue() []byte {
	return tree.First()
}

// internal: lowest node in a sub-tree
func (tree *node) first() *node {
	if tree == nil {
		return nil
	}
	for tree.left != nil {
		tree = tree.left
	}
	return tree
}

// Last - the record with the highest key value, nil if empty
func (tree *Tree) Last() []byte {
	p := tree.root.last()
	if nil == p {
		return nil
	}
	return p.data
}

// internal: highest node in a sub-tree
func (tree *node) last() *node {
	if tree == nil {
		return nil
	}
	for tree.right != nil {
		tree = tree.right
	}
	return tree
}

// Traverse - visit every record in ascending order
//
// stops at the first visitor error and returns it
func (tree *Tree) Traverse(visitor Visitor) error {
	err := traverse(tree.root, visitor)
	if nil != err {
		tree.report("traverse: visitor error: %s", err)
	}
	return err
}

func traverse(p *node, visitor Visitor) error {
	if nil == p {
		return nil
	}
	if err := traverse(p.left, visitor); nil != err {
		return err
	}
	if err := visitor(p.data); nil != err {
		return err
	}
	return traverse(p.right, visitor)
}

// Records - copies of all records in ascending order
func (tree *Tree) Records() [][]byte {
	records := make([][]byte, 0, tree.count)
	traverse(tree.root, func(r []byte) error {
		c := make([]byte, len(r))
		copy(c, r)
		records = append(records, c)
		return nil
	})
	return records
}
