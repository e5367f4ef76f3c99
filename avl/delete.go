// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avlindex/record"
)

// Delete - removes a specific item from the tree
//
// returns false if no record compared equal to key
func (tree *Tree) Delete(key []byte) bool {
	root, removed := tree.delete(tree.root, key)
	tree.root = root
	if removed {
		tree.count -= 1
	}
	return removed
}

// DeleteRoot - remove whichever record is currently at the root
func (tree *Tree) DeleteRoot() bool {
	if nil == tree.root {
		return false
	}
	// the root record buffer is rewritten during deletion
	return tree.Delete(record.Copy(tree.root.data))
}

// internal delete routine
func (tree *Tree) delete(p *node, key []byte) (*node, bool) {
	if nil == p { // key not in tree
		return nil, false
	}

	removed := false
	switch c := tree.compare(p.data, key); {
	case c > 0: // p.data > key
		p.left, removed = tree.delete(p.left, key)
	case c < 0: // p.data < key
		p.right, removed = tree.delete(p.right, key)
	default: // found: delete p
		if nil == p.left || nil == p.right {
			// zero or one child: splice the child up
			child := p.left
			if nil == child {
				child = p.right
			}
			tree.pool.freeNode(p)
			return child, true
		}

		// two children: take over the successor's record then
		// remove the successor, which has no left child
		successor := p.right.first()
		copy(p.data, successor.data)
		p.right, removed = tree.delete(p.right, p.data)
	}

	if !removed {
		return p, false
	}
	return rebalance(p), true
}

// restore balance after a deletion below p
//
// the removed key says nothing about direction here so the case is
// chosen from the balance of the heavy child
func rebalance(p *node) *node {
	p.fixHeight()

	switch b := p.balance(); {
	case b > 1:
		if p.left.balance() < 0 {
			// left-right
			p.left = rotate(p.left, rotateLeft)
		}
		return rotate(p, rotateRight)

	case b < -1:
		if p.right.balance() > 0 {
			// right-left
			p.right = rotate(p.right, rotateRight)
		}
		return rotate(p, rotateLeft)
	}
	return p
}
