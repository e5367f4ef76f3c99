// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avlindex/fault"
)

// Insert - insert a copy of a record into the tree
//
// returns false with a nil error if an equal record is already
// present, the tree is left unchanged on error
func (tree *Tree) Insert(r []byte) (bool, error) {
	if len(r) != tree.elementSize {
		tree.report("insert: record length: %d  expected: %d", len(r), tree.elementSize)
		return false, fault.ErrInvalidRecordLength
	}
	root, added, err := tree.insert(tree.root, r)
	if nil != err {
		tree.report("insert: %x  error: %s", r, err)
		return false, err
	}
	tree.root = root
	if added {
		tree.count += 1
	}
	return added, nil
}

// InsertAll - insert each record in turn
//
// stops at the first error, returns the number of records added
func (tree *Tree) InsertAll(records [][]byte) (int, error) {
	n := 0
	for _, r := range records {
		added, err := tree.Insert(r)
		if nil != err {
			return n, err
		}
		if added {
			n += 1
		}
	}
	return n, nil
}

// internal routine for insert, returns the possibly rotated sub-tree
func (tree *Tree) insert(p *node, key []byte) (*node, bool, error) {
	if nil == p { // insert new node
		n, err := tree.pool.newNode(key)
		if nil != err {
			return nil, false, err
		}
		return n, true, nil
	}

	switch c := tree.compare(p.data, key); {
	case c > 0: // p.data > key
		l, added, err := tree.insert(p.left, key)
		if nil != err || !added {
			return p, false, err
		}
		p.left = l
	case c < 0: // p.data < key
		r, added, err := tree.insert(p.right, key)
		if nil != err || !added {
			return p, false, err
		}
		p.right = r
	default: // duplicate: ignored
		return p, false, nil
	}

	p.fixHeight()

	// the new key is somewhere below the heavy child, compare
	// against it to decide between single and double rotation
	switch b := p.balance(); {
	case b > 1:
		if tree.compare(p.left.data, key) > 0 {
			// left-left
			return rotate(p, rotateRight), true, nil
		}
		// left-right
		p.left = rotate(p.left, rotateLeft)
		return rotate(p, rotateRight), true, nil

	case b < -1:
		if tree.compare(p.right.data, key) < 0 {
			// right-right
			return rotate(p, rotateLeft), true, nil
		}
		// right-left
		p.right = rotate(p.right, rotateRight)
		return rotate(p, rotateLeft), true, nil
	}
	return p, true, nil
}
