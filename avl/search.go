// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Search - find a specific item
//
// returns nil if not found.  The result is the tree's own storage,
// copy it if it must be preserved and never modify it
func (tree *Tree) Search(key []byte) []byte {
	p := search(tree.compare, key, tree.root)
	if nil == p {
		return nil
	}
	return p.data
}

// Has - true if a record equal to key is present
func (tree *Tree) Has(key []byte) bool {
	return nil != search(tree.compare, key, tree.root)
}

func search(compare func([]byte, []byte) int, key []byte, tree *node) *node {
	if nil == tree {
		return nil
	}

	switch c := compare(tree.data, key); {
	case c > 0: // tree.data > key
		return search(compare, key, tree.left)
	case c < 0: // tree.data < key
		return search(compare, key, tree.right)
	default:
		return tree
	}
}
