// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// direction of a single rotation
type rotation int

const (
	rotateLeft  rotation = iota // right child becomes the sub-tree root
	rotateRight rotation = iota // left child becomes the sub-tree root
)

// height of a possibly empty sub-tree
func height(p *node) int {
	if nil == p {
		return 0
	}
	return p.height
}

// recompute height from the children
func (p *node) fixHeight() {
	hl := height(p.left)
	hr := height(p.right)
	if hl > hr {
		p.height = 1 + hl
	} else {
		p.height = 1 + hr
	}
}

// balance factor: height(left) - height(right)
func (p *node) balance() int {
	if nil == p {
		return 0
	}
	return height(p.left) - height(p.right)
}

// single rotation, returns the new sub-tree root
//
// the displaced inner grandchild moves across to the old root and
// both heights are recomputed bottom-up
func rotate(p *node, direction rotation) *node {
	var top *node
	switch direction {
	case rotateRight:
		top = p.left
		p.left = top.right
		top.right = p
	default:
		top = p.right
		p.right = top.left
		top.left = p
	}
	p.fixHeight()
	top.fixHeight()
	return top
}
