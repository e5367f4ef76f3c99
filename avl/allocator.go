// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avlindex/fault"
)

// per-tree node allocator
type allocator struct {
	elementSize int
	limit       int   // maximum nodes in use, 0 = unlimited
	pool        *node // linked list of reclaimed nodes (through left)
	inUse       int   // nodes currently in the tree
	totalNodes  int   // total nodes created
	freeNodes   int   // number of nodes in the pool
}

// allocate a new leaf holding a copy of the record, reuses reclaimed
// nodes and their record storage if any are available
func (a *allocator) newNode(data []byte) (*node, error) {
	if a.limit > 0 && a.inUse >= a.limit {
		return nil, fault.ErrAllocationLimit
	}
	if nil == a.pool {
		if 0 != a.freeNodes {
			fault.Panic("avl: node pool corrupt")
		}
		a.totalNodes += 1
		a.inUse += 1
		p := &node{
			data:   make([]byte, a.elementSize),
			height: 1,
		}
		copy(p.data, data)
		return p, nil
	}
	p := a.pool
	a.pool = p.left
	p.left = nil // ensure freelist pointer is cleared
	p.right = nil
	p.height = 1
	copy(p.data, data)
	a.freeNodes -= 1
	a.inUse += 1
	return p, nil
}

// reclaim a node and keep it in a pool
func (a *allocator) freeNode(p *node) {
	p.right = nil
	p.height = 0
	p.left = a.pool // use as free list pointer
	a.pool = p
	a.freeNodes += 1
	a.inUse -= 1
}

// reclaim a whole sub-tree
func (a *allocator) freeTree(p *node) {
	if nil == p {
		return
	}
	a.freeTree(p.left)
	a.freeTree(p.right)
	a.freeNode(p)
}

// Nodes - allocator statistics: nodes ever created and nodes waiting
// in the pool for reuse
func (tree *Tree) Nodes() (total int, free int) {
	return tree.pool.totalNodes, tree.pool.freeNodes
}
