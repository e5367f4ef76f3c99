// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avlindex/fault"
)

// consistency failures
const (
	ErrBadHeight     = fault.ProcessError("node height is inconsistent")
	ErrCountMismatch = fault.ProcessError("node count is inconsistent")
	ErrOutOfOrder    = fault.ProcessError("records are out of order")
	ErrUnbalanced    = fault.ProcessError("node is unbalanced")
)

// Check - verify heights, balance factors, ordering and count
func (tree *Tree) Check() error {
	n, _, err := tree.check(tree.root, nil)
	if nil != err {
		return err
	}
	if n != tree.count {
		tree.report("check: count: %d  reachable nodes: %d", tree.count, n)
		return ErrCountMismatch
	}
	return nil
}

// internal: consistency checker, returns the number of nodes and
// the highest record in the sub-tree; lower is the highest record
// already seen in order
func (tree *Tree) check(p *node, lower []byte) (int, []byte, error) {
	if nil == p {
		return 0, lower, nil
	}
	nl, lower, err := tree.check(p.left, lower)
	if nil != err {
		return 0, nil, err
	}
	if nil != lower && tree.compare(lower, p.data) >= 0 {
		tree.report("check: node: %x  not above: %x", p.data, lower)
		return 0, nil, ErrOutOfOrder
	}
	nr, upper, err := tree.check(p.right, p.data)
	if nil != err {
		return 0, nil, err
	}

	hl := height(p.left)
	hr := height(p.right)
	h := 1 + hl
	if hr > hl {
		h = 1 + hr
	}
	if h != p.height {
		tree.report("check: node: %x  height: %d  expected: %d", p.data, p.height, h)
		return 0, nil, ErrBadHeight
	}
	if b := hl - hr; b < -1 || b > 1 {
		tree.report("check: node: %x  balance: %d", p.data, b)
		return 0, nil, ErrUnbalanced
	}
	return 1 + nl + nr, upper, nil
}
