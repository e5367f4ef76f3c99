// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"
	"io"
)

// to control the print routine
type branch int

const (
	rootBranch  branch = iota
	leftBranch  branch = iota
	rightBranch branch = iota
)

// Print - display an ASCII graphic representation of the tree
//
// toString renders a record, nil prints it as hex. Returns the
// maximum depth of the tree
func (tree *Tree) Print(w io.Writer, toString func([]byte) string) int {
	if nil == toString {
		toString = func(r []byte) string {
			return fmt.Sprintf("%x", r)
		}
	}
	return printTree(w, tree.root, "", rootBranch, 1, toString)
}

// internal print - returns the maximum depth below and including tree
func printTree(w io.Writer, tree *node, prefix string, br branch, depth int, toString func([]byte) string) int {
	if nil == tree {
		return depth - 1
	}
	rd := depth
	ld := depth
	if nil != tree.right {
		t := "       "
		if leftBranch == br {
			t = "|      "
		}
		rd = printTree(w, tree.right, prefix+t, rightBranch, depth+1, toString)
	}
	switch br {
	case rootBranch:
		fmt.Fprintf(w, "%s|------+ ", prefix)
	case leftBranch:
		fmt.Fprintf(w, "%s\\------+ ", prefix)
	case rightBranch:
		fmt.Fprintf(w, "%s/------+ ", prefix)
	}
	fmt.Fprintf(w, "%s  (H-%d) %+2d @%d\n", toString(tree.data), tree.height, tree.balance(), depth)
	if nil != tree.left {
		t := "       "
		if rightBranch == br {
			t = "|      "
		}
		ld = printTree(w, tree.left, prefix+t, leftBranch, depth+1, toString)
	}
	if rd > ld {
		return rd
	}
	return ld
}
