// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package diskindex

import (
	"io"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/avlindex/fault"
)

// Builder - threads a sorted block of records into a tree
type Builder struct {
	file   io.WriterAt
	layout Layout
	log    *logger.L
}

// NewBuilder - create a builder for one file, log may be nil
func NewBuilder(file io.WriterAt, layout Layout, log *logger.L) (*Builder, error) {
	if nil == file {
		return nil, fault.ErrMissingFile
	}
	if err := layout.validForBuild(); nil != err {
		return nil, err
	}
	return &Builder{
		file:   file,
		layout: layout,
		log:    log,
	}, nil
}

// Build - convenience wrapper for a single build without logging
func Build(file io.WriterAt, start int64, count int64, layout Layout) (int64, error) {
	b, err := NewBuilder(file, layout, nil)
	if nil != err {
		return 0, err
	}
	return b.Build(start, count)
}

// Build - link count records starting at file offset start
//
// the records must already be sorted and contiguous; only the two
// child fields of each trailer are written.  Returns the offset of
// the root record (the median of the whole range)
func (b *Builder) Build(start int64, count int64) (int64, error) {
	if start < 0 {
		return 0, fault.ErrInvalidOffset
	}
	if count <= 0 {
		return 0, fault.ErrInvalidRecordCount
	}

	root, err := b.build(start, count)
	if nil != err {
		if nil != b.log {
			b.log.Errorf("build: start: %d  count: %d  error: %s", start, count, err)
		}
		return 0, err
	}

	if nil != b.log {
		b.log.Debugf("build: start: %d  count: %d  root: %d", start, count, root)
	}
	return root, nil
}

// internal: build one sub-range, returns the offset of its median
func (b *Builder) build(start int64, count int64) (int64, error) {

	// the median is reserved, lower half goes left, the rest right
	leftCount := (count - 1) / 2
	rightCount := (count - 1) - leftCount

	root := start + leftCount*b.layout.RecordSize

	left := NoChild
	if leftCount > 0 {
		subtree, err := b.build(start, leftCount)
		if nil != err {
			return 0, err
		}
		left = subtree
	}

	right := NoChild
	if rightCount > 0 {
		subtree, err := b.build(root+b.layout.RecordSize, rightCount)
		if nil != err {
			return 0, err
		}
		right = subtree
	}

	// absent children are written as zero so a rebuild over an
	// old index leaves no stale links
	err := writeOffset(b.file, root+b.layout.leftField(), encodeChild(left))
	if nil != err {
		return 0, err
	}
	err = writeOffset(b.file, root+b.layout.rightField(), encodeChild(right))
	if nil != err {
		return 0, err
	}
	return root, nil
}
