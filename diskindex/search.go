// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package diskindex

import (
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/avlindex/fault"
	"github.com/bitmark-inc/avlindex/record"
)

// one decoded index record
type indexNode struct {
	data    []byte // whole index record, read only
	payload int64
	left    int64 // NoChild if absent
	right   int64 // NoChild if absent
}

// Searcher - read-only access to an index built by Builder
type Searcher struct {
	file         io.ReaderAt
	layout       Layout
	compare      record.Comparator
	payloadOrder record.Comparator
	log          *logger.L
	nodes        *cache.Cache
	reads        int
}

// SearcherOption - optional setting for NewSearcher
type SearcherOption func(*Searcher)

// WithLogger - debug and error output
func WithLogger(log *logger.L) SearcherOption {
	return func(s *Searcher) {
		s.log = log
	}
}

// WithCache - keep decoded index records for expiry, purging
// expired ones every cleanup interval
//
// the cache belongs to the searcher, reuse one searcher across lookups
// for it to take effect
func WithCache(expiry time.Duration, cleanup time.Duration) SearcherOption {
	return func(s *Searcher) {
		s.nodes = cache.New(expiry, cleanup)
	}
}

// WithPayloadOrder - sort the results of All with this comparator
// over the payload records instead of index order
func WithPayloadOrder(compare record.Comparator) SearcherOption {
	return func(s *Searcher) {
		s.payloadOrder = compare
	}
}

// NewSearcher - bind a file, layout and comparator
//
// compare is called as compare(indexRecord, key)
func NewSearcher(file io.ReaderAt, layout Layout, compare record.Comparator, options ...SearcherOption) (*Searcher, error) {
	if nil == file {
		return nil, fault.ErrMissingFile
	}
	if nil == compare {
		return nil, fault.ErrMissingComparator
	}
	if err := layout.validForSearch(); nil != err {
		return nil, err
	}
	s := &Searcher{
		file:    file,
		layout:  layout,
		compare: compare,
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// SearchFirst - convenience wrapper for a single uncached search
func SearchFirst(file io.ReaderAt, root int64, key []byte, layout Layout, compare record.Comparator) ([]byte, error) {
	s, err := NewSearcher(file, layout, compare)
	if nil != err {
		return nil, err
	}
	return s.First(root, key)
}

// SearchAll - convenience wrapper for a single uncached search
func SearchAll(file io.ReaderAt, root int64, key []byte, layout Layout, compare record.Comparator) ([][]byte, error) {
	s, err := NewSearcher(file, layout, compare)
	if nil != err {
		return nil, err
	}
	return s.All(root, key)
}

// Reads - number of index records read from the file
func (s *Searcher) Reads() int {
	return s.reads
}

// Flush - drop all cached index records, needed after a rebuild
func (s *Searcher) Flush() {
	if nil != s.nodes {
		s.nodes.Flush()
	}
}

// First - the payload record of the first index record found equal
// to key, nil if there is none
func (s *Searcher) First(root int64, key []byte) ([]byte, error) {
	r, err := s.first(root, key, 0)
	if nil != err {
		s.errorf("first: root: %d  key: %x  error: %s", root, key, err)
		return nil, err
	}
	s.debugf("first: root: %d  key: %x  found: %v", root, key, nil != r)
	return r, nil
}

func (s *Searcher) first(offset int64, key []byte, depth int) ([]byte, error) {
	if depth >= maxDepth {
		return nil, fault.ErrCorruptIndex
	}
	n, err := s.readNode(offset)
	if nil != err {
		return nil, err
	}

	next := NoChild
	switch c := s.compare(n.data, key); {
	case c > 0: // n.data > key
		next = n.left
	case c < 0: // n.data < key
		next = n.right
	default:
		return s.readPayload(n.payload)
	}
	if NoChild == next {
		return nil, nil
	}
	return s.first(next, key, depth+1)
}

// All - the payload records of every index record equal to key
//
// by default results are in index order, equal keys keep the order
// their entries were given to WriteEntries; WithPayloadOrder sorts
// the results by payload record instead
//
// an empty result is not an error
func (s *Searcher) All(root int64, key []byte) ([][]byte, error) {
	results := [][]byte{}
	err := s.all(root, key, 0, &results)
	if nil != err {
		s.errorf("all: root: %d  key: %x  error: %s", root, key, err)
		return nil, err
	}
	if nil != s.payloadOrder {
		sort.SliceStable(results, func(i, j int) bool {
			return s.payloadOrder(results[i], results[j]) < 0
		})
	}
	s.debugf("all: root: %d  key: %x  found: %d", root, key, len(results))
	return results, nil
}

// duplicates may sit on either side of an equal record so both
// children are searched on equality
func (s *Searcher) all(offset int64, key []byte, depth int, results *[][]byte) error {
	if depth >= maxDepth {
		return fault.ErrCorruptIndex
	}
	n, err := s.readNode(offset)
	if nil != err {
		return err
	}

	c := s.compare(n.data, key)

	if c >= 0 && NoChild != n.left {
		if err := s.all(n.left, key, depth+1, results); nil != err {
			return err
		}
	}

	if 0 == c {
		payload, err := s.readPayload(n.payload)
		if nil != err {
			return err
		}
		*results = append(*results, payload)
	}

	if c <= 0 && NoChild != n.right {
		if err := s.all(n.right, key, depth+1, results); nil != err {
			return err
		}
	}
	return nil
}

// WalkFunc - called with the offset and contents of each index record
type WalkFunc func(offset int64, r []byte) error

// Walk - visit every index record in tree order, stops at the first
// visitor error
func (s *Searcher) Walk(root int64, visitor WalkFunc) error {
	return s.walk(root, visitor, 0)
}

func (s *Searcher) walk(offset int64, visitor WalkFunc, depth int) error {
	if depth >= maxDepth {
		return fault.ErrCorruptIndex
	}
	n, err := s.readNode(offset)
	if nil != err {
		return err
	}
	if NoChild != n.left {
		if err := s.walk(n.left, visitor, depth+1); nil != err {
			return err
		}
	}
	if err := visitor(offset, n.data); nil != err {
		return err
	}
	if NoChild != n.right {
		return s.walk(n.right, visitor, depth+1)
	}
	return nil
}

// fetch an index record, from the cache if possible
func (s *Searcher) readNode(offset int64) (*indexNode, error) {
	cacheKey := strconv.FormatInt(offset, 10)
	if nil != s.nodes {
		if n, ok := s.nodes.Get(cacheKey); ok {
			return n.(*indexNode), nil
		}
	}

	buffer := make([]byte, s.layout.RecordSize)
	if err := readAt(s.file, buffer, offset); nil != err {
		return nil, err
	}
	s.reads += 1

	payload, left, right := s.layout.Trailer(buffer)
	n := &indexNode{
		data:    buffer,
		payload: payload,
		left:    left,
		right:   right,
	}
	if nil != s.nodes {
		s.nodes.Set(cacheKey, n, cache.DefaultExpiration)
	}
	return n, nil
}

// fetch a data record, always a fresh buffer
func (s *Searcher) readPayload(offset int64) ([]byte, error) {
	buffer := make([]byte, s.layout.PayloadSize)
	if err := readAt(s.file, buffer, offset); nil != err {
		return nil, err
	}
	return buffer, nil
}

func (s *Searcher) debugf(format string, arguments ...interface{}) {
	if nil != s.log {
		s.log.Debugf(format, arguments...)
	}
}

func (s *Searcher) errorf(format string, arguments ...interface{}) {
	if nil != s.log {
		s.log.Errorf(format, arguments...)
	}
}
