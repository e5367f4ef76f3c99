// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/avlindex/fault"
)

// PoolHandle - one prefixed table
type PoolHandle struct {
	prefix byte
	limit  []byte
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// caller must hold the read lock
func writable() error {
	if nil == poolData.database {
		return fault.ErrNotInitialised
	}
	if poolData.readOnly {
		return fault.ErrReadOnly
	}
	return nil
}

// Put - store a key/value bytes pair to the database
func (p *PoolHandle) Put(key []byte, value []byte) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if err := writable(); nil != err {
		return err
	}
	return poolData.database.Put(p.prefixKey(key), value, nil)
}

// Delete - remove a key from the database
func (p *PoolHandle) Delete(key []byte) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if err := writable(); nil != err {
		return err
	}
	return poolData.database.Delete(p.prefixKey(key), nil)
}

// Get - read a value for a given key
//
// a missing key gives nil without error
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return nil, fault.ErrNotInitialised
	}
	value, err := poolData.database.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}
	return value, nil
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return false, fault.ErrNotInitialised
	}
	return poolData.database.Has(p.prefixKey(key), nil)
}

// Map - call f for every element of the pool in key order
//
// keys are returned without the prefix, both slices are copies
func (p *PoolHandle) Map(f func(e Element) error) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return fault.ErrNotInitialised
	}

	searchRange := ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	}

	iter := poolData.database.NewIterator(&searchRange, nil)
	defer iter.Release()

	for iter.Next() {
		key := iter.Key()
		value := iter.Value()

		e := Element{
			Key:   make([]byte, len(key)-1),
			Value: make([]byte, len(value)),
		}
		copy(e.Key, key[1:])
		copy(e.Value, value)

		if err := f(e); nil != err {
			return err
		}
	}
	return iter.Error()
}
