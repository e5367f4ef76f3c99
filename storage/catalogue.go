// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"unicode"
	"unicode/utf8"

	"github.com/bitmark-inc/avlindex/fault"
)

// maximum bytes in an index name
const maxNameLength = 255

// five big endian int64 ahead of the file name
const packedFixedSize = 5 * 8

// IndexEntry - where a built index lives
type IndexEntry struct {
	File        string // data file holding records and index
	Start       int64  // offset of the first index record
	Count       int64  // number of index records
	RecordSize  int64  // bytes per index record
	PayloadSize int64  // bytes per data record
	Root        int64  // offset of the root index record
}

// NamedIndex - catalogue entry with its name
type NamedIndex struct {
	Name string
	IndexEntry
}

// Pack - convert an entry to its catalogue value
func (e *IndexEntry) Pack() []byte {
	buffer := make([]byte, packedFixedSize, packedFixedSize+len(e.File))
	binary.BigEndian.PutUint64(buffer[0:], uint64(e.Start))
	binary.BigEndian.PutUint64(buffer[8:], uint64(e.Count))
	binary.BigEndian.PutUint64(buffer[16:], uint64(e.RecordSize))
	binary.BigEndian.PutUint64(buffer[24:], uint64(e.PayloadSize))
	binary.BigEndian.PutUint64(buffer[32:], uint64(e.Root))
	return append(buffer, e.File...)
}

// UnpackIndexEntry - decode a catalogue value
func UnpackIndexEntry(buffer []byte) (*IndexEntry, error) {
	if len(buffer) <= packedFixedSize {
		return nil, fault.ErrTruncatedCatalogueRecord
	}
	return &IndexEntry{
		Start:       int64(binary.BigEndian.Uint64(buffer[0:])),
		Count:       int64(binary.BigEndian.Uint64(buffer[8:])),
		RecordSize:  int64(binary.BigEndian.Uint64(buffer[16:])),
		PayloadSize: int64(binary.BigEndian.Uint64(buffer[24:])),
		Root:        int64(binary.BigEndian.Uint64(buffer[32:])),
		File:        string(buffer[packedFixedSize:]),
	}, nil
}

func validName(name string) error {
	if 0 == len(name) || len(name) > maxNameLength || !utf8.ValidString(name) {
		return fault.ErrInvalidIndexName
	}
	for _, c := range name {
		if unicode.IsControl(c) {
			return fault.ErrInvalidIndexName
		}
	}
	return nil
}

// PutIndex - add or replace a catalogue entry
func PutIndex(name string, entry *IndexEntry) error {
	if err := validName(name); nil != err {
		return err
	}
	if 0 == len(entry.File) {
		return fault.ErrMissingFile
	}
	err := Pool.Indexes.Put([]byte(name), entry.Pack())
	if nil != err {
		return err
	}
	debugf("put: %q  file: %q  root: %d  count: %d", name, entry.File, entry.Root, entry.Count)
	return nil
}

// GetIndex - fetch a catalogue entry
func GetIndex(name string) (*IndexEntry, error) {
	if err := validName(name); nil != err {
		return nil, err
	}
	buffer, err := Pool.Indexes.Get([]byte(name))
	if nil != err {
		return nil, err
	}
	if nil == buffer {
		return nil, fault.ErrIndexNotFound
	}
	return UnpackIndexEntry(buffer)
}

// DeleteIndex - remove a catalogue entry, the data file is untouched
func DeleteIndex(name string) error {
	if err := validName(name); nil != err {
		return err
	}
	found, err := Pool.Indexes.Has([]byte(name))
	if nil != err {
		return err
	}
	if !found {
		return fault.ErrIndexNotFound
	}
	err = Pool.Indexes.Delete([]byte(name))
	if nil != err {
		return err
	}
	debugf("delete: %q", name)
	return nil
}

// ListIndexes - all catalogue entries in name order
func ListIndexes() ([]NamedIndex, error) {
	list := []NamedIndex{}
	err := Pool.Indexes.Map(func(e Element) error {
		entry, err := UnpackIndexEntry(e.Value)
		if nil != err {
			return err
		}
		list = append(list, NamedIndex{
			Name:       string(e.Key),
			IndexEntry: *entry,
		})
		return nil
	})
	if nil != err {
		return nil, err
	}
	return list, nil
}

func debugf(format string, arguments ...interface{}) {
	poolData.RLock()
	log := poolData.log
	poolData.RUnlock()
	if nil != log {
		log.Debugf(format, arguments...)
	}
}
