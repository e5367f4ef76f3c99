// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/avlindex/avl"
	"github.com/bitmark-inc/avlindex/diskindex"
	"github.com/bitmark-inc/avlindex/fault"
	"github.com/bitmark-inc/avlindex/record"
	"github.com/bitmark-inc/avlindex/storage"
)

// keys sit at the front of index records
func (env *environment) indexCompare() record.Comparator {
	return record.KeyRange{
		Offset: 0,
		Length: env.configuration.Layout.KeyLength,
	}.Compare
}

// the bytes of a file in front of any catalogued index block, and
// the names of the indexes found in it
func indexedBy(fileName string, size int64) (int64, []string, error) {
	list, err := storage.ListIndexes()
	if nil != err {
		return 0, nil, err
	}
	names := []string{}
	for _, item := range list {
		if item.File != fileName {
			continue
		}
		names = append(names, item.Name)
		if item.Start < size {
			size = item.Start
		}
	}
	return size, names, nil
}

// the number of data records in a file that is to be indexed as name
//
// a data file carries a single index, only that name may rebuild it
func dataExtent(name string, fileName string, size int64, payloadSize int64) (int64, error) {
	size, names, err := indexedBy(fileName, size)
	if nil != err {
		return 0, err
	}
	for _, n := range names {
		if n != name {
			return 0, fault.ErrFileAlreadyIndexed
		}
	}
	if 0 != size%payloadSize {
		return 0, fault.ErrPartialRecord
	}
	if 0 == size {
		return 0, fault.ErrInvalidRecordCount
	}
	return size / payloadSize, nil
}

// read count data records from the start of a file
func readRecords(f *os.File, count int64, payloadSize int64) ([][]byte, error) {
	block := make([]byte, count*payloadSize)
	n, err := f.ReadAt(block, 0)
	if n != len(block) {
		if nil == err {
			err = fault.ErrPartialRecord
		}
		return nil, err
	}
	records := make([][]byte, count)
	for i := range records {
		records[i] = block[int64(i)*payloadSize : int64(i+1)*payloadSize]
	}
	return records, nil
}

// append a sorted index to a data file and record it in the catalogue
func buildIndex(env *environment, name string, dataFileName string) (*storage.IndexEntry, error) {
	fileName, err := filepath.Abs(dataFileName)
	if nil != err {
		return nil, err
	}

	layout := env.configuration.DiskLayout()
	keys := env.configuration.KeyRange()

	f, err := os.OpenFile(fileName, os.O_RDWR, 0)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if nil != err {
		return nil, err
	}

	count, err := dataExtent(name, fileName, info.Size(), layout.PayloadSize)
	if nil != err {
		return nil, err
	}
	start := count * layout.PayloadSize

	records, err := readRecords(f, count, layout.PayloadSize)
	if nil != err {
		return nil, err
	}

	entries := make([]diskindex.Entry, len(records))
	for i, r := range records {
		entries[i] = diskindex.Entry{
			Key:     keys.Extract(r),
			Payload: int64(i) * layout.PayloadSize,
		}
	}

	// drop any previous index
	if err := f.Truncate(start); nil != err {
		return nil, err
	}

	end, err := diskindex.WriteEntries(f, start, entries, layout, env.indexCompare())
	if nil != err {
		return nil, err
	}

	builder, err := diskindex.NewBuilder(f, layout, env.indexLog)
	if nil != err {
		return nil, err
	}
	root, err := builder.Build(start, count)
	if nil != err {
		return nil, err
	}

	if err := f.Sync(); nil != err {
		return nil, err
	}

	entry := &storage.IndexEntry{
		File:        fileName,
		Start:       start,
		Count:       count,
		RecordSize:  layout.RecordSize,
		PayloadSize: layout.PayloadSize,
		Root:        root,
	}
	if err := storage.PutIndex(name, entry); nil != err {
		return nil, err
	}

	env.log.Infof("build: %s  file: %q  records: %d  index: %d..%d  root: %d", name, fileName, count, start, end, root)
	return entry, nil
}

// open the file of a catalogued index and bind a searcher to it
func openIndex(env *environment, name string) (*storage.IndexEntry, *os.File, *diskindex.Searcher, error) {
	entry, err := storage.GetIndex(name)
	if nil != err {
		return nil, nil, nil, err
	}

	if int64(env.configuration.Layout.KeyLength) > entry.RecordSize-diskindex.TrailerSize {
		return nil, nil, nil, fault.ErrInvalidLayout
	}

	f, err := os.Open(entry.File)
	if nil != err {
		return nil, nil, nil, err
	}

	options := []diskindex.SearcherOption{
		diskindex.WithLogger(env.indexLog),
	}
	if expiry, cleanup := env.configuration.CacheExpiry(); expiry > 0 {
		options = append(options, diskindex.WithCache(expiry, cleanup))
	}

	layout := diskindex.Layout{
		RecordSize:  entry.RecordSize,
		PayloadSize: entry.PayloadSize,
	}
	s, err := diskindex.NewSearcher(f, layout, env.indexCompare(), options...)
	if nil != err {
		f.Close()
		return nil, nil, nil, err
	}
	return entry, f, s, nil
}

// search a catalogued index for each key in turn
//
// one searcher serves every key so nodes near the root are read once;
// a key without a match is logged, ErrKeyNotFound only when none match
func searchIndex(env *environment, name string, keys [][]byte, all bool) ([][]byte, int, error) {
	for _, key := range keys {
		if len(key) != env.configuration.Layout.KeyLength {
			return nil, 0, fault.ErrInvalidKey
		}
	}

	entry, f, s, err := openIndex(env, name)
	if nil != err {
		return nil, 0, err
	}
	defer f.Close()

	results := [][]byte{}
	for _, key := range keys {
		var found [][]byte
		if all {
			found, err = s.All(entry.Root, key)
		} else {
			var r []byte
			r, err = s.First(entry.Root, key)
			if nil != r {
				found = [][]byte{r}
			}
		}
		if nil != err {
			return nil, s.Reads(), err
		}
		if 0 == len(found) {
			env.log.Warnf("search: %s  key: %x  not found", name, key)
		}
		results = append(results, found...)
	}

	env.log.Debugf("search: %s  keys: %d  results: %d  reads: %d", name, len(keys), len(results), s.Reads())
	if 0 == len(results) {
		return nil, s.Reads(), fault.ErrKeyNotFound
	}
	return results, s.Reads(), nil
}

// walk a catalogued index checking key order, payload offsets and
// the record count
func checkIndex(env *environment, name string) (int64, error) {
	entry, f, s, err := openIndex(env, name)
	if nil != err {
		return 0, err
	}
	defer f.Close()

	layout := diskindex.Layout{
		RecordSize:  entry.RecordSize,
		PayloadSize: entry.PayloadSize,
	}
	compare := env.indexCompare()

	count := int64(0)
	previous := []byte(nil)
	err = s.Walk(entry.Root, func(offset int64, r []byte) error {
		if offset < entry.Start || offset >= entry.Start+entry.Count*entry.RecordSize {
			return fault.ErrInvalidOffset
		}
		if nil != previous && compare(previous, r) > 0 {
			env.log.Errorf("check: %s  out of order at offset: %d", name, offset)
			return fault.ErrIndexOutOfOrder
		}
		payload, _, _ := layout.Trailer(r)
		if payload < 0 || payload >= entry.Start || 0 != payload%entry.PayloadSize {
			return fault.ErrInvalidOffset
		}
		previous = r
		count += 1
		return nil
	})
	if nil != err {
		return 0, err
	}
	if count != entry.Count {
		return 0, fault.ErrIndexCountMismatch
	}
	return count, nil
}

// load the records of a data file into a memory tree and print it
//
// a limit of zero reads the whole file
func dumpFile(env *environment, dataFileName string, limit int64) error {
	payloadSize := env.configuration.Layout.PayloadSize
	keys := env.configuration.KeyRange()

	fileName, err := filepath.Abs(dataFileName)
	if nil != err {
		return err
	}

	f, err := os.Open(fileName)
	if nil != err {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if nil != err {
		return err
	}

	// stop at an appended index, without a catalogue the whole file
	// is taken as data
	size, _, err := indexedBy(fileName, info.Size())
	if fault.ErrNotInitialised == err {
		size = info.Size()
	} else if nil != err {
		return err
	}

	count := size / payloadSize
	if limit > 0 && limit < count {
		count = limit
	}
	if 0 == count {
		return fault.ErrInvalidRecordCount
	}

	records, err := readRecords(f, count, payloadSize)
	if nil != err {
		return err
	}

	tree, err := avl.New(int(payloadSize), keys.Compare,
		avl.WithErrorSink(env.log.Errorf),
		avl.WithNodeLimit(env.configuration.MaxNodes),
	)
	if nil != err {
		return err
	}
	defer tree.Clear()

	added, err := tree.InsertAll(records)
	if nil != err {
		return err
	}

	depth := tree.Print(env.out, func(r []byte) string {
		return fmt.Sprintf("%x", keys.Extract(r))
	})
	if err := tree.Check(); nil != err {
		return err
	}

	fmt.Fprintf(env.out, "records: %d  unique: %d  duplicates: %d  depth: %d\n", count, added, count-int64(added), depth)
	return nil
}
