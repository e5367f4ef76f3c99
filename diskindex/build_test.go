// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package diskindex_test

import (
	"errors"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/avlindex/diskindex"
	"github.com/bitmark-inc/avlindex/diskindex/mocks"
	"github.com/bitmark-inc/avlindex/fault"
)

func TestBuildSevenRecords(t *testing.T) {
	f, cleanup := tempFile(t)
	defer cleanup()

	layout := writeSelfReferencing(t, f, 7)
	R := layout.RecordSize

	root, err := diskindex.Build(f, 0, 7, layout)
	require.NoError(t, err)
	assert.Equal(t, 3*R, root)

	// offset → expected left, right
	expected := map[int64][2]int64{
		0 * R: {diskindex.NoChild, diskindex.NoChild},
		1 * R: {0, 2 * R},
		2 * R: {diskindex.NoChild, diskindex.NoChild},
		3 * R: {1 * R, 5 * R},
		4 * R: {diskindex.NoChild, diskindex.NoChild},
		5 * R: {4 * R, 6 * R},
		6 * R: {diskindex.NoChild, diskindex.NoChild},
	}
	for offset, children := range expected {
		payload, left, right := layout.Trailer(readRecord(t, f, layout, offset))
		assert.Equal(t, offset, payload, "payload at: %d", offset)
		assert.Equal(t, children[0], left, "left child at: %d", offset)
		assert.Equal(t, children[1], right, "right child at: %d", offset)
	}
}

func TestBuildSplitSizes(t *testing.T) {
	f, cleanup := tempFile(t)
	defer cleanup()

	for count := 1; count <= 40; count += 1 {
		layout := writeSelfReferencing(t, f, count)

		root, err := diskindex.Build(f, 0, int64(count), layout)
		require.NoError(t, err)
		assert.Equal(t, int64((count-1)/2)*layout.RecordSize, root, "count: %d", count)

		// every record is reachable exactly once, in order
		s, err := diskindex.NewSearcher(f, layout, keyCompare)
		require.NoError(t, err)
		seen := []int64{}
		err = s.Walk(root, func(offset int64, r []byte) error {
			seen = append(seen, offset)
			return nil
		})
		require.NoError(t, err)
		require.Len(t, seen, count)
		for i, offset := range seen {
			assert.Equal(t, int64(i)*layout.RecordSize, offset)
		}
	}
}

func TestBuildAtNonZeroStart(t *testing.T) {
	f, cleanup := tempFile(t)
	defer cleanup()

	// a header in front of the index block
	header := make([]byte, 100)
	_, err := f.WriteAt(header, 0)
	require.NoError(t, err)

	entries := []diskindex.Entry{
		{Key: makeKey(3), Payload: 0},
		{Key: makeKey(1), Payload: 16},
		{Key: makeKey(2), Payload: 32},
	}
	end, err := diskindex.WriteEntries(f, 100, entries, testLayout, keyCompare)
	require.NoError(t, err)
	assert.Equal(t, 100+3*testLayout.RecordSize, end)

	root, err := diskindex.Build(f, 100, 3, testLayout)
	require.NoError(t, err)
	assert.Equal(t, 100+testLayout.RecordSize, root)

	_, left, right := testLayout.Trailer(readRecord(t, f, testLayout, root))
	assert.Equal(t, int64(100), left)
	assert.Equal(t, 100+2*testLayout.RecordSize, right)
}

// positional writes must leave the shared seek offset alone
func TestBuildKeepsSeekPosition(t *testing.T) {
	f, cleanup := tempFile(t)
	defer cleanup()

	layout := writeSelfReferencing(t, f, 15)

	_, err := f.Seek(17, io.SeekStart)
	require.NoError(t, err)

	_, err = diskindex.Build(f, 0, 15, layout)
	require.NoError(t, err)

	position, err := f.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(17), position)
}

// building twice over the same block gives the same links
func TestRebuild(t *testing.T) {
	f, cleanup := tempFile(t)
	defer cleanup()

	layout := writeSelfReferencing(t, f, 9)
	root1, err := diskindex.Build(f, 0, 9, layout)
	require.NoError(t, err)
	first := make([][]byte, 9)
	for i := range first {
		first[i] = readRecord(t, f, layout, int64(i)*layout.RecordSize)
	}

	// rebuild only the top five as a separate tree, then the whole
	// range again
	_, err = diskindex.Build(f, 4*layout.RecordSize, 5, layout)
	require.NoError(t, err)
	root2, err := diskindex.Build(f, 0, 9, layout)
	require.NoError(t, err)

	assert.Equal(t, root1, root2)
	for i := range first {
		assert.Equal(t, first[i], readRecord(t, f, layout, int64(i)*layout.RecordSize), "record: %d", i)
	}
}

func TestBuildInvalidArguments(t *testing.T) {
	f, cleanup := tempFile(t)
	defer cleanup()

	_, err := diskindex.Build(f, 0, 0, testLayout)
	assert.Equal(t, fault.ErrInvalidRecordCount, err)

	_, err = diskindex.Build(f, -1, 3, testLayout)
	assert.Equal(t, fault.ErrInvalidOffset, err)

	_, err = diskindex.Build(f, 0, 3, diskindex.Layout{RecordSize: 15})
	assert.Equal(t, fault.ErrInvalidLayout, err)

	_, err = diskindex.NewBuilder(nil, testLayout, nil)
	assert.Equal(t, fault.ErrMissingFile, err)
}

func TestBuildWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	errDisk := errors.New("disk full")

	file := mocks.NewMockFile(ctrl)
	file.EXPECT().WriteAt(gomock.Any(), gomock.Any()).Return(0, errDisk).Times(1)

	_, err := diskindex.Build(file, 0, 3, testLayout)
	assert.True(t, fault.IsErrIO(err), "expected I/O error, got: %v", err)
	assert.True(t, errors.Is(err, errDisk))
}

func TestBuildShortWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	file := mocks.NewMockFile(ctrl)
	gomock.InOrder(
		file.EXPECT().WriteAt(gomock.Any(), gomock.Any()).Return(diskindex.OffsetSize, nil),
		file.EXPECT().WriteAt(gomock.Any(), gomock.Any()).Return(3, nil),
	)

	_, err := diskindex.Build(file, 0, 1, testLayout)
	assert.True(t, fault.IsErrIO(err))
	assert.True(t, errors.Is(err, io.ErrShortWrite))
}

// a single record gets two empty child fields
func TestBuildSingleRecordWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	zero := make([]byte, diskindex.OffsetSize)

	file := mocks.NewMockFile(ctrl)
	file.EXPECT().WriteAt(zero, int64(500)+testLayout.RecordSize-2*diskindex.OffsetSize).Return(diskindex.OffsetSize, nil)
	file.EXPECT().WriteAt(zero, int64(500)+testLayout.RecordSize-diskindex.OffsetSize).Return(diskindex.OffsetSize, nil)

	root, err := diskindex.Build(file, 500, 1, testLayout)
	assert.NoError(t, err)
	assert.Equal(t, int64(500), root)
}
