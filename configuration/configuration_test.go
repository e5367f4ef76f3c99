// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/avlindex/configuration"
	"github.com/bitmark-inc/avlindex/fault"
)

const fullConfiguration = `
local directory = arg["dir"] or "."
return {
    data_directory = directory,
    database = "names.leveldb",
    layout = {
        record_size = 40,
        payload_size = 128,
        key_offset = 4,
        key_length = 16,
    },
    max_nodes = 5000,
    cache = {
        expiry = 30,
        cleanup = 60,
    },
    logging = {
        directory = "logs",
        file = "test.log",
        size = 4096,
        count = 3,
        levels = {
            main = "debug",
        },
    },
}
`

const minimalConfiguration = `
return {
    data_directory = ".",
    layout = {
        record_size = 32,
        payload_size = 8,
        key_length = 8,
    },
}
`

// write a configuration file into a fresh directory
func writeConfiguration(t *testing.T, text string) (string, func()) {
	directory, err := ioutil.TempDir("", "configuration")
	require.NoError(t, err)

	fileName := filepath.Join(directory, "avlindex.conf")
	err = ioutil.WriteFile(fileName, []byte(text), 0600)
	require.NoError(t, err)

	return fileName, func() {
		os.RemoveAll(directory)
	}
}

func TestGetConfiguration(t *testing.T) {
	fileName, cleanup := writeConfiguration(t, fullConfiguration)
	defer cleanup()

	directory := filepath.Dir(fileName)

	c, err := configuration.GetConfiguration(fileName, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean(directory), filepath.Clean(c.DataDirectory))
	assert.Equal(t, filepath.Join(directory, "names.leveldb"), c.Database)
	assert.Equal(t, int64(40), c.Layout.RecordSize)
	assert.Equal(t, int64(128), c.Layout.PayloadSize)
	assert.Equal(t, 4, c.Layout.KeyOffset)
	assert.Equal(t, 16, c.Layout.KeyLength)
	assert.Equal(t, 5000, c.MaxNodes)

	expiry, cleanupInterval := c.CacheExpiry()
	assert.Equal(t, 30*time.Second, expiry)
	assert.Equal(t, time.Minute, cleanupInterval)

	assert.Equal(t, filepath.Join(directory, "logs"), c.Logging.Directory)
	assert.Equal(t, "test.log", c.Logging.File)
	assert.Equal(t, 4096, c.Logging.Size)
	assert.Equal(t, 3, c.Logging.Count)
	assert.Equal(t, "debug", c.Logging.Levels["main"])
	info, err := os.Stat(c.Logging.Directory)
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "log directory not created")

	l := c.DiskLayout()
	assert.Equal(t, int64(40), l.RecordSize)
	assert.Equal(t, int64(128), l.PayloadSize)

	k := c.KeyRange()
	assert.Equal(t, 4, k.Offset)
	assert.Equal(t, 16, k.Length)
}

func TestGetConfigurationDefaults(t *testing.T) {
	fileName, cleanup := writeConfiguration(t, minimalConfiguration)
	defer cleanup()

	c, err := configuration.GetConfiguration(fileName, nil)
	require.NoError(t, err)

	assert.Equal(t, "catalogue.leveldb", filepath.Base(c.Database))
	assert.Equal(t, 0, c.MaxNodes)
	assert.Equal(t, 300, c.Cache.Expiry)
	assert.Equal(t, 600, c.Cache.Cleanup)
	assert.Equal(t, "avlindex.log", c.Logging.File)
	assert.Equal(t, "info", c.Logging.Levels["main"])
}

func TestGetConfigurationVariables(t *testing.T) {
	fileName, cleanup := writeConfiguration(t, fullConfiguration)
	defer cleanup()

	other, err := ioutil.TempDir("", "configuration-data")
	require.NoError(t, err)
	defer os.RemoveAll(other)

	c, err := configuration.GetConfiguration(fileName, map[string]string{"dir": other})
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(other), c.DataDirectory)
	assert.Equal(t, filepath.Join(other, "names.leveldb"), c.Database)
}

func TestGetConfigurationErrors(t *testing.T) {
	_, err := configuration.GetConfiguration("", nil)
	assert.Equal(t, fault.ErrRequiredConfigFile, err)

	_, err = configuration.GetConfiguration("/nonexistent/avlindex.conf", nil)
	assert.Error(t, err)

	tests := []struct {
		text string
		err  error
	}{
		{`return 42`, fault.ErrConfigurationNotTable},
		{`return { layout = { record_size = 32, payload_size = 8, key_length = 8 } }`, fault.ErrRequiredDataDirectory},
		{`return { data_directory = ".", layout = { record_size = 16, payload_size = 8, key_length = 8 } }`, fault.ErrInvalidLayout},
		{`return { data_directory = ".", layout = { record_size = 32, payload_size = 8, key_length = 9 } }`, fault.ErrInvalidLayout},
		{`return { data_directory = ".", layout = { record_size = 32, payload_size = 64, key_length = 16 } }`, fault.ErrInvalidLayout},
		{`return { data_directory = ".", layout = { record_size = 32, payload_size = 8, key_offset = 4, key_length = 8 } }`, fault.ErrInvalidLayout},
		{`return { data_directory = ".", max_nodes = -1, layout = { record_size = 32, payload_size = 8, key_length = 8 } }`, fault.ErrNegativeSetting},
	}
	for i, item := range tests {
		fileName, cleanup := writeConfiguration(t, item.text)
		_, err := configuration.GetConfiguration(fileName, nil)
		assert.Equal(t, item.err, err, "test: %d", i)
		cleanup()
	}
}

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/file", configuration.EnsureAbsolute("/data", "file"))
	assert.Equal(t, "/other/file", configuration.EnsureAbsolute("/data", "/other/file"))
	assert.Equal(t, "/data/file", configuration.EnsureAbsolute("/data", "sub/../file"))
}
