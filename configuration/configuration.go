// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/avlindex/diskindex"
	"github.com/bitmark-inc/avlindex/fault"
	"github.com/bitmark-inc/avlindex/record"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file
	defaultDatabase      = "catalogue.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "avlindex.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultCacheExpiry  = 300 // seconds
	defaultCacheCleanup = 600 // seconds
)

// path expanded or calculated defaults
var (
	defaultLogLevels = map[string]string{
		"main":            "info",
		"diskindex":       "info",
		"storage":         "info",
		logger.DefaultTag: "critical",
	}
)

// LayoutType - record sizes and where the key sits in a data record
type LayoutType struct {
	RecordSize  int64 `gluamapper:"record_size" json:"record_size"`
	PayloadSize int64 `gluamapper:"payload_size" json:"payload_size"`
	KeyOffset   int   `gluamapper:"key_offset" json:"key_offset"`
	KeyLength   int   `gluamapper:"key_length" json:"key_length"`
}

// CacheType - index node cache, both values in seconds, zero expiry disables
//
// the cache lives as long as one searcher, so it only saves reads
// when a single command searches for several keys
type CacheType struct {
	Expiry  int `gluamapper:"expiry" json:"expiry"`
	Cleanup int `gluamapper:"cleanup" json:"cleanup"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Database      string               `gluamapper:"database" json:"database"`
	Layout        LayoutType           `gluamapper:"layout" json:"layout"`
	MaxNodes      int                  `gluamapper:"max_nodes" json:"max_nodes"`
	Cache         CacheType            `gluamapper:"cache" json:"cache"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// DiskLayout - the index record layout
func (c *Configuration) DiskLayout() diskindex.Layout {
	return diskindex.Layout{
		RecordSize:  c.Layout.RecordSize,
		PayloadSize: c.Layout.PayloadSize,
	}
}

// KeyRange - where keys are found in data records
func (c *Configuration) KeyRange() record.KeyRange {
	return record.KeyRange{
		Offset: c.Layout.KeyOffset,
		Length: c.Layout.KeyLength,
	}
}

// CacheExpiry - durations for diskindex.WithCache
func (c *Configuration) CacheExpiry() (time.Duration, time.Duration) {
	return time.Duration(c.Cache.Expiry) * time.Second, time.Duration(c.Cache.Cleanup) * time.Second
}

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	if "" == configurationFileName {
		return nil, fault.ErrRequiredConfigFile
	}

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	// private copy, the mapper merges into it
	levels := make(map[string]string, len(defaultLogLevels))
	for k, v := range defaultLogLevels {
		levels[k] = v
	}

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		Database:      defaultDatabase,

		Cache: CacheType{
			Expiry:  defaultCacheExpiry,
			Cleanup: defaultCacheCleanup,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    levels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	// ensure absolute data directory, it must be created prior to running
	directory, err := dataDirectoryFrom(dataDirectory, options.DataDirectory)
	if nil != err {
		return nil, err
	}
	options.DataDirectory = directory

	if err := options.validLayout(); nil != err {
		return nil, err
	}
	if options.MaxNodes < 0 || options.Cache.Expiry < 0 || options.Cache.Cleanup < 0 {
		return nil, fault.ErrNegativeSetting
	}

	// make absolute and create directories if they do not already exist
	options.Database = EnsureAbsolute(options.DataDirectory, options.Database)
	options.Logging.Directory = EnsureAbsolute(options.DataDirectory, options.Logging.Directory)
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	if err := plainFileName(options.Logging.File); nil != err {
		return nil, err
	}

	return options, nil
}

// the key must lie inside a data record and fit in front of the
// trailer of an index record
func (c *Configuration) validLayout() error {
	l := c.DiskLayout()
	if l.RecordSize < diskindex.TrailerSize || l.PayloadSize <= 0 {
		return fault.ErrInvalidLayout
	}
	k := c.KeyRange()
	if !k.Valid(int(l.PayloadSize)) || int64(k.Length) > l.KeySpace() {
		return fault.ErrInvalidLayout
	}
	return nil
}
