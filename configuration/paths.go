// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/avlindex/fault"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// resolve the data directory setting against the directory holding
// the configuration file, "." means that directory itself
//
// the result must already exist as a directory
func dataDirectoryFrom(base string, setting string) (string, error) {
	directory := ""
	switch setting {
	case "", "~":
		return "", fault.ErrRequiredDataDirectory
	case ".":
		directory = base
	default:
		directory = EnsureAbsolute(base, setting)
	}

	info, err := os.Stat(directory)
	if nil != err {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path: %q is not a directory", directory)
	}
	return directory, nil
}

// a log file name must not carry a directory part
func plainFileName(name string) error {
	switch filepath.Dir(name) {
	case "", ".":
		return nil
	default:
		return fmt.Errorf("file: %q is not plain name", name)
	}
}
