// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/avlindex/configuration"
	"github.com/bitmark-inc/avlindex/fault"
	"github.com/bitmark-inc/avlindex/storage"
)

// shared by all configured commands
type environment struct {
	configuration *configuration.Configuration
	log           *logger.L
	indexLog      *logger.L
	out           io.Writer
}

// how a command uses the catalogue
type access int

const (
	catalogueOptional access = iota
	catalogueReadOnly
	catalogueReadWrite
)

var catalogueAccess = map[string]access{
	"build":      catalogueReadWrite,
	"delete":     catalogueReadWrite,
	"search":     catalogueReadOnly,
	"search-all": catalogueReadOnly,
	"list":       catalogueReadOnly,
	"check":      catalogueReadOnly,
	"dump":       catalogueOptional,
}

// setup command handler
//
// commands that run without the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "version", "v":
		fmt.Printf("%s\n", version)

	case "help", "h", "?":
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--version] --config-file=FILE [--var=NAME:VALUE] command [arguments...]\n"+
			"commands:\n"+
			"  build NAME DATAFILE       - index the records of DATAFILE and record it as NAME\n"+
			"  search NAME HEXKEY...     - print the first record matching each key\n"+
			"  search-all NAME HEXKEY... - print every record matching each key\n"+
			"  list                      - list the catalogue\n"+
			"  check NAME                - verify the structure of an index\n"+
			"  delete NAME               - remove an index from the catalogue\n"+
			"  dump DATAFILE [COUNT]     - load records into a memory tree and print it\n"+
			"  version                   - display the version\n", program)

	default:
		return false
	}
	return true
}

// configured command handler
func processCommand(env *environment, command string, arguments []string) error {

	switch command {
	case "build":
		if 2 != len(arguments) {
			return fault.ErrInvalidArgumentCount
		}
		entry, err := buildIndex(env, arguments[0], arguments[1])
		if nil != err {
			return err
		}
		fmt.Fprintf(env.out, "built: %s  records: %d  root: %d\n", arguments[0], entry.Count, entry.Root)

	case "search", "search-all":
		if len(arguments) < 2 {
			return fault.ErrInvalidArgumentCount
		}
		keys := make([][]byte, 0, len(arguments)-1)
		for _, h := range arguments[1:] {
			key, err := hex.DecodeString(h)
			if nil != err {
				return err
			}
			keys = append(keys, key)
		}
		results, _, err := searchIndex(env, arguments[0], keys, "search-all" == command)
		if nil != err {
			return err
		}
		for _, r := range results {
			fmt.Fprintf(env.out, "%x\n", r)
		}

	case "list":
		if 0 != len(arguments) {
			return fault.ErrInvalidArgumentCount
		}
		return listIndexes(env)

	case "check":
		if 1 != len(arguments) {
			return fault.ErrInvalidArgumentCount
		}
		count, err := checkIndex(env, arguments[0])
		if nil != err {
			return err
		}
		fmt.Fprintf(env.out, "index: %s  records: %d  ok\n", arguments[0], count)

	case "delete":
		if 1 != len(arguments) {
			return fault.ErrInvalidArgumentCount
		}
		return storage.DeleteIndex(arguments[0])

	case "dump":
		if len(arguments) < 1 || len(arguments) > 2 {
			return fault.ErrInvalidArgumentCount
		}
		limit := int64(0)
		if 2 == len(arguments) {
			n, err := strconv.ParseInt(arguments[1], 10, 64)
			if nil != err {
				return err
			}
			if n <= 0 {
				return fault.ErrInvalidRecordCount
			}
			limit = n
		}
		return dumpFile(env, arguments[0], limit)

	default:
		return fault.ErrUnknownCommand
	}
	return nil
}

func listIndexes(env *environment) error {
	list, err := storage.ListIndexes()
	if nil != err {
		return err
	}
	for _, item := range list {
		fmt.Fprintf(env.out, "%s  file: %q  start: %d  count: %d  record size: %d  payload size: %d  root: %d\n",
			item.Name, item.File, item.Start, item.Count, item.RecordSize, item.PayloadSize, item.Root)
	}
	return nil
}
