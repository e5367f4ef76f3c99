// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/avlindex/configuration"
	"github.com/bitmark-inc/avlindex/fault"
	"github.com/bitmark-inc/avlindex/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "var", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'x'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 || 0 == len(arguments) {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// --var=name:value is available in the configuration as arg.name
	variables := make(map[string]string)
	for _, v := range options["var"] {
		s := strings.SplitN(v, ":", 2)
		if 2 != len(s) {
			exitwithstatus.Message("%s: invalid variable: %q  expected: name:value", program, v)
		}
		variables[s[0]] = s[1]
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile, variables)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// crash messages go to the log before exit
	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("configuration: %+v", theConfiguration)

	command := arguments[0]
	use, ok := catalogueAccess[command]
	if !ok {
		exitwithstatus.Message("%s: unknown command: %q", program, command)
	}

	switch use {
	case catalogueOptional:
		if err = storage.Initialise(theConfiguration.Database, storage.ReadOnly); nil != err {
			log.Warnf("catalogue: %q  not available: %s", theConfiguration.Database, err)
		} else {
			defer storage.Finalise()
		}
	default:
		if err = storage.Initialise(theConfiguration.Database, catalogueReadOnly == use); nil != err {
			log.Criticalf("storage initialise error: %s", err)
			exitwithstatus.Message("%s: catalogue: %q  setup failed with error: %s", program, theConfiguration.Database, err)
		}
		defer storage.Finalise()
	}

	env := &environment{
		configuration: theConfiguration,
		log:           log,
		indexLog:      logger.New("diskindex"),
		out:           os.Stdout,
	}

	err = processCommand(env, command, arguments[1:])
	if nil != err {
		log.Errorf("command: %s  error: %s", command, err)
		if fault.IsErrNotFound(err) {
			exitwithstatus.Message("%s: %s", command, err)
		}
		exitwithstatus.Message("%s: %s failed with error: %s", program, command, err)
	}
}
