// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
)

// final message of every panic raised here
const abortMessage = "abort, see last messages in log file"

var crash struct {
	sync.Mutex
	log *logger.L
}

// Initialise - attach the crash log channel, the logger must already
// be running
func Initialise() error {
	crash.Lock()
	defer crash.Unlock()

	if nil != crash.log {
		return ErrAlreadyInitialised
	}
	crash.log = logger.New("PANIC")
	if nil == crash.log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush and detach the crash log channel
func Finalise() {
	crash.Lock()
	defer crash.Unlock()

	if nil != crash.log {
		crash.log.Flush()
		crash.log = nil
	}
}

// Criticalf - log a message tagged with the caller's position
func Criticalf(format string, arguments ...interface{}) {
	critical(2, format, arguments...)
}

// Panic - log the message then abort
func Panic(message string) {
	critical(2, "%s", message)
	abort()
}

// Panicf - log a formatted message then abort
func Panicf(format string, arguments ...interface{}) {
	critical(2, format, arguments...)
	abort()
}

// PanicIfError - abort with the error and its context, nil is ignored
func PanicIfError(context string, err error) {
	if nil == err {
		return
	}
	critical(2, "%s failed with error: %s", context, err)
	abort()
}

func critical(skip int, format string, arguments ...interface{}) {
	if _, file, line, ok := runtime.Caller(skip); ok {
		format = fmt.Sprintf("(%s:%d) %s", filepath.Base(file), line, format)
	}

	crash.Lock()
	defer crash.Unlock()

	if nil == crash.log {
		fmt.Printf("*** "+format+"\n", arguments...)
		return
	}
	crash.log.Criticalf(format, arguments...)
	crash.log.Flush()
}

func abort() {
	crash.Lock()
	logging := nil != crash.log
	crash.Unlock()

	// let the log writer drain
	if logging {
		time.Sleep(100 * time.Millisecond)
	}
	panic(abortMessage)
}
