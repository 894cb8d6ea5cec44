// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

// channel for the final message before a panic
var log *logger.L

// Initialise - open the log channel, must follow logger.Initialise
func Initialise() error {
	if nil != log {
		return ErrAlreadyInitialised
	}
	log = logger.New("PANIC")
	if nil == log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush and release the channel
func Finalise() {
	if nil != log {
		log.Flush()
		log = nil
	}
}

// Criticalf - log prefixed by the caller's file and line
func Criticalf(format string, arguments ...interface{}) {
	critical(2, format, arguments...)
}

// Panicf - Criticalf then panic
func Panicf(format string, arguments ...interface{}) {
	critical(2, format, arguments...)
	panic(fmt.Sprintf(format, arguments...))
}

// PanicIfError - panic when err is set, for failures that cannot be
// caused by transaction input
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	s := fmt.Sprintf("%s failed with error: %v", message, err)
	critical(2, "%s", s)
	time.Sleep(100 * time.Millisecond) // let the log writer drain
	panic(s)
}

func critical(skip int, format string, arguments ...interface{}) {
	if _, file, line, ok := runtime.Caller(skip); ok {
		format = fmt.Sprintf("(%q:%d) %s", file, line, format)
	}
	if nil == log {
		fmt.Printf("*** "+format+"\n", arguments...)
		return
	}
	log.Criticalf(format, arguments...)
	log.Flush()
}
