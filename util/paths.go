// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/ledgerd/fault"
)

// EnsureAbsolute - relative paths are taken from directory
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureFileExists - true if the name can be stat'ed
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}

// PlainName - a file name without any directory part, joined to
// directory if that is not empty
func PlainName(directory string, name string) (string, error) {
	switch filepath.Dir(name) {
	case "", ".":
	default:
		return "", fault.ErrInvalidPath
	}
	if "" == name || "." == name || ".." == name {
		return "", fault.ErrInvalidPath
	}
	if "" == directory {
		return name, nil
	}
	return EnsureAbsolute(directory, name), nil
}
