// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"strings"
)

// symbol length limits
const (
	MinimumSymbolLength = 3
	MaximumSymbolLength = 16
	MaximumPrecision    = 12

	MinimumAccountNameLength = 3
	MaximumAccountNameLength = 63
)

// IsValidSymbol - upper case letters and digits with at most one dot,
// starting with a letter and ending with a letter or digit
func IsValidSymbol(symbol string) bool {
	if len(symbol) < MinimumSymbolLength || len(symbol) > MaximumSymbolLength {
		return false
	}
	if !isUpper(symbol[0]) {
		return false
	}
	last := symbol[len(symbol)-1]
	if !isUpper(last) && !isDigit(last) {
		return false
	}
	dots := 0
	for i := 0; i < len(symbol); i += 1 {
		c := symbol[i]
		switch {
		case isUpper(c), isDigit(c):
		case '.' == c:
			dots += 1
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// SymbolPrefix - the part before the last dot, empty if none
func SymbolPrefix(symbol string) string {
	if i := strings.LastIndexByte(symbol, '.'); i >= 0 {
		return symbol[:i]
	}
	return ""
}

// LooksLikeId - a lookup string starting with a digit is an id
func LooksLikeId(s string) bool {
	return len(s) > 0 && isDigit(s[0])
}

// IsValidAccountName - lower case letters, digits and inner dashes,
// starting with a letter
func IsValidAccountName(name string) bool {
	if len(name) < MinimumAccountNameLength || len(name) > MaximumAccountNameLength {
		return false
	}
	if name[0] < 'a' || name[0] > 'z' || '-' == name[len(name)-1] {
		return false
	}
	for i := 0; i < len(name); i += 1 {
		c := name[i]
		if (c < 'a' || c > 'z') && !isDigit(c) && '-' != c {
			return false
		}
	}
	return true
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
