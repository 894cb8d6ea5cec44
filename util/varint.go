// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - longest encoding of a uint64
const Varint64MaximumBytes = 9

const (
	varintMore = 0x80
	varintBits = 0x7f
)

// ToVarint64 - little endian groups of seven bits, the high bit of
// each byte marks a continuation
//
// the ninth byte carries the top eight bits without a marker
func ToVarint64(value uint64) []byte {
	return AppendVarint64(make([]byte, 0, Varint64MaximumBytes), value)
}

// AppendVarint64 - append the Varint64 form of value to buffer
func AppendVarint64(buffer []byte, value uint64) []byte {
	for n := 1; n < Varint64MaximumBytes; n += 1 {
		if value <= varintBits {
			return append(buffer, byte(value))
		}
		buffer = append(buffer, byte(value&varintBits)|varintMore)
		value >>= 7
	}
	return append(buffer, byte(value))
}

// FromVarint64 - decode the start of buffer
//
// returns the value and the bytes consumed, or 0, 0 when truncated
func FromVarint64(buffer []byte) (uint64, int) {
	value := uint64(0)
	for i, b := range buffer {
		if Varint64MaximumBytes-1 == i {
			return value | uint64(b)<<(7*uint(i)), i + 1
		}
		value |= uint64(b&varintBits) << (7 * uint(i))
		if 0 == b&varintMore {
			return value, i + 1
		}
	}
	return 0, 0
}

// ToZigzag64 - map a signed value onto an unsigned one so that small
// magnitudes of either sign encode as short varints
func ToZigzag64(value int64) uint64 {
	return uint64(value<<1) ^ uint64(value>>63)
}

// FromZigzag64 - inverse of ToZigzag64
func FromZigzag64(value uint64) int64 {
	return int64(value>>1) ^ -int64(value&1)
}

// ClippedVarint64 - decode a value that must lie in minimum..maximum
//
// returns 0, 0 for a bad range, a truncated buffer or a value out of
// range
func ClippedVarint64(buffer []byte, minimum int, maximum int) (int, int) {
	if minimum < 0 || maximum < 0 || minimum >= maximum {
		return 0, 0
	}
	value, count := FromVarint64(buffer)
	if 0 == count || value < uint64(minimum) || value > uint64(maximum) {
		return 0, 0
	}
	return int(value), count
}
