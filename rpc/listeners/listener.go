// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

// Listener - a set of bound network sockets serving requests
type Listener interface {
	// bind every address and start accepting in the background
	Serve() error

	// close every socket, open connections finish their request
	Stop() error

	// actual bound addresses, valid after Serve
	Addresses() []string
}
