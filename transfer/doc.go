// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transfer - account registration and the movement of funds
// between accounts
//
// wallets and custodians transfer freely; a vault only exchanges
// funds with the wallet it is tethered to and its withdrawals of the
// settlement coin are limited per maintenance interval
package transfer
