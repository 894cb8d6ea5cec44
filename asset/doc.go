// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - evaluators for user issued and market issued assets
//
// user issued assets are created, issued and reserved by their issuer;
// market issued assets are borrowed into existence against collateral
// in a backing asset and valued by a median of published price feeds.
//
// when the least collateralised position can no longer cover its debt
// at the median price the whole asset is globally settled: every
// position is closed and holders may redeem from the settlement fund.
package asset
