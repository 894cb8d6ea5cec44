// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package license - license types, licenses held by vaults and the
// reward queue their cycles are submitted to
//
// a license grants cycles that are converted to the settlement coin
// at a frequency locked when the license was issued; chartered,
// utility and package licenses submit automatically as they are
// upgraded, locked frequency licenses wait for the holder.
package license
