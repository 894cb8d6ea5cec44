// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error values shared by every package
//
// each failure is a single value so callers compare with errors.Is
// and classify with the IsErr… functions; the log channel records
// the last message before an invariant panic
package fault
