// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bases provides table-driven per-byte operations on ASCII nucleotide
// sequences (.fa contents): G/C counting, and the dinucleotide alphabet used
// by composition statistics.
package bases
