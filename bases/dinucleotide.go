// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bases

// Dinucleotide is an ordered pair of adjacent bases over {A, C, G, T}.  The
// value is 4*first + second, with A=0, C=1, G=2, T=3, so the 16 dinucleotides
// are dense in [0, NDinucleotide).
type Dinucleotide uint8

// The 16 dinucleotides, in canonical order.
const (
	AA Dinucleotide = iota
	AC
	AG
	AT
	CA
	CC
	CG
	CT
	GA
	GC
	GG
	GT
	TA
	TC
	TG
	TT
	// NDinucleotide is the size of the dinucleotide alphabet.
	NDinucleotide = 16
)

const acgt = "ACGT"

// seq8To2bit maps a seq8 code to its 2-bit rank, or 4 when the code isn't
// one of A/C/G/T.
var seq8To2bit = [16]byte{4, 0, 1, 4, 2, 4, 4, 4, 3, 4, 4, 4, 4, 4, 4, 4}

// DinucleotideFromBytes returns the dinucleotide spelled by (first, second).
// Matching is case-insensitive: "cg", "Cg", "cG" and "CG" are all CG.  ok is
// false if either byte isn't an A/C/G/T in some case.
func DinucleotideFromBytes(first, second byte) (d Dinucleotide, ok bool) {
	hi := seq8To2bit[asciiToSeq8Table[first]]
	lo := seq8To2bit[asciiToSeq8Table[second]]
	if hi > 3 || lo > 3 {
		return 0, false
	}
	return Dinucleotide(hi<<2 | lo), true
}

// AllDinucleotides returns the 16 dinucleotides in canonical order.
func AllDinucleotides() []Dinucleotide {
	all := make([]Dinucleotide, NDinucleotide)
	for i := range all {
		all[i] = Dinucleotide(i)
	}
	return all
}

// String returns the uppercase two-letter spelling, e.g. "CG".
func (d Dinucleotide) String() string {
	if d >= NDinucleotide {
		return "??"
	}
	return string([]byte{acgt[d>>2], acgt[d&3]})
}
