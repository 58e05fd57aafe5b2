/*
	   EDVAC Assembler Test routines.

		Copyright (c) 2024, Richard Cornwell

		Permission is hereby granted, free of charge, to any person obtaining a
		copy of this software and associated documentation files (the "Software"),
		to deal in the Software without restriction, including without limitation
		the rights to use, copy, modify, merge, publish, distribute, sublicense,
		and/or sell copies of the Software, and to permit persons to whom the
		Software is furnished to do so, subject to the following conditions:

		The above copyright notice and this permission notice shall be included in
		all copies or substantial portions of the Software.

		THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
		IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
		FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
		RICHARD CORNWELL BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
		IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
		CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/
package assembler

import (
	"testing"

	"github.com/edvacsim/edvac/emu/memory"
	"github.com/edvacsim/edvac/emu/wire"
	"github.com/edvacsim/edvac/emu/word"
)

func TestAssembleOrderRecord(t *testing.T) {
	w := Assemble("0000 A 0001 0002 0003 0004\n")
	if got := w.ReadAddress(); got != 0 {
		t.Fatalf("address = %o, want 0", got)
	}
	w.Translate(wire.Forward, memory.AddressWidth)
	got := w.ReadWord()
	want, ok := assembleOrder("A", "0001 0002 0003 0004")
	if !ok {
		t.Fatalf("assembleOrder failed unexpectedly")
	}
	if got.Bits() != want.Bits() {
		t.Errorf("order word = %044b, want %044b", got.Bits(), want.Bits())
	}
}

func TestAssembleDatumRecord(t *testing.T) {
	// +1/10, same constant as the worked decimal-to-binary example.
	w := Assemble("1016 +014 6314 6314 6315\n")
	w.Translate(wire.Forward, memory.AddressWidth)
	got := w.ReadWord()
	want := word.FromBits(0o014_6314_6314_6315 << 1)
	if got.Bits() != want.Bits() {
		t.Errorf("datum word = %044b, want %044b", got.Bits(), want.Bits())
	}
}

func TestAssembleNegativeDatumSetsSignBit(t *testing.T) {
	w := Assemble("0001 -000 0000 0000 0001\n")
	w.Translate(wire.Forward, memory.AddressWidth)
	got := w.ReadWord()
	if !got.IsNegative() {
		t.Errorf("expected negative datum, got %044b", got.Bits())
	}
}

func TestAssembleSkipsCommentLines(t *testing.T) {
	listing := "; this is a comment, not an address\n0000 H 0000 0000 0000 0000\n"
	w := Assemble(listing)
	if got := w.ReadAddress(); got != 0 {
		t.Errorf("address = %o, want 0 (comment line should be skipped)", got)
	}
}

func TestAssembleDecToBinListing(t *testing.T) {
	listing := `0000 E 1001 0003 1003 1003
1003 W 0001 0202 0000 1002
1002 E 1003 0241 1006 1007
1007 E 1003 0003 1055 1006
1006 E 0000 0007 1054 1005
1005 E 1006 1243 1050 1011
1011 E 1054 0447 1047 1004
1004 M 1016 1047 1052 1013
1013 E 1054 0407 1056 1010
1010 A 1052 1056 1047 1012
1012 M 1016 1047 1052 1023
1023 E 1054 0347 1056 1017
1017 A 1052 1056 1047 1014
1014 M 1016 1047 1052 1033
1033 E 1054 0307 1056 1020
1020 A 1052 1056 1047 1015
1015 M 1016 1047 1052 1043
1043 E 1054 0247 1056 1021
1021 A 1052 1056 1047 1022
1022 M 1016 1047 1052 1053
1053 E 1054 0207 1056 1027
1027 A 1052 1056 1047 1024
1024 M 1016 1047 1052 1063
1063 E 1054 0147 1056 1030
1030 A 1052 1056 1047 1025
1025 M 1016 1047 1052 1073
1073 E 1054 0107 1056 1031
1031 A 1052 1056 1047 1032
1032 M 1016 1047 1052 1103
1103 E 1054 0047 1056 1041
1041 A 1052 1056 1047 1051
1051 M 1026 1047 1052 1113
1113 A 1054 1052 1044 1050
1050 d 1044 1035 0000 1045
1045 S 1006 1042 1006 1037
1037 C 1006 1042 1055 1006
1055 W 0001 0103 0000 1040
1040 C 1001 1042 1034 1036
1036 S 1001 1042 1001 1046
1046 E 1042 1133 1003 1003
1034 H 0000 0000 0000 0000
1016 +014 6314 6314 6315
1026 +004 6314 6314 6315
1035 +120 0000 0000 0000
1042 +000 1000 0000 0000
1001 +000 0000 0002 0000
`
	wireImg := Assemble(listing)

	want := word.FromBits(0b10000000010000000011100000001110000000110111)
	gotAddr := wireImg.ReadAddress()
	if gotAddr != 0 {
		t.Fatalf("first record address = %o, want 0", gotAddr)
	}
	wireImg.Translate(wire.Forward, memory.AddressWidth)
	gotWord := wireImg.ReadWord()
	if gotWord.Bits() != want.Bits() {
		t.Errorf("first record word = %044b, want %044b", gotWord.Bits(), want.Bits())
	}
}
