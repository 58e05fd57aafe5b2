package orders

import (
	"testing"

	"github.com/edvacsim/edvac/emu/word"
)

func TestKindFromMnemonic(t *testing.T) {
	cases := map[string]Kind{
		"C": Compare, "MR": ManualRead, "A": Add, "W": Wire, "S": Sub,
		"E": Extract, "M": Mul, "m": MulExact, "D": Div, "d": DivExact, "H": Halt,
	}
	for mnemonic, want := range cases {
		got, ok := KindFromMnemonic(mnemonic)
		if !ok {
			t.Errorf("KindFromMnemonic(%q): not found", mnemonic)
			continue
		}
		if got != want {
			t.Errorf("KindFromMnemonic(%q) = %v, want %v", mnemonic, got, want)
		}
	}
}

func TestKindFromMnemonicUnknown(t *testing.T) {
	if _, ok := KindFromMnemonic("ZZ"); ok {
		t.Errorf("KindFromMnemonic(%q): expected not found", "ZZ")
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	o := Order{Kind: Add, Addresses: [4]int{0o1, 0o2, 0o3, 0o4}}
	w := Encode(o)
	decoded := Decode(w)

	if decoded.Kind != Add {
		t.Errorf("decoded.Kind = %v, want Add", decoded.Kind)
	}
	if decoded.Addresses != o.Addresses {
		t.Errorf("decoded.Addresses = %v, want %v", decoded.Addresses, o.Addresses)
	}
}

func TestDecodeUnassignedOpcodeIsUnused(t *testing.T) {
	w := word.FromBits(0b0000) // +0 opcode nibble, unassigned
	decoded := Decode(w)
	if decoded.Kind != Unused {
		t.Errorf("Decode(+0 opcode) = %v, want Unused", decoded.Kind)
	}
}
