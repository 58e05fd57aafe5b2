// Package orders decodes EDVAC instruction words into their order kind and
// four address fields, and provides the mnemonic table used by the
// assembler.
package orders

/*
 * EDVAC - Order decode
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import (
	"fmt"

	"github.com/edvacsim/edvac/emu/memory"
	"github.com/edvacsim/edvac/emu/word"
)

// Kind identifies one of the machine's eleven decoded order types. Unused
// opcode nibbles decode to Unused, which the executor treats as a Halt at
// the fourth address.
type Kind int

const (
	Compare Kind = iota
	ManualRead
	Add
	Wire
	Sub
	Extract
	Mul
	MulExact
	Div
	DivExact
	Halt
	Unused
)

var mnemonics = map[string]Kind{
	"C":  Compare,
	"MR": ManualRead,
	"A":  Add,
	"W":  Wire,
	"S":  Sub,
	"E":  Extract,
	"M":  Mul,
	"m":  MulExact,
	"D":  Div,
	"d":  DivExact,
	"H":  Halt,
}

// KindFromMnemonic looks up a Kind by its assembler mnemonic. ok is false for
// any string that is not one of the eleven recognized mnemonics (Unused has
// no mnemonic of its own: it is never written directly, only produced by
// decoding a word whose opcode nibble is unassigned).
func KindFromMnemonic(mnemonic string) (kind Kind, ok bool) {
	kind, ok = mnemonics[mnemonic]
	return kind, ok
}

// Bits returns the 4-bit opcode nibble for kind, the inverse of decoding it
// from a word's low 4 bits.
func (k Kind) Bits() uint64 {
	switch k {
	case Compare:
		return 0b0010
	case ManualRead:
		return 0b0011
	case Add:
		return 0b0100
	case Wire:
		return 0b0101
	case Sub:
		return 0b0110
	case Extract:
		return 0b0111
	case Mul:
		return 0b1000
	case MulExact:
		return 0b1001
	case Div:
		return 0b1010
	case DivExact:
		return 0b1011
	case Halt:
		return 0b1100
	default:
		return 0b0000
	}
}

func (k Kind) String() string {
	switch k {
	case Compare:
		return "Compare"
	case ManualRead:
		return "ManualRead"
	case Add:
		return "Add"
	case Wire:
		return "Wire"
	case Sub:
		return "Sub"
	case Extract:
		return "Extract"
	case Mul:
		return "Mul"
	case MulExact:
		return "MulExact"
	case Div:
		return "Div"
	case DivExact:
		return "DivExact"
	case Halt:
		return "Halt"
	default:
		return "Unused"
	}
}

// kindFromBits decodes an opcode nibble into a Kind. Nibbles that the
// machine leaves unassigned (+0, -0, +7, -7, -6) decode to Unused.
func kindFromBits(bits uint64) Kind {
	switch bits & 0b1111 {
	case 0b0010:
		return Compare
	case 0b0011:
		return ManualRead
	case 0b0100:
		return Add
	case 0b0101:
		return Wire
	case 0b0110:
		return Sub
	case 0b0111:
		return Extract
	case 0b1000:
		return Mul
	case 0b1001:
		return MulExact
	case 0b1010:
		return Div
	case 0b1011:
		return DivExact
	case 0b1100:
		return Halt
	default:
		return Unused
	}
}

// Order is a decoded instruction word: its kind and four 10-bit address
// fields.
type Order struct {
	Kind      Kind
	Addresses [4]int
}

// Decode splits an instruction word into its Order. The word format packs
// four 10-bit address fields into bits 4..43 (most significant field
// first) with the 4-bit opcode nibble in bits 0..3.
func Decode(w word.Word) Order {
	bits := w.Bits()
	return Order{
		Kind: kindFromBits(bits),
		Addresses: [4]int{
			int((bits >> 34) & memory.AddressMask),
			int((bits >> 24) & memory.AddressMask),
			int((bits >> 14) & memory.AddressMask),
			int((bits >> 4) & memory.AddressMask),
		},
	}
}

// Encode packs an Order back into its word representation, the inverse of
// Decode. Used by the assembler to produce order-record words.
func Encode(o Order) word.Word {
	var bits uint64
	bits |= uint64(o.Addresses[0]&int(memory.AddressMask)) << 34
	bits |= uint64(o.Addresses[1]&int(memory.AddressMask)) << 24
	bits |= uint64(o.Addresses[2]&int(memory.AddressMask)) << 14
	bits |= uint64(o.Addresses[3]&int(memory.AddressMask)) << 4
	bits |= o.Kind.Bits()
	return word.FromBits(bits)
}

// FormatAddr renders a high-speed memory address in the machine's native
// octal, as used by the executor's trace logging.
func FormatAddr(addr int) string {
	return fmt.Sprintf("%04o", addr)
}
