package memory

/*
 * EDVAC - High speed (mercury delay line) memory
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

import "github.com/edvacsim/edvac/emu/word"

const (
	// AddressWidth is the bit width of a high-speed memory address field.
	AddressWidth = 10

	// AddressMask masks a raw address field down to AddressWidth bits.
	AddressMask uint64 = (1 << AddressWidth) - 1

	// BankSize is the number of words in each of the two 512-word tanks.
	BankSize = 512

	// BankWords is the total addressable word count across both tanks.
	BankWords = 2 * BankSize
)

// Mode selects which bank of the 1024-word high-speed memory an address
// refers to. The machine's front panel lets the operator wire either tank
// into the low or high half of the address space independently of the
// other, which is why L0 and R1 both admit the same 0..511 address range.
type Mode int

const (
	// ModeLR addresses the full 1024-word array directly: left tank at
	// 0..511, right tank at 512..1023. This is the normal operating mode.
	ModeLR Mode = iota
	// ModeL0 addresses only the left tank, at 0..511.
	ModeL0
	// ModeR1 addresses only the right tank, offset by 512, at 0..511.
	ModeR1
)

// HighSpeedMemory is the machine's 1024-word mercury delay line memory.
type HighSpeedMemory struct {
	bank [BankWords]word.Word
}

// New returns a HighSpeedMemory with every word initialized to +0.
func New() *HighSpeedMemory {
	return &HighSpeedMemory{}
}

// Get reads the word at addr under the given bank mode. addr must already be
// masked to AddressWidth bits by the caller (the order decoder does this).
// Under ModeL0 and ModeR1 addr wraps modulo 512 into the left or right tank
// respectively, forcing either tank to answer regardless of which half of
// the 1024-word range addr names; ModeLR panics if addr falls outside the
// full 1024-word range, since that can only mean a decode bug.
func (m *HighSpeedMemory) Get(addr int, mode Mode) word.Word {
	return m.bank[bankIndex(addr, mode)]
}

// Set stores val at addr under the given bank mode.
func (m *HighSpeedMemory) Set(addr int, mode Mode, val word.Word) {
	m.bank[bankIndex(addr, mode)] = val
}

func bankIndex(addr int, mode Mode) int {
	switch mode {
	case ModeL0:
		return addr % BankSize
	case ModeR1:
		return (addr % BankSize) + BankSize
	default:
		if addr >= BankWords {
			panic("memory: LR address out of range")
		}
		return addr
	}
}

// Load stores a set of (address, word) records into memory under ModeLR,
// used to bulk-load an assembled listing or a test fixture.
func (m *HighSpeedMemory) Load(records []AddressedWord) {
	for _, rec := range records {
		m.Set(rec.Address, ModeLR, rec.Word)
	}
}

// AddressedWord pairs a memory address with the word to store there.
type AddressedWord struct {
	Address int
	Word    word.Word
}

// Dump returns a copy of the full 1024-word bank, in ModeLR order.
func (m *HighSpeedMemory) Dump() [BankWords]word.Word {
	return m.bank
}
