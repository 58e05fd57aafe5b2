// Package wire implements the EDVAC's bit-addressable sequential wire
// stores: the secondary memory medium that holds programs and data too
// large for the 1024-word high-speed memory.
package wire

/*
 * EDVAC - Wire (sequential secondary) store
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
	"log/slog"

	"github.com/edvacsim/edvac/emu/memory"
	"github.com/edvacsim/edvac/emu/word"
)

const (
	// WordsPerWire is the wire's capacity in words, per the original
	// machine's 1000-foot spools.
	WordsPerWire = 50000

	// BitCount is the total number of bits on a wire.
	BitCount = WordsPerWire * word.BitWidth
)

// Spool names one of the machine's three physical wire spools, or the
// pseudo-spool Zero, which stands for the operator's auxiliary-input
// switches rather than an actual tape: reads from Zero return the switch
// register and writes to it are no-ops.
type Spool int

const (
	Zero Spool = iota
	One
	Two
	Three
)

func (s Spool) String() string {
	switch s {
	case Zero:
		return "Zero"
	case One:
		return "One"
	case Two:
		return "Two"
	case Three:
		return "Three"
	default:
		return "Unknown"
	}
}

// Direction selects which way Translate moves the wire's read/write head.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Wire is a single 50,000-word bit-addressable sequential store. Reads and
// writes happen at the current head position (Index) but never advance it;
// only Translate moves the head.
type Wire struct {
	bits  []bool
	index int
}

// New returns a Wire with every bit cleared and the head at position 0.
func New() *Wire {
	return &Wire{bits: make([]bool, BitCount)}
}

// Index returns the current head position, in bits.
func (w *Wire) Index() int {
	return w.index
}

// Translate moves the head by amount bits in the given direction, clamping
// at either end of the wire. Running off either end is a recoverable
// operator error (per the original machine's printed wire-end warning
// lamps), logged rather than fatal.
func (w *Wire) Translate(dir Direction, amount int) {
	switch dir {
	case Forward:
		w.index += amount
		if w.index >= BitCount {
			w.index = BitCount - 1
			slog.Error("wire: attempted to shift past end point", "amount", amount)
		}
	case Backward:
		if w.index < amount {
			w.index = 0
			slog.Error("wire: attempted to shift past beginning point", "amount", amount)
		} else {
			w.index -= amount
		}
	}
}

func (w *Wire) readBits(length int) []bool {
	end := w.index + length
	if end > len(w.bits) {
		end = len(w.bits)
	}
	return w.bits[w.index:end]
}

// ReadWord reads a full word starting at the head position without moving
// the head. Bits are stored and read least-significant-first.
func (w *Wire) ReadWord() word.Word {
	return word.FromBits(foldBits(w.readBits(word.BitWidth)))
}

// ReadAddress reads a 10-bit address field starting at the head position
// without moving the head.
func (w *Wire) ReadAddress() int {
	return int(foldBits(w.readBits(memory.AddressWidth)))
}

// WriteWord writes a full word at the head position without moving the
// head.
func (w *Wire) WriteWord(val word.Word) {
	w.writeBits(val.Bits(), word.BitWidth)
}

// WriteAddress writes a 10-bit address field at the head position without
// moving the head. The original machine's documentation notes that the
// wire mechanism can read but never write an address field in normal
// operation; this method exists only to let the assembler construct
// program images.
func (w *Wire) WriteAddress(addr int) {
	w.writeBits(uint64(addr), memory.AddressWidth)
}

func (w *Wire) writeBits(bits uint64, length int) {
	for i := 0; i < length; i++ {
		bit := bits&0b1 == 0b1
		bits >>= 1
		w.bits[w.index+i] = bit
	}
}

func foldBits(bits []bool) uint64 {
	var acc uint64
	for i := len(bits) - 1; i >= 0; i-- {
		acc <<= 1
		if bits[i] {
			acc |= 1
		}
	}
	return acc
}

// Record pairs a high-speed-memory address with the word to store there; a
// listing is assembled into a Wire as a sequence of Records.
type Record struct {
	Address int
	Word    word.Word
}

// WithProgram builds a Wire whose contents are the given listing, laid down
// as alternating address/word fields starting at bit 0, and leaves the head
// at position 0 once done.
func WithProgram(listing []Record) *Wire {
	w := New()
	for _, rec := range listing {
		w.WriteAddress(rec.Address)
		w.index += memory.AddressWidth
		w.WriteWord(rec.Word)
		w.index += word.BitWidth
	}
	w.index = 0
	return w
}
