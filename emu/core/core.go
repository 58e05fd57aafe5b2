/*
   Core EDVAC emulator loop.

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
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

// Package core implements the synchronous, single-threaded EDVAC order
// execution engine: the Computer type decodes one order at a time from
// high-speed memory and executes it, exactly as the physical machine
// processed one order per "cycle + execute" pair. Timing, sub-order, and
// delay-line fidelity are explicitly out of scope; this models behavior at
// the granularity of whole orders only.
package core

import (
	"fmt"
	"log/slog"

	"github.com/edvacsim/edvac/emu/console"
	"github.com/edvacsim/edvac/emu/memory"
	"github.com/edvacsim/edvac/emu/orders"
	"github.com/edvacsim/edvac/emu/wire"
	"github.com/edvacsim/edvac/emu/word"
)

// Computer is the complete state of an EDVAC: the operator console's
// switches and mode registers, the 1024-word high-speed memory, the three
// physical wire spools, and the run/halt status.
type Computer struct {
	State  console.State
	Status console.Status

	memory *memory.HighSpeedMemory
	wires  [3]*wire.Wire // indices correspond to WireSpool One, Two, Three
}

// New returns a Computer in its power-on configuration: every switch at its
// default position, memory and wires cleared, halted with the IAR at 0.
func New() *Computer {
	return &Computer{
		State:  console.NewState(),
		Status: console.NewStatus(),
		memory: memory.New(),
		wires:  [3]*wire.Wire{wire.New(), wire.New(), wire.New()},
	}
}

func wireIndex(spool wire.Spool) (int, bool) {
	switch spool {
	case wire.One:
		return 0, true
	case wire.Two:
		return 1, true
	case wire.Three:
		return 2, true
	default:
		return 0, false
	}
}

// LoadWire replaces the contents of the given spool wholesale, used to mount
// an assembled listing or a data tape. Loading onto the Zero pseudo-spool is
// a no-op: it names the auxiliary-input switches, not a physical wire.
func (c *Computer) LoadWire(spool wire.Spool, w *wire.Wire) {
	idx, ok := wireIndex(spool)
	if !ok {
		return
	}
	c.wires[idx] = w
}

// Wire returns the Wire mounted on the given spool, or nil for the Zero
// pseudo-spool.
func (c *Computer) Wire(spool wire.Spool) *wire.Wire {
	idx, ok := wireIndex(spool)
	if !ok {
		return nil
	}
	return c.wires[idx]
}

// LoadMemory bulk-loads a set of (address, word) records directly into
// high-speed memory under normal (LR) addressing, bypassing the wire
// device. Used to seed a program image built by the assembler or a test
// fixture.
func (c *Computer) LoadMemory(records []memory.AddressedWord) {
	c.memory.Load(records)
}

// DumpMemory returns a copy of the full 1024-word high-speed memory bank.
func (c *Computer) DumpMemory() [memory.BankWords]word.Word {
	return c.memory.Dump()
}

func (c *Computer) halt(resumeAddr int) {
	c.Status = console.Halted(resumeAddr)
}

// Get reads a word from high-speed memory at addr under the current memory
// mode.
func (c *Computer) Get(addr int) word.Word {
	value := c.memory.Get(addr, c.State.MemoryMode)
	slog.Debug("memory get", "addr", orders.FormatAddr(addr), "value", value.String())
	return value
}

// Set writes a word to high-speed memory at addr under the current memory
// mode.
func (c *Computer) Set(addr int, val word.Word) {
	slog.Debug("memory set", "addr", orders.FormatAddr(addr), "value", val.String())
	c.memory.Set(addr, c.State.MemoryMode, val)
}

func (c *Computer) readWordFromWire(spool wire.Spool) word.Word {
	idx, ok := wireIndex(spool)
	if !ok {
		value := word.FromBits(c.State.AuxiliaryInputSwitches.Bits())
		slog.Debug("read aux. input", "value", value.String())
		return value
	}
	value := c.wires[idx].ReadWord()
	slog.Debug("read word off wire", "spool", spool, "value", value.String())
	return value
}

func (c *Computer) readAddressFromWire(spool wire.Spool) int {
	idx, ok := wireIndex(spool)
	if !ok {
		panic("core: cannot read an address off the Zero pseudo-spool")
	}
	addr := c.wires[idx].ReadAddress()
	slog.Debug("read address off wire", "spool", spool, "addr", orders.FormatAddr(addr))
	return addr
}

func (c *Computer) writeWordToWire(spool wire.Spool, val word.Word) {
	idx, ok := wireIndex(spool)
	if !ok {
		// The Zero pseudo-spool has no tape: a write to it is discarded.
		return
	}
	slog.Debug("write word to wire", "spool", spool, "value", val.String())
	c.wires[idx].WriteWord(val)
}

func (c *Computer) translateWire(spool wire.Spool, dir wire.Direction, amount int) {
	idx, ok := wireIndex(spool)
	if !ok {
		// The Zero pseudo-spool is treated as having infinite length: there
		// is nothing to translate.
		return
	}
	c.wires[idx].Translate(dir, amount)
}

// handleOverflow dispatches on the configured ExcessCapacityAction for the
// add/subtract or divide channel. ExecuteSpecial and ExecuteAddressB always
// overwrite the IAR with resumeAddr once the sub-execution completes,
// regardless of what that sub-execution itself did to the IAR.
func (c *Computer) handleOverflow(isDiv bool, resumeAddr int) {
	slog.Warn("excess capacity", "channel", overflowChannel(isDiv))

	var action console.ExcessCapacityAction
	if isDiv {
		action = c.State.ExcessCapacityActionDiv
	} else {
		action = c.State.ExcessCapacityActionAdd
	}

	switch action {
	case console.Halt:
		c.halt(resumeAddr)
	case console.Ignore:
		c.State.InitialAddressRegister = resumeAddr
	case console.ExecuteSpecial:
		c.executeOnce(orders.Decode(c.State.SpecialOrderSwitches))
		c.State.InitialAddressRegister = resumeAddr
	case console.ExecuteAddressB:
		c.executeOnce(orders.Decode(c.Get(c.State.AddressBSwitches)))
		c.State.InitialAddressRegister = resumeAddr
	}
}

func overflowChannel(isDiv bool) string {
	if isDiv {
		return "divide"
	}
	return "add/subtract"
}

func (c *Computer) executeCompare(a [4]int) {
	left := c.Get(a[0])
	right := c.Get(a[1])
	difference, _ := left.OverflowingSub(right)

	resumeAddr := a[3] // positive or zero
	if difference.IsNegative() {
		resumeAddr = a[2]
	}
	c.State.InitialAddressRegister = resumeAddr
}

func (c *Computer) executeManualRead(a [4]int) {
	value := word.FromBits(c.State.AuxiliaryInputSwitches.Bits())

	c.Set(a[0], value)
	c.Set(a[1], value)
	c.Set(a[2], value)

	c.State.InitialAddressRegister = a[3]
}

func (c *Computer) executeAdd(a [4]int) {
	left := c.Get(a[0])
	right := c.Get(a[1])
	sum, overflowed := left.OverflowingAdd(right)

	c.Set(a[2], sum)
	if overflowed {
		c.handleOverflow(false, a[3])
	} else {
		c.State.InitialAddressRegister = a[3]
	}
}

func (c *Computer) executeSub(a [4]int) {
	left := c.Get(a[0])
	right := c.Get(a[1])
	difference, overflowed := left.OverflowingSub(right)

	c.Set(a[2], difference)
	if overflowed {
		c.handleOverflow(false, a[3])
	} else {
		c.State.InitialAddressRegister = a[3]
	}
}

// executeWire runs the Wire order's sub-order matrix: decode backward/
// operation/spool out of the second address field, then loop over the
// memory range [start, end] transferring words to or from the selected
// wire, translating it one word at a time.
func (c *Computer) executeWire(a [4]int) {
	start := a[0]
	subOrder := a[1]
	end := a[2]
	nextAddr := a[3]

	backward := (subOrder>>9)&0b1 != 0
	operation := (subOrder >> 6) & 0b11
	spool := wire.Spool(subOrder & 0b11)

	if spool == wire.Zero && operation == 0o3 {
		operation = 0o2
	}

	if (backward && operation == 0o3) || (spool == wire.Zero && operation == 0o0) {
		c.halt(nextAddr)
		return
	}

	memIndex := start
	for {
		if backward {
			c.translateWire(spool, wire.Backward, word.BitWidth)
		}

		switch operation {
		case 0o0:
			// Translate only; nothing to transfer.
		case 0o1:
			// Record: memory -> wire.
			c.writeWordToWire(spool, c.Get(memIndex))
		case 0o2:
			// Read: wire -> memory.
			c.Set(memIndex, c.readWordFromWire(spool))
		case 0o3:
			// Read Fifth Address (R5A): the wire itself names the
			// destination.
			memIndex = c.readAddressFromWire(spool)
			c.translateWire(spool, wire.Forward, memory.AddressWidth)
			c.Set(memIndex, c.readWordFromWire(spool))
		}

		if !backward {
			c.translateWire(spool, wire.Forward, word.BitWidth)
		}

		if memIndex == end {
			c.State.InitialAddressRegister = a[3]
			return
		}
		// A no-op when operation is R5A: memIndex was just overwritten
		// from the wire and will be again next iteration.
		memIndex = (memIndex + 1) & int(memory.AddressMask)
	}
}

// executeExtract implements the shift/mask matrix: shift the source word's
// magnitude, mask the requested field into the destination word, and for
// sub-order 7 (full word) fold the source's sign back in.
func (c *Computer) executeExtract(a [4]int) {
	source := c.Get(a[0]).Bits()
	storedSign := source & 0b1
	source &^= 0b1

	dest := a[2]
	result := c.Get(dest).Bits()

	shiftCode := uint64(a[1])
	subOrder := shiftCode & 0b111
	shiftAmount := (shiftCode >> 3) & 0b111111
	shiftDirection := (shiftCode >> 9) & 0b1

	if shiftAmount > 47 {
		shiftAmount -= 16
	}

	var shifted uint64
	if shiftDirection == 0 {
		shifted = source << shiftAmount
	} else {
		shifted = source >> shiftAmount
	}

	var mask uint64
	switch subOrder {
	case 0o1:
		mask = memory.AddressMask << 34
	case 0o2:
		mask = memory.AddressMask << 24
	case 0o3:
		mask = memory.AddressMask << 14
	case 0o4:
		mask = memory.AddressMask << 4
	case 0o5:
		mask = 0b1
	case 0o6:
		mask = word.U43Max << 1
	case 0o7:
		mask = (word.U43Max << 1) | 0b1
	default:
		panic(fmt.Sprintf("core: impossible extract sub-order %o", subOrder))
	}

	result = (result &^ mask) | (shifted & mask)
	if subOrder == 0o7 {
		result |= storedSign
	}

	c.Set(dest, word.FromBits(result))
	c.State.InitialAddressRegister = a[3]
}

func (c *Computer) executeMul(a [4]int, exact bool) {
	left := c.Get(a[0])
	right := c.Get(a[1])
	high, low := left.Mul(right)

	dest := a[2]
	c.Set(dest, high)
	if exact {
		c.Set((dest+1)&int(memory.AddressMask), low)
	}
	c.State.InitialAddressRegister = a[3]
}

func (c *Computer) executeDiv(a [4]int, exact bool) {
	left := c.Get(a[0])
	right := c.Get(a[1])
	quotient, remainder, overflowed := left.OverflowingDiv(right)

	dest := a[2]
	c.Set(dest, quotient)
	if exact {
		c.Set((dest+1)&int(memory.AddressMask), remainder)
	}

	if overflowed {
		c.handleOverflow(true, a[3])
	} else {
		c.State.InitialAddressRegister = a[3]
	}
}

// executeHalt implements the Halt *order*; halt (lowercase) is the internal
// transition used whenever the machine needs to stop for any reason.
func (c *Computer) executeHalt(a [4]int) {
	c.halt(a[3])
}

// executeOnce decodes and runs a single already-decoded Order.
func (c *Computer) executeOnce(o orders.Order) {
	a := o.Addresses

	switch o.Kind {
	case orders.Compare:
		c.executeCompare(a)
	case orders.ManualRead:
		c.executeManualRead(a)
	case orders.Add:
		c.executeAdd(a)
	case orders.Wire:
		c.executeWire(a)
	case orders.Sub:
		c.executeSub(a)
	case orders.Extract:
		c.executeExtract(a)
	case orders.Mul:
		c.executeMul(a, false)
	case orders.MulExact:
		c.executeMul(a, true)
	case orders.Div:
		c.executeDiv(a, false)
	case orders.DivExact:
		c.executeDiv(a, true)
	case orders.Halt:
		c.executeHalt(a)
	case orders.Unused:
		c.halt(a[3])
	}
}

// StepOnce decodes and executes the order at the current IAR.
func (c *Computer) StepOnce() {
	slog.Debug("======= next order =======")
	o := orders.Decode(c.Get(c.State.InitialAddressRegister))
	c.executeOnce(o)
}

// ExecuteSpecialOrder runs the word in the Special Order switches once, out
// of the normal instruction sequence. The executed order's own next-address
// field becomes the machine's resume point: the IAR is saved before
// execution and restored afterward, so the special order never disturbs
// normal sequencing, but the address it computed for its own "next order"
// is what the machine halts at.
func (c *Computer) ExecuteSpecialOrder() {
	slog.Debug("======= executing special order =======")
	oldAddr := c.State.InitialAddressRegister

	c.executeOnce(orders.Decode(c.State.SpecialOrderSwitches))

	nextAddr := c.State.InitialAddressRegister
	c.State.InitialAddressRegister = oldAddr

	c.halt(nextAddr)
}

// ContinueToAddressA runs orders until the machine halts or the IAR reaches
// Address A.
func (c *Computer) ContinueToAddressA() {
	for c.Status.Running && c.State.InitialAddressRegister != c.State.AddressASwitches {
		c.StepOnce()
	}
}

// ContinueToCompletion runs orders until the machine halts.
func (c *Computer) ContinueToCompletion() {
	for c.Status.Running {
		c.StepOnce()
	}
}

// InitiatePressed starts the machine running from its current resume
// address, if it is halted. Pressing Initiate while already running has no
// effect.
func (c *Computer) InitiatePressed() {
	if !c.Status.Running {
		c.State.InitialAddressRegister = c.Status.ResumeAddr
		c.Status = console.Status{Running: true}
		slog.Info("initiate", "resume_addr", orders.FormatAddr(c.State.InitialAddressRegister))
	}
}

// HaltPressed stops the machine immediately, resuming at the current IAR.
func (c *Computer) HaltPressed() {
	slog.Info("halt", "resume_addr", orders.FormatAddr(c.State.InitialAddressRegister))
	c.halt(c.State.InitialAddressRegister)
}
