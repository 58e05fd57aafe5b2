// Package console models the EDVAC operating console: the operator-facing
// switches, mode selectors, and run/halt status that the executor consults
// but does not itself own.
package console

/*
 * EDVAC - Operating console state
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
	"github.com/edvacsim/edvac/emu/memory"
	"github.com/edvacsim/edvac/emu/word"
)

// OperatingMode selects how the Driver's step/run commands behave. Only the
// subset the front panel actually exposes at order granularity is modeled;
// sub-order single-cycle/single-execute modes are out of scope.
type OperatingMode int

const (
	// NormalToCompletion runs orders until the machine halts itself.
	NormalToCompletion OperatingMode = iota
	// NormalToAddressA runs orders until the IAR reaches AddressA.
	NormalToAddressA
	// NormalOneOrder executes exactly one order, then halts.
	NormalOneOrder
	// SpecialOneOrder executes the word in SpecialOrder once, out of
	// sequence, then halts with the executed order's own next address as
	// the resume address.
	SpecialOneOrder
)

func (m OperatingMode) String() string {
	switch m {
	case NormalToCompletion:
		return "NormalToCompletion"
	case NormalToAddressA:
		return "NormalToAddressA"
	case NormalOneOrder:
		return "NormalOneOrder"
	case SpecialOneOrder:
		return "SpecialOneOrder"
	default:
		return "Unknown"
	}
}

// ExcessCapacityAction names what the executor does when an Add, Subtract,
// or Divide order's result exceeds the machine's 43-bit magnitude. The
// add/subtract and divide channels are configured independently.
//
// Historical sources disagree on whether ExecuteSpecial and
// ExecuteAddressB redirect the normal flow of control afterward; this
// module follows the reading where they do not: once the sub-order has
// run, the IAR is overwritten with the overflowing order's next address
// (see handleOverflow in the core package).
type ExcessCapacityAction int

const (
	// Halt stops the machine at the order following the one that
	// overflowed. This is the default: overflows are usually programming
	// errors.
	Halt ExcessCapacityAction = iota
	// Ignore discards the overflow and continues normal execution.
	Ignore
	// ExecuteSpecial executes the word in SpecialOrder once, then continues
	// at the overflowing order's next address.
	ExecuteSpecial
	// ExecuteAddressB executes the order at AddressB once, then continues
	// at the overflowing order's next address.
	ExecuteAddressB
)

func (a ExcessCapacityAction) String() string {
	switch a {
	case Halt:
		return "Halt"
	case Ignore:
		return "Ignore"
	case ExecuteSpecial:
		return "ExecuteSpecial"
	case ExecuteAddressB:
		return "ExecuteAddressB"
	default:
		return "Unknown"
	}
}

// State is the full set of operator-controlled switches and registers that
// the executor reads but the console (not the executor) owns.
type State struct {
	InitialAddressRegister int
	OperatingMode          OperatingMode

	ExcessCapacityActionAdd ExcessCapacityAction
	ExcessCapacityActionDiv ExcessCapacityAction
	MemoryMode              memory.Mode

	AuxiliaryInputSwitches word.Word

	SpecialOrderSwitches word.Word
	AddressASwitches     int
	AddressBSwitches     int
}

// NewState returns a State with every switch at its default (power-on)
// position.
func NewState() State {
	return State{
		OperatingMode: NormalToCompletion,
		MemoryMode:    memory.ModeLR,
	}
}

// Status is the run/halt state of the machine as shown on the console
// lamps.
type Status struct {
	// Running is true while the machine is executing orders in sequence.
	Running bool
	// ResumeAddr is the address execution will continue from, valid only
	// when Running is false.
	ResumeAddr int
}

// Halted returns the Status for a halted machine that will resume at addr.
func Halted(addr int) Status {
	return Status{Running: false, ResumeAddr: addr}
}

// NewStatus returns the power-on status: halted, resuming at address 0.
func NewStatus() Status {
	return Halted(0)
}
