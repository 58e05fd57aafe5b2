/*
 * EDVAC - Memory examine/deposit commands.
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

package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/edvacsim/edvac/emu/machine"
	"github.com/edvacsim/edvac/emu/memory"
)

// Examine prints one word, or a range of words, from high-speed memory in
// octal: "examine 1016" or "examine 1000-1010".
func examine(line *cmdLine, w *machine.Worker) (bool, error) {
	low, high, err := parseRange(line.getWord())
	if err != nil {
		return false, err
	}

	dump := w.Computer.DumpMemory()
	for addr := low; addr <= high; addr++ {
		fmt.Printf("%04o: %015o\n", addr, dump[addr].Bits())
	}
	return false, nil
}

// Deposit pokes a single octal value into one high-speed memory address:
// "deposit 1016 014631463146315". Refuses to run while the machine is
// executing, matching the console's interlock against depositing into a
// live memory bank.
func deposit(line *cmdLine, w *machine.Worker) (bool, error) {
	if w.Computer.Status.Running {
		return false, errors.New("can't deposit while the machine is running")
	}

	addrToken := line.getWord()
	addr, err := parseOctalAddress(addrToken)
	if err != nil {
		return false, err
	}
	if addr < 0 || uint64(addr) > memory.AddressMask {
		return false, fmt.Errorf("address out of range: %o", addr)
	}

	value, err := parseOctalValue(line.getWord())
	if err != nil {
		return false, err
	}

	w.Computer.Set(addr, value)
	return false, nil
}

func parseRange(token string) (low, high int, err error) {
	parts := strings.SplitN(token, "-", 2)
	low, err = parseOctalAddress(parts[0])
	if err != nil {
		return 0, 0, err
	}
	if uint64(low) > memory.AddressMask {
		return 0, 0, fmt.Errorf("address out of range: %o", low)
	}
	if len(parts) == 1 {
		return low, low, nil
	}
	high, err = parseOctalAddress(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if high < low {
		return 0, 0, errors.New("high address below low address")
	}
	if uint64(high) > memory.AddressMask {
		return 0, 0, fmt.Errorf("address out of range: %o", high)
	}
	return low, high, nil
}
