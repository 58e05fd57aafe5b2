/*
 * EDVAC - Command executor.
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
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/edvacsim/edvac/emu/assemble"
	"github.com/edvacsim/edvac/emu/console"
	"github.com/edvacsim/edvac/emu/machine"
	"github.com/edvacsim/edvac/emu/orders"
	"github.com/edvacsim/edvac/emu/wire"
	"github.com/edvacsim/edvac/emu/word"
)

// Press the console's Initiate pushbutton.
func initiate(_ *cmdLine, w *machine.Worker) (bool, error) {
	slog.Info("command: initiate")
	w.Send(machine.Command{Kind: machine.Initiate})
	return false, nil
}

// Press the console's Halt pushbutton.
func halt(_ *cmdLine, w *machine.Worker) (bool, error) {
	slog.Info("command: halt")
	w.Send(machine.Command{Kind: machine.Halt})
	return false, nil
}

// Set operating mode to a single normal order and initiate.
func step(_ *cmdLine, w *machine.Worker) (bool, error) {
	slog.Info("command: step")
	mode := console.NormalOneOrder
	w.Send(machine.Command{Kind: machine.ModifyState, OperatingMode: &mode})
	w.Send(machine.Command{Kind: machine.Initiate})
	return false, nil
}

// Set operating mode to run to completion and initiate.
func run(_ *cmdLine, w *machine.Worker) (bool, error) {
	slog.Info("command: run")
	mode := console.NormalToCompletion
	w.Send(machine.Command{Kind: machine.ModifyState, OperatingMode: &mode})
	w.Send(machine.Command{Kind: machine.Initiate})
	return false, nil
}

// Set operating mode to run to Address A switches and initiate.
func runto(line *cmdLine, w *machine.Worker) (bool, error) {
	slog.Info("command: runto")
	addr, err := parseOctalAddress(line.getWord())
	if err != nil {
		return false, err
	}
	mode := console.NormalToAddressA
	w.Send(machine.Command{Kind: machine.ModifyState, OperatingMode: &mode, AddressA: &addr})
	w.Send(machine.Command{Kind: machine.Initiate})
	return false, nil
}

// Execute the word on the special order switches once, then halt.
func special(line *cmdLine, w *machine.Worker) (bool, error) {
	slog.Info("command: special")
	mnemonic := line.getRawWord()
	kind, ok := orders.KindFromMnemonic(mnemonic)
	if !ok {
		return false, errors.New("unknown order mnemonic: " + mnemonic)
	}
	var addrs [4]int
	for i := range addrs {
		a, err := parseOctalAddress(line.getWord())
		if err != nil {
			return false, err
		}
		addrs[i] = a
	}
	order := orders.Encode(orders.Order{Kind: kind, Addresses: addrs})
	mode := console.SpecialOneOrder
	w.Send(machine.Command{Kind: machine.ModifyState, OperatingMode: &mode, SpecialOrderSwitches: &order})
	w.Send(machine.Command{Kind: machine.Initiate})
	return false, nil
}

// Mount a wire image, assembled from a listing file, onto a spool.
func load(line *cmdLine, w *machine.Worker) (bool, error) {
	slog.Info("command: load")
	spoolName := line.getWord()
	spool, ok := spoolFromName(spoolName)
	if !ok {
		return false, errors.New("unknown spool: " + spoolName)
	}
	path := line.rest()
	if path == "" {
		return false, errors.New("load requires a listing file path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	img := assembler.Assemble(string(data))
	w.Send(machine.Command{Kind: machine.LoadWire, Spool: spool, Wire: img})
	return false, nil
}

func loadComplete(_ *cmdLine) []string {
	return []string{"one ", "two ", "three "}
}

// Modify a piece of console state.
func set(line *cmdLine, w *machine.Worker) (bool, error) {
	slog.Info("command: set")
	field := line.getWord()
	value := line.getWord()

	cmd := machine.Command{Kind: machine.ModifyState}
	switch field {
	case "operatingmode":
		mode, ok := operatingModeFromName(value)
		if !ok {
			return false, errors.New("unknown operating mode: " + value)
		}
		cmd.OperatingMode = &mode
	case "excesscapacityadd":
		action, ok := excessCapacityActionFromName(value)
		if !ok {
			return false, errors.New("unknown excess capacity action: " + value)
		}
		cmd.ExcessCapacityActionAdd = &action
	case "excesscapacitydiv":
		action, ok := excessCapacityActionFromName(value)
		if !ok {
			return false, errors.New("unknown excess capacity action: " + value)
		}
		cmd.ExcessCapacityActionDiv = &action
	case "auxin":
		v, err := parseOctalValue(value)
		if err != nil {
			return false, err
		}
		cmd.AuxiliaryInputSwitches = &v
	case "addressa":
		addr, err := parseOctalAddress(value)
		if err != nil {
			return false, err
		}
		cmd.AddressA = &addr
	case "addressb":
		addr, err := parseOctalAddress(value)
		if err != nil {
			return false, err
		}
		cmd.AddressB = &addr
	default:
		return false, errors.New("unknown setting: " + field)
	}
	w.Send(cmd)
	return false, nil
}

func setComplete(line *cmdLine) []string {
	fields := []string{"operatingmode", "excesscapacityadd", "excesscapacitydiv", "auxin", "addressa", "addressb"}
	name := line.getWord()
	var matches []string
	for _, f := range fields {
		if strings.HasPrefix(f, name) {
			matches = append(matches, f+" ")
		}
	}
	return matches
}

// Exit the REPL.
func quit(_ *cmdLine, _ *machine.Worker) (bool, error) {
	slog.Info("command: quit")
	return true, nil
}

func spoolFromName(name string) (wire.Spool, bool) {
	switch strings.ToLower(name) {
	case "one", "1":
		return wire.One, true
	case "two", "2":
		return wire.Two, true
	case "three", "3":
		return wire.Three, true
	}
	return 0, false
}

func operatingModeFromName(name string) (console.OperatingMode, bool) {
	switch strings.ToLower(name) {
	case "tocompletion", "normaltocompletion":
		return console.NormalToCompletion, true
	case "toaddressa", "normaltoaddressa":
		return console.NormalToAddressA, true
	case "oneorder", "normaloneorder":
		return console.NormalOneOrder, true
	case "special", "specialoneorder":
		return console.SpecialOneOrder, true
	}
	return 0, false
}

func excessCapacityActionFromName(name string) (console.ExcessCapacityAction, bool) {
	switch strings.ToLower(name) {
	case "halt":
		return console.Halt, true
	case "ignore":
		return console.Ignore, true
	case "executespecial":
		return console.ExecuteSpecial, true
	case "executeaddressb":
		return console.ExecuteAddressB, true
	}
	return 0, false
}

func parseOctalAddress(token string) (int, error) {
	v, err := strconv.ParseUint(token, 8, 64)
	if err != nil {
		return 0, fmt.Errorf("not a valid octal address: %q", token)
	}
	return int(v), nil
}

func parseOctalValue(token string) (word.Word, error) {
	v, err := strconv.ParseInt(token, 8, 64)
	if err != nil {
		return word.Word{}, fmt.Errorf("not a valid octal value: %q", token)
	}
	return word.MustFromInt64(v), nil
}
