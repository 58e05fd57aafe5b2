/*
	   EDVAC Assembler

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

// Package assembler turns a plain-text EDVAC program listing into a Wire
// image. Lines that don't start with an octal address are treated as
// comments, as is any trailing text on a line beyond what a record needs.
//
// An order record reads:
//
//	<octal-addr> <mnemonic> <a1> <a2> <a3> <a4>
//
// A datum record reads:
//
//	<octal-addr> <sign><octal-head> <frag1> <frag2> <frag3>
//
// where sign is '+' or '-', head is at most 0o177 (7 bits), and each
// fragment is at most 0o7777 (12 bits); the four fields concatenate into
// the word's 43-bit magnitude.
package assembler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/edvacsim/edvac/emu/memory"
	"github.com/edvacsim/edvac/emu/orders"
	"github.com/edvacsim/edvac/emu/wire"
	"github.com/edvacsim/edvac/emu/word"
)

// datumFragments is the number of 12-bit octal fragments following the
// sign+head token in a datum record. Three fragments (36 bits) plus the
// 7-bit head give exactly the Word's 43-bit magnitude.
const datumFragments = 3

// Assemble parses a full listing and returns the equivalent Wire image,
// ready to be mounted with a Computer's LoadWire. Malformed or
// comment-only lines are skipped silently, matching the listing format's
// convention that anything not recognized as an address-led record is
// commentary.
func Assemble(listing string) *wire.Wire {
	return wire.WithProgram(parseListing(listing))
}

// AssembleMemory parses a listing the same way Assemble does, but returns
// the records directly as high-speed memory addresses instead of wrapping
// them in a Wire image. Used to load the initial program straight into
// memory rather than mounting it on a spool.
func AssembleMemory(listing string) []memory.AddressedWord {
	records := parseListing(listing)
	words := make([]memory.AddressedWord, len(records))
	for i, rec := range records {
		words[i] = memory.AddressedWord{Address: rec.Address, Word: rec.Word}
	}
	return words
}

func parseListing(listing string) []wire.Record {
	var records []wire.Record
	for _, line := range strings.Split(listing, "\n") {
		if rec, ok := assembleLine(line); ok {
			records = append(records, rec)
		}
	}
	return records
}

func assembleLine(line string) (wire.Record, bool) {
	field, rest := getName(line)
	if field == "" {
		return wire.Record{}, false
	}
	address, err := strconv.ParseInt(field, 8, 64)
	if err != nil || uint64(address)&^memory.AddressMask != 0 {
		return wire.Record{}, false
	}

	next, rest := getName(rest)
	if next == "" {
		return wire.Record{}, false
	}

	if c := next[0]; c == '+' || c == '-' {
		w, ok := assembleDatum(next, rest)
		if !ok {
			return wire.Record{}, false
		}
		return wire.Record{Address: int(address), Word: w}, true
	}

	w, ok := assembleOrder(next, rest)
	if !ok {
		return wire.Record{}, false
	}
	return wire.Record{Address: int(address), Word: w}, true
}

func assembleDatum(signAndHead string, rest string) (word.Word, bool) {
	sign := signAndHead[0]
	head, err := strconv.ParseUint(signAndHead[1:], 8, 64)
	if err != nil || head > 0o177 {
		return word.Word{}, false
	}

	raw := head
	for i := 0; i < datumFragments; i++ {
		var token string
		token, rest = getName(rest)
		if token == "" {
			return word.Word{}, false
		}
		frag, err := strconv.ParseUint(token, 8, 64)
		if err != nil || frag > 0o7777 {
			return word.Word{}, false
		}
		raw = (raw << 12) | frag
	}

	bit := uint64(0)
	if sign == '-' {
		bit = 1
	}
	return word.FromBits((raw << 1) | bit), true
}

func assembleOrder(mnemonic string, rest string) (word.Word, bool) {
	kind, ok := orders.KindFromMnemonic(mnemonic)
	if !ok {
		return word.Word{}, false
	}

	var addresses [4]int
	for i := 0; i < 4; i++ {
		var token string
		token, rest = getName(rest)
		if token == "" {
			return word.Word{}, false
		}
		addr, err := strconv.ParseUint(token, 8, 64)
		if err != nil || addr&^memory.AddressMask != 0 {
			return word.Word{}, false
		}
		addresses[i] = int(addr)
	}

	return orders.Encode(orders.Order{Kind: kind, Addresses: addresses}), true
}

// Error is returned by AssembleStrict when a line that looks like a record
// (starts with what parses as an octal address) fails to parse as either
// an order or a datum record. It is not used by the lenient Assemble,
// which the REPL and config loader call; AssembleStrict is offered for
// tooling that wants to catch typos instead of silently skipping them.
type Error struct {
	Line int
	Text string
}

func (e *Error) Error() string {
	return fmt.Sprintf("assembler: line %d: malformed record: %q", e.Line, e.Text)
}

// AssembleStrict behaves like Assemble but returns an error naming the
// first line that begins with a valid octal address yet fails to parse as
// a complete order or datum record.
func AssembleStrict(listing string) (*wire.Wire, error) {
	var records []wire.Record

	for i, line := range strings.Split(listing, "\n") {
		field, _ := getName(line)
		if field == "" {
			continue
		}
		if _, err := strconv.ParseInt(field, 8, 64); err != nil {
			continue
		}

		rec, ok := assembleLine(line)
		if !ok {
			return nil, &Error{Line: i + 1, Text: strings.TrimSpace(line)}
		}
		records = append(records, rec)
	}

	return wire.WithProgram(records), nil
}

func skipSpace(str string) string {
	for i := range str {
		if !unicode.IsSpace(rune(str[i])) {
			return str[i:]
		}
	}
	return ""
}

// getName returns the next whitespace-delimited token and the remainder of
// the line after it.
func getName(str string) (string, string) {
	str = skipSpace(str)
	for i := range str {
		if unicode.IsSpace(rune(str[i])) {
			return str[:i], str[i+1:]
		}
	}
	return str, ""
}
