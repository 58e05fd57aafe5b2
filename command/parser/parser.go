/*
 * EDVAC - Command parser.
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

// Package parser implements the console REPL command language: a small
// set of commands that drive a machine.Worker the way the physical
// console's switches and pushbuttons would.
package parser

import (
	"errors"
	"slices"
	"strings"
	"unicode"

	"github.com/edvacsim/edvac/emu/machine"
)

type cmd struct {
	name     string // Command name.
	min      int    // Minimum unambiguous prefix length.
	process  func(*cmdLine, *machine.Worker) (bool, error)
	complete func(*cmdLine) []string
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

var cmdList = []cmd{
	{name: "initiate", min: 3, process: initiate},
	{name: "halt", min: 4, process: halt},
	{name: "step", min: 4, process: step},
	{name: "run", min: 3, process: run},
	{name: "runto", min: 4, process: runto},
	{name: "special", min: 3, process: special},
	{name: "load", min: 4, process: load, complete: loadComplete},
	{name: "set", min: 3, process: set, complete: setComplete},
	{name: "examine", min: 2, process: examine},
	{name: "deposit", min: 2, process: deposit},
	{name: "quit", min: 4, process: quit},
}

// ProcessCommand executes a single command line against a running
// machine.Worker. It returns true when the REPL should exit.
func ProcessCommand(commandLine string, w *machine.Worker) (bool, error) {
	line := &cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	switch len(match) {
	case 0:
		if name == "" {
			return false, nil
		}
		return false, errors.New("command not found: " + name)
	case 1:
		return match[0].process(line, w)
	default:
		return false, errors.New("ambiguous command: " + name)
	}
}

// CompleteCmd is the tab-completion entry point used by the line editor.
func CompleteCmd(commandLine string) []string {
	line := &cmdLine{line: commandLine}
	name := line.getWord()

	if !line.isEOL() {
		match := matchList(name)
		if len(match) != 1 || match[0].complete == nil {
			return nil
		}
		return match[0].complete(line)
	}

	var matches []string
	for _, c := range cmdList {
		if strings.HasPrefix(c.name, name) {
			matches = append(matches, c.name)
		}
	}
	slices.Sort(matches)
	return matches
}

func matchCommand(c cmd, name string) bool {
	if len(name) > len(c.name) {
		return false
	}
	for i := range name {
		if name[i] != c.name[i] {
			return false
		}
	}
	return len(name) >= c.min
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var match []cmd
	for _, c := range cmdList {
		if matchCommand(c, name) {
			match = append(match, c)
		}
	}
	return match
}

func (line *cmdLine) skipSpace() {
	for !line.isEOL() && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

func (line *cmdLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// getWord returns the next whitespace-delimited token, lower-cased.
func (line *cmdLine) getWord() string {
	return strings.ToLower(line.getRawWord())
}

// getRawWord returns the next whitespace-delimited token with its case
// preserved. Order mnemonics are case sensitive (M vs m, D vs d pick
// between an order and its exact-result variant), so the special-order
// command needs the token untouched.
func (line *cmdLine) getRawWord() string {
	line.skipSpace()
	if line.isEOL() {
		return ""
	}
	start := line.pos
	for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return line.line[start:line.pos]
}

// rest returns the remainder of the line, trimmed, up to any comment.
func (line *cmdLine) rest() string {
	line.skipSpace()
	if line.isEOL() {
		return ""
	}
	end := len(line.line)
	if idx := strings.IndexByte(line.line[line.pos:], '#'); idx >= 0 {
		end = line.pos + idx
	}
	return strings.TrimSpace(line.line[line.pos:end])
}
