/*
 * EDVAC - Configuration file parser
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

// Package configparser reads a machine configuration file naming the
// program listing, the three wire images to mount at startup, the
// initial high-speed memory addressing mode, the initial excess-capacity
// actions, and where to write the log.
//
// File format:
//
//	'#' starts a comment, rest of line ignored.
//	<line> := <directive> <whitespace> <value>  | <directive>
//	<directive> := 'listing' | 'wire1' | 'wire2' | 'wire3' | 'memorymode' |
//	               'excesscapacityadd' | 'excesscapacitydiv' | 'logfile' | 'debug'
package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/edvacsim/edvac/emu/console"
	"github.com/edvacsim/edvac/emu/memory"
)

// Config is the fully resolved set of startup settings for a machine.
type Config struct {
	ListingPath string
	WirePaths   [3]string // indexed by wire.One-1, wire.Two-1, wire.Three-1

	MemoryMode              memory.Mode
	ExcessCapacityActionAdd console.ExcessCapacityAction
	ExcessCapacityActionDiv console.ExcessCapacityAction

	LogFile string
	Debug   bool
}

var memoryModes = map[string]memory.Mode{
	"LR": memory.ModeLR,
	"L0": memory.ModeL0,
	"R1": memory.ModeR1,
}

var excessCapacityActions = map[string]console.ExcessCapacityAction{
	"HALT":            console.Halt,
	"IGNORE":          console.Ignore,
	"EXECUTESPECIAL":  console.ExecuteSpecial,
	"EXECUTEADDRESSB": console.ExecuteAddressB,
}

// Load reads and parses a configuration file.
func Load(name string) (*Config, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := &Config{MemoryMode: memory.ModeLR}
	reader := bufio.NewReader(file)
	lineNumber := 0
	for {
		raw, err := reader.ReadString('\n')
		lineNumber++
		if len(raw) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if parseErr := cfg.parseLine(raw, lineNumber); parseErr != nil {
			return nil, parseErr
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}
	return cfg, nil
}

func (cfg *Config) parseLine(raw string, lineNumber int) error {
	line := &optionLine{line: raw}

	directive, ok := line.getName()
	if !ok {
		return nil
	}
	directive = strings.ToUpper(directive)

	line.skipSpace()
	value := strings.TrimSpace(line.rest())

	switch directive {
	case "LISTING":
		cfg.ListingPath = value
	case "WIRE1":
		cfg.WirePaths[0] = value
	case "WIRE2":
		cfg.WirePaths[1] = value
	case "WIRE3":
		cfg.WirePaths[2] = value
	case "MEMORYMODE":
		mode, ok := memoryModes[strings.ToUpper(value)]
		if !ok {
			return fmt.Errorf("configparser: line %d: unknown memory mode %q", lineNumber, value)
		}
		cfg.MemoryMode = mode
	case "EXCESSCAPACITYADD":
		action, ok := excessCapacityActions[strings.ToUpper(value)]
		if !ok {
			return fmt.Errorf("configparser: line %d: unknown excess capacity action %q", lineNumber, value)
		}
		cfg.ExcessCapacityActionAdd = action
	case "EXCESSCAPACITYDIV":
		action, ok := excessCapacityActions[strings.ToUpper(value)]
		if !ok {
			return fmt.Errorf("configparser: line %d: unknown excess capacity action %q", lineNumber, value)
		}
		cfg.ExcessCapacityActionDiv = action
	case "LOGFILE":
		cfg.LogFile = value
	case "DEBUG":
		cfg.Debug = true
	default:
		return fmt.Errorf("configparser: line %d: unknown directive %q", lineNumber, directive)
	}
	return nil
}

// optionLine is a minimal hand-rolled tokenizer over one line of input: a
// leading directive name followed by free-form text, with '#' introducing
// a trailing comment.
type optionLine struct {
	line string
	pos  int
}

func (l *optionLine) isEOL() bool {
	if l.pos >= len(l.line) {
		return true
	}
	return l.line[l.pos] == '#'
}

func (l *optionLine) skipSpace() {
	for !l.isEOL() && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

// getName returns the next whitespace-delimited token, and whether one was
// found.
func (l *optionLine) getName() (string, bool) {
	l.skipSpace()
	if l.isEOL() {
		return "", false
	}
	start := l.pos
	for !l.isEOL() && !unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
	return l.line[start:l.pos], true
}

// rest returns everything remaining on the line up to a comment.
func (l *optionLine) rest() string {
	if l.isEOL() {
		return ""
	}
	end := len(l.line)
	if idx := strings.IndexByte(l.line[l.pos:], '#'); idx >= 0 {
		end = l.pos + idx
	}
	return l.line[l.pos:end]
}
