/*
 * EDVAC - Configuration file parser test set.
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
package configparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edvacsim/edvac/emu/console"
	"github.com/edvacsim/edvac/emu/memory"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "machine.cfg")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeTempConfig(t, "listing prog.asm\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListingPath != "prog.asm" {
		t.Errorf("ListingPath = %q, want prog.asm", cfg.ListingPath)
	}
	if cfg.MemoryMode != memory.ModeLR {
		t.Errorf("MemoryMode = %v, want ModeLR (default)", cfg.MemoryMode)
	}
	if cfg.ExcessCapacityActionAdd != console.Halt {
		t.Errorf("ExcessCapacityActionAdd = %v, want Halt (zero value default)", cfg.ExcessCapacityActionAdd)
	}
}

func TestLoadFullConfig(t *testing.T) {
	body := `# machine config
listing decimal_to_binary.asm
wire1 tapes/one.wire
wire2 tapes/two.wire
wire3 tapes/three.wire
memorymode L0
excesscapacityadd Ignore
excesscapacitydiv ExecuteSpecial
logfile run.log
debug
`
	cfg, err := Load(writeTempConfig(t, body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListingPath != "decimal_to_binary.asm" {
		t.Errorf("ListingPath = %q", cfg.ListingPath)
	}
	if cfg.WirePaths != [3]string{"tapes/one.wire", "tapes/two.wire", "tapes/three.wire"} {
		t.Errorf("WirePaths = %v", cfg.WirePaths)
	}
	if cfg.MemoryMode != memory.ModeL0 {
		t.Errorf("MemoryMode = %v, want ModeL0", cfg.MemoryMode)
	}
	if cfg.ExcessCapacityActionAdd != console.Ignore {
		t.Errorf("ExcessCapacityActionAdd = %v, want Ignore", cfg.ExcessCapacityActionAdd)
	}
	if cfg.ExcessCapacityActionDiv != console.ExecuteSpecial {
		t.Errorf("ExcessCapacityActionDiv = %v, want ExecuteSpecial", cfg.ExcessCapacityActionDiv)
	}
	if cfg.LogFile != "run.log" {
		t.Errorf("LogFile = %q, want run.log", cfg.LogFile)
	}
	if !cfg.Debug {
		t.Errorf("Debug = false, want true")
	}
}

func TestLoadUnknownDirective(t *testing.T) {
	_, err := Load(writeTempConfig(t, "bogus value\n"))
	if err == nil {
		t.Fatalf("expected error for unknown directive")
	}
}

func TestLoadSkipsCommentsAndBlankLines(t *testing.T) {
	body := "\n# just a comment\n\nlisting prog.asm   # trailing comment\n"
	cfg, err := Load(writeTempConfig(t, body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListingPath != "prog.asm" {
		t.Errorf("ListingPath = %q, want prog.asm (comment stripped)", cfg.ListingPath)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.cfg")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
