/*
 * EDVAC - Main process.
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

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/edvacsim/edvac/command/reader"
	"github.com/edvacsim/edvac/config/configparser"
	"github.com/edvacsim/edvac/emu/assemble"
	"github.com/edvacsim/edvac/emu/machine"
	"github.com/edvacsim/edvac/emu/wire"
	"github.com/edvacsim/edvac/util/logger"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "edvac.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cfg, err := configparser.Load(*optConfig)
	if err != nil {
		slog.Error("can't load configuration file", "path", *optConfig, "error", err)
		os.Exit(1)
	}

	logPath := cfg.LogFile
	if *optLogFile != "" {
		logPath = *optLogFile
	}
	var file *os.File
	if logPath != "" {
		file, err = os.Create(logPath)
		if err != nil {
			slog.Error("can't create log file", "path", logPath, "error", err)
			os.Exit(1)
		}
	}

	programLevel := new(slog.LevelVar)
	if cfg.Debug {
		programLevel.Set(slog.LevelDebug)
	} else {
		programLevel.Set(slog.LevelInfo)
	}
	debug := cfg.Debug
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, &debug))
	slog.SetDefault(Logger)

	Logger.Info("EDVAC emulator started")

	w := machine.NewWorker()
	w.Computer.State.MemoryMode = cfg.MemoryMode
	w.Computer.State.ExcessCapacityActionAdd = cfg.ExcessCapacityActionAdd
	w.Computer.State.ExcessCapacityActionDiv = cfg.ExcessCapacityActionDiv

	if cfg.ListingPath != "" {
		data, err := os.ReadFile(cfg.ListingPath)
		if err != nil {
			Logger.Error("can't read listing file", "path", cfg.ListingPath, "error", err)
			os.Exit(1)
		}
		w.Computer.LoadMemory(assembler.AssembleMemory(string(data)))
	}

	spools := [3]wire.Spool{wire.One, wire.Two, wire.Three}
	for i, path := range cfg.WirePaths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			Logger.Error("can't read wire image", "path", path, "error", err)
			os.Exit(1)
		}
		w.Computer.LoadWire(spools[i], assembler.Assemble(string(data)))
	}

	w.Start()
	reader.ConsoleReader(w)

	Logger.Info("shutting down machine worker")
	if err := w.Stop(); err != nil {
		Logger.Error("worker shutdown returned an error", "error", err)
	}
	Logger.Info("stopped")
}
