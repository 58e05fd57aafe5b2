/*
   Machine: channel-driven EDVAC worker.

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

// Package machine runs a core.Computer on a dedicated goroutine and
// exposes it to callers (a REPL, a GUI event loop) through a single
// command channel, so the rest of the program never touches the Computer
// directly while it is live.
package machine

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/edvacsim/edvac/emu/console"
	"github.com/edvacsim/edvac/emu/core"
	"github.com/edvacsim/edvac/emu/wire"
	"github.com/edvacsim/edvac/emu/word"
	"github.com/edvacsim/edvac/util/logger"
)

// CommandKind identifies the operation a Command carries.
type CommandKind int

const (
	// Initiate presses the console's Initiate button.
	Initiate CommandKind = iota
	// Halt presses the console's Halt button.
	Halt
	// ModifyState applies a State field change named by the command's
	// other fields.
	ModifyState
	// LoadWire mounts a Wire image onto a spool.
	LoadWire
)

// Command is a single instruction sent to a running Worker. Only the
// fields relevant to Kind are read.
type Command struct {
	Kind CommandKind

	// ModifyState payload.
	OperatingMode           *console.OperatingMode
	AuxiliaryInputSwitches  *word.Word
	ExcessCapacityActionAdd *console.ExcessCapacityAction
	ExcessCapacityActionDiv *console.ExcessCapacityAction
	SpecialOrderSwitches    *word.Word
	AddressA                *int
	AddressB                *int

	// LoadWire payload.
	Spool wire.Spool
	Wire  *wire.Wire
}

// Worker owns a core.Computer and drives it on its own goroutine. Commands
// are drained non-blockingly (one per step) while the machine is running,
// and blockingly while it is halted, matching the original console's
// "don't busy-wait a halted machine" behavior.
type Worker struct {
	commands chan Command
	done     chan struct{}
	group    *errgroup.Group

	// Computer is exposed for read-only inspection (dump, status) from the
	// caller's goroutine between Start and Stop; callers must not mutate it
	// directly while the worker is running.
	Computer *core.Computer
}

// NewWorker returns a Worker wrapping a freshly constructed Computer. Start
// must be called to begin running it.
func NewWorker() *Worker {
	return &Worker{
		commands: make(chan Command),
		done:     make(chan struct{}),
		Computer: core.New(),
	}
}

// Start launches the worker goroutine.
func (w *Worker) Start() {
	group, _ := errgroup.WithContext(context.Background())
	w.group = group
	w.group.Go(w.run)
}

func (w *Worker) run() error {
	for {
		select {
		case <-w.done:
			logger.WithResumeAddr(slog.Default(), w.Computer.Status.ResumeAddr).Info("machine: worker shutting down")
			return nil
		default:
		}

		if w.Computer.Status.Running {
			select {
			case cmd := <-w.commands:
				w.handle(cmd)
			default:
			}

			switch w.Computer.State.OperatingMode {
			case console.SpecialOneOrder:
				w.Computer.ExecuteSpecialOrder()
			case console.NormalToAddressA:
				if w.Computer.State.InitialAddressRegister == w.Computer.State.AddressASwitches {
					w.Computer.HaltPressed()
				} else {
					w.Computer.StepOnce()
				}
			case console.NormalOneOrder:
				w.Computer.StepOnce()
				w.Computer.HaltPressed()
			default: // NormalToCompletion
				w.Computer.StepOnce()
			}
		} else {
			select {
			case <-w.done:
				logger.WithResumeAddr(slog.Default(), w.Computer.Status.ResumeAddr).Info("machine: worker shutting down")
				return nil
			case cmd := <-w.commands:
				w.handle(cmd)
			}
		}
	}
}

func (w *Worker) handle(cmd Command) {
	c := w.Computer
	switch cmd.Kind {
	case Initiate:
		c.InitiatePressed()
	case Halt:
		c.HaltPressed()
	case ModifyState:
		if cmd.OperatingMode != nil {
			c.State.OperatingMode = *cmd.OperatingMode
		}
		if cmd.AuxiliaryInputSwitches != nil {
			c.State.AuxiliaryInputSwitches = *cmd.AuxiliaryInputSwitches
		}
		if cmd.ExcessCapacityActionAdd != nil {
			c.State.ExcessCapacityActionAdd = *cmd.ExcessCapacityActionAdd
		}
		if cmd.ExcessCapacityActionDiv != nil {
			c.State.ExcessCapacityActionDiv = *cmd.ExcessCapacityActionDiv
		}
		if cmd.SpecialOrderSwitches != nil {
			c.State.SpecialOrderSwitches = *cmd.SpecialOrderSwitches
		}
		if cmd.AddressA != nil {
			c.State.AddressASwitches = *cmd.AddressA
		}
		if cmd.AddressB != nil {
			c.State.AddressBSwitches = *cmd.AddressB
		}
	case LoadWire:
		c.LoadWire(cmd.Spool, cmd.Wire)
	}
}

// Send delivers a command to the worker, blocking until it is accepted.
func (w *Worker) Send(cmd Command) {
	w.commands <- cmd
}

// Stop signals the worker to exit and waits for it to do so, propagating
// any error the worker goroutine returned.
func (w *Worker) Stop() error {
	close(w.done)
	return w.group.Wait()
}
