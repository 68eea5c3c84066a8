// This file is part of r64emu.
//
// r64emu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// r64emu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with r64emu.  If not, see <https://www.gnu.org/licenses/>.

package rsp

import (
	"encoding/binary"
	"fmt"

	"github.com/rasky/r64emu/hardware/bus"
	"github.com/rasky/r64emu/hardware/rsp/vu"
	"github.com/rasky/r64emu/logger"
)

// RSP implements the Reality Signal Processor. The scalar register file
// and the two memories are exported for the benefit of the outer emulator
// and of savestates; everything that requires bookkeeping on access goes
// through methods.
type RSP struct {
	// instruction and data memory. both are addressed with wrap at 4 KiB
	IMem [0x1000]byte
	DMem [0x1000]byte

	// the scalar register file. GPR[0] reads zero; writes to it go
	// through setGPR() which drops them
	GPR [32]uint32

	// HI/LO multiply-divide results
	hi uint32
	lo uint32

	// pc is the address of the next instruction to execute and nextPC
	// the one after that. branches redirect nextPC, which models the
	// delay slot: the instruction at pc still executes before the branch
	// lands
	pc     uint32
	nextPC uint32

	// the vector coprocessor
	VU *vu.VU

	// SP_STATUS bits
	status uint32

	// the SP semaphore. reads acquire, writes release
	semaphore uint32

	// DMA registers. memAddr carries the bank select in bit 12
	memAddr  uint32
	dramAddr uint32
	rdLen    uint32
	wrLen    uint32

	// countdown of instructions still to retire after a BREAK. set to
	// two by the instruction itself so that the following instruction
	// (the delay slot) completes before the core stops
	breakDelay int

	bus bus.Bus
}

// NewRSP is the preferred method of initialisation for the RSP type. The
// bus argument must not be nil.
func NewRSP(b bus.Bus) *RSP {
	r := &RSP{
		VU:  vu.NewVU(),
		bus: b,
	}
	r.Reset()
	return r
}

// Reset the RSP to its power-on state: memories and registers zeroed, PC
// at the top of IMEM and the HALT bit raised.
func (r *RSP) Reset() {
	r.IMem = [0x1000]byte{}
	r.DMem = [0x1000]byte{}
	r.GPR = [32]uint32{}
	r.hi = 0
	r.lo = 0
	r.pc = 0
	r.nextPC = 4
	r.VU.Reset()
	r.status = StatusHalt
	r.semaphore = 0
	r.memAddr = 0
	r.dramAddr = 0
	r.rdLen = 0
	r.wrLen = 0
	r.breakDelay = 0
}

// Snapshot creates a copy of the RSP in its current state, for savestates
// and rewind. The vector unit is deep-copied; the bus reference is shared
// with the original until a Plumb() replaces it.
func (r *RSP) Snapshot() *RSP {
	n := *r
	n.VU = r.VU.Snapshot()
	return &n
}

// Plumb a new bus into the RSP. Used after a Snapshot has been restored
// into a different console instance.
func (r *RSP) Plumb(b bus.Bus) {
	r.bus = b
}

func (r *RSP) String() string {
	return fmt.Sprintf("pc=%03x status=%04x", r.pc, r.status)
}

// Halted reports whether the core is currently refusing to issue
// instructions.
func (r *RSP) Halted() bool {
	return r.status&StatusHalt != 0
}

// PC returns the SP_PC register.
func (r *RSP) PC() uint32 {
	return r.pc & 0xfff
}

// SetPC writes the SP_PC register. The register is only writable while
// the core is halted; the hardware ignores writes at any other time.
func (r *RSP) SetPC(val uint32) {
	if !r.Halted() {
		logger.Log("rsp", "SP_PC write while running ignored")
		return
	}
	r.pc = val & 0xffc
	r.nextPC = (r.pc + 4) & 0xffc
}

// Step executes up to n instructions, returning the number actually
// retired. Execution ends early when the HALT bit rises: from microcode
// writing the status register, from a BREAK instruction (after its delay
// slot), or from single-stepping.
func (r *RSP) Step(n int) int {
	executed := 0
	for executed < n && !r.Halted() {
		r.step()
		executed++
	}
	return executed
}

func (r *RSP) step() {
	op := instruction(binary.BigEndian.Uint32(r.IMem[r.pc&0xffc:]))
	r.pc = r.nextPC
	r.nextPC = (r.nextPC + 4) & 0xffc
	r.execute(op)

	if r.breakDelay > 0 {
		r.breakDelay--
		if r.breakDelay == 0 {
			r.raiseBreak()
		}
	}

	if r.status&StatusSingleStep != 0 {
		r.status |= StatusHalt
	}
}

// raiseBreak finishes a BREAK instruction: the core stops, the BROKE bit
// latches until the host clears it, and the SP interrupt fires if armed.
func (r *RSP) raiseBreak() {
	r.status |= StatusHalt | StatusBroke
	logger.Logf("rsp", "break at pc=%03x", r.pc)
	if r.status&StatusInterruptOnBreak != 0 {
		r.bus.RaiseInterrupt()
	}
}
