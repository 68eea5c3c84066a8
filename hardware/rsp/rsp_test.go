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

package rsp_test

import (
	"encoding/binary"
	"testing"

	"github.com/rasky/r64emu/curated"
	"github.com/rasky/r64emu/hardware/rsp"
	"github.com/rasky/r64emu/test"
)

// testBus is a minimal console for the RSP to live in: a slab of DRAM and
// an interrupt counter.
type testBus struct {
	dram       [0x10000]byte
	interrupts int
}

func (b *testBus) ReadDRAM(addr uint32, p []byte) {
	copy(p, b.dram[addr:])
}

func (b *testBus) WriteDRAM(addr uint32, p []byte) {
	copy(b.dram[addr:], p)
}

func (b *testBus) RaiseInterrupt() {
	b.interrupts++
}

// assembler helpers. enough of MIPS to write test microcode inline.

func opR(funct, rs, rt, rd, sa int) uint32 {
	return uint32(rs)<<21 | uint32(rt)<<16 | uint32(rd)<<11 | uint32(sa)<<6 | uint32(funct)
}

func opI(opcode, rs, rt int, imm uint16) uint32 {
	return uint32(opcode)<<26 | uint32(rs)<<21 | uint32(rt)<<16 | uint32(imm)
}

func addiu(rt, rs int, imm uint16) uint32 { return opI(0x09, rs, rt, imm) }
func ori(rt, rs int, imm uint16) uint32   { return opI(0x0d, rs, rt, imm) }
func opBreak() uint32                     { return 0x0d }

func mtc0(rt, rd int) uint32 {
	return 0x10<<26 | 0x04<<21 | uint32(rt)<<16 | uint32(rd)<<11
}

func putProgram(r *rsp.RSP, words ...uint32) {
	for i, w := range words {
		binary.BigEndian.PutUint32(r.IMem[i*4:], w)
	}
}

func run(r *rsp.RSP, n int) int {
	// release HALT the way the host does
	r.RegisterWrite(rsp.RegStatus, 1<<0)
	return r.Step(n)
}

func regRead(t *testing.T, r *rsp.RSP, offset uint32) uint32 {
	t.Helper()
	val, err := r.RegisterRead(offset)
	if err != nil {
		t.Fatal(err)
	}
	return val
}

func TestResetState(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)

	test.Equate(t, r.Halted(), true)
	test.Equate(t, r.PC(), 0)
	test.Equate(t, regRead(t, r, rsp.RegStatus), rsp.StatusHalt)
}

func TestUnknownRegister(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)

	// the SP register block ends at the semaphore; nothing decodes past it
	_, err := r.RegisterRead(0x24)
	if !curated.Is(err, rsp.UnknownRegister) {
		t.Errorf("unexpected error from register read: %v", err)
	}

	err = r.RegisterWrite(0x24, 0xffffffff)
	if !curated.Is(err, rsp.UnknownRegister) {
		t.Errorf("unexpected error from register write: %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)

	putProgram(r,
		addiu(1, 0, 5),
		opBreak(), 0,
	)
	run(r, 100)
	r.VU.Regs[3].SetLane(0, 0x1234)

	snap := r.Snapshot()
	snap.Plumb(&testBus{})

	// mutating the original must not reach the snapshot, vector unit
	// included
	r.GPR[1] = 99
	r.VU.Regs[3].SetLane(0, 0xdead)

	test.Equate(t, snap.GPR[1], 5)
	test.Equate(t, snap.VU.Regs[3].Lane(0), 0x1234)
	// external observers see the big-endian lane layout
	test.Equate(t, snap.VU.Regs[3].Byte(0), 0x12)
	test.Equate(t, snap.VU.Regs[3].Byte(1), 0x34)
}

func TestBreakRunsDelaySlot(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)

	putProgram(r,
		addiu(1, 0, 5),
		opBreak(),
		addiu(1, 1, 1),
	)

	executed := run(r, 100)

	// the instruction after BREAK retires before the core stops
	test.Equate(t, executed, 3)
	test.Equate(t, r.GPR[1], 6)
	test.Equate(t, r.Halted(), true)
	test.Equate(t, regRead(t, r, rsp.RegStatus)&rsp.StatusBroke, rsp.StatusBroke)
	test.Equate(t, b.interrupts, 0) // interrupt-on-break not armed
}

func TestBreakInterrupt(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)
	r.RegisterWrite(rsp.RegStatus, 1<<8) // arm interrupt-on-break

	putProgram(r, opBreak(), 0)
	run(r, 100)

	test.Equate(t, b.interrupts, 1)
}

func TestBrokeLatchesUntilCleared(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)
	putProgram(r, opBreak(), 0)
	run(r, 100)

	test.Equate(t, regRead(t, r, rsp.RegStatus)&rsp.StatusBroke, rsp.StatusBroke)
	r.RegisterWrite(rsp.RegStatus, 1<<2)
	test.Equate(t, regRead(t, r, rsp.RegStatus)&rsp.StatusBroke, 0)
}

func TestStatusCommands(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)

	r.RegisterWrite(rsp.RegStatus, 1<<10) // set SIG0
	test.Equate(t, regRead(t, r, rsp.RegStatus)&rsp.StatusSig0, rsp.StatusSig0)

	r.RegisterWrite(rsp.RegStatus, 1<<24) // set SIG7
	test.Equate(t, regRead(t, r, rsp.RegStatus)&rsp.StatusSig7, rsp.StatusSig7)

	r.RegisterWrite(rsp.RegStatus, 1<<9) // clear SIG0
	test.Equate(t, regRead(t, r, rsp.RegStatus)&rsp.StatusSig0, 0)

	r.RegisterWrite(rsp.RegStatus, 1<<4) // set SP interrupt
	test.Equate(t, b.interrupts, 1)
}

func TestSingleStep(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)

	putProgram(r,
		addiu(1, 0, 1),
		addiu(2, 0, 2),
		addiu(3, 0, 3),
	)

	// release halt and arm single-step in one command
	r.RegisterWrite(rsp.RegStatus, 1<<0|1<<6)
	executed := r.Step(100)

	test.Equate(t, executed, 1)
	test.Equate(t, r.GPR[1], 1)
	test.Equate(t, r.GPR[2], 0)
	test.Equate(t, r.Halted(), true)
}

func TestSemaphore(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)

	test.Equate(t, regRead(t, r, rsp.RegSemaphore), 0) // acquired
	test.Equate(t, regRead(t, r, rsp.RegSemaphore), 1) // contended
	r.RegisterWrite(rsp.RegSemaphore, 0) // release
	test.Equate(t, regRead(t, r, rsp.RegSemaphore), 0)
}

func TestPCWriteOnlyWhileHalted(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)

	r.SetPC(0x80)
	test.Equate(t, r.PC(), 0x80)

	// run microcode that loops forever; a PC write must be ignored
	putProgram(r, 0, 0, 0, 0)
	r.SetPC(0)
	r.RegisterWrite(rsp.RegStatus, 1<<0)
	r.Step(2)
	r.SetPC(0x40)
	test.Equate(t, r.PC(), 8)
}

func TestGPRZeroSink(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)

	putProgram(r,
		addiu(0, 0, 1234),
		ori(0, 0, 0xffff),
		opBreak(), 0,
	)
	run(r, 100)

	test.Equate(t, r.GPR[0], 0)
}

func TestHaltFromMicrocode(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)

	// mtc0 $1, SP_STATUS with the set-halt command bit
	putProgram(r,
		ori(1, 0, 1<<1),
		mtc0(1, 4),
		addiu(2, 0, 7),
	)
	executed := run(r, 100)

	// halt is honored at the next instruction boundary
	test.Equate(t, executed, 2)
	test.Equate(t, r.GPR[2], 0)
	test.Equate(t, r.Halted(), true)
}

func TestResumeDoesNotReset(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)

	putProgram(r,
		addiu(1, 0, 1),
		opBreak(), 0,
		addiu(1, 1, 1),
		opBreak(), 0,
	)
	run(r, 100)
	test.Equate(t, r.GPR[1], 1)

	// clear BROKE and restart: execution continues after the break
	r.RegisterWrite(rsp.RegStatus, 1<<2|1<<0)
	r.Step(100)
	test.Equate(t, r.GPR[1], 2)
	test.Equate(t, r.Halted(), true)
}
