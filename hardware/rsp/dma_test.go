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
	"testing"

	"github.com/rasky/r64emu/hardware/rsp"
	"github.com/rasky/r64emu/test"
)

func TestDMARoundTrip(t *testing.T) {
	b := &testBus{}
	for i := 0; i < 0x100; i++ {
		b.dram[0x1000+i] = byte(i * 3)
	}
	r := rsp.NewRSP(b)

	// DRAM 0x1000 -> DMEM 0
	r.RegisterWrite(rsp.RegMemAddr, 0)
	r.RegisterWrite(rsp.RegDRAMAddr, 0x1000)
	r.RegisterWrite(rsp.RegRdLen, 0xff)

	for i := 0; i < 0x100; i++ {
		test.Equate(t, r.DMem[i], byte(i*3))
	}

	// DMEM 0 -> DRAM 0x2000
	r.RegisterWrite(rsp.RegMemAddr, 0)
	r.RegisterWrite(rsp.RegDRAMAddr, 0x2000)
	r.RegisterWrite(rsp.RegWrLen, 0xff)

	for i := 0; i < 0x100; i++ {
		test.Equate(t, b.dram[0x2000+i], byte(i*3))
	}
}

func TestDMAToIMEM(t *testing.T) {
	b := &testBus{}
	for i := 0; i < 8; i++ {
		b.dram[0x100+i] = byte(0x40 + i)
	}
	r := rsp.NewRSP(b)

	r.RegisterWrite(rsp.RegMemAddr, 0x1000) // bank bit selects IMEM
	r.RegisterWrite(rsp.RegDRAMAddr, 0x100)
	r.RegisterWrite(rsp.RegRdLen, 7)

	for i := 0; i < 8; i++ {
		test.Equate(t, r.IMem[i], byte(0x40+i))
	}
	test.Equate(t, r.DMem[0], 0)
}

func TestDMASkip(t *testing.T) {
	b := &testBus{}
	for i := 0; i < 0x40; i++ {
		b.dram[i] = byte(i)
	}
	r := rsp.NewRSP(b)

	// two 8-byte strips separated by 8 bytes of DRAM; the DMEM side is
	// contiguous
	r.RegisterWrite(rsp.RegMemAddr, 0)
	r.RegisterWrite(rsp.RegDRAMAddr, 0)
	r.RegisterWrite(rsp.RegRdLen, 8<<20|1<<12|7)

	for i := 0; i < 8; i++ {
		test.Equate(t, r.DMem[i], byte(i))
		test.Equate(t, r.DMem[8+i], byte(16+i))
	}
}

func TestDMABusyAndFullReadClear(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)

	r.RegisterWrite(rsp.RegMemAddr, 0)
	r.RegisterWrite(rsp.RegDRAMAddr, 0)
	r.RegisterWrite(rsp.RegRdLen, 0xff)

	// transfers are synchronous: polling microcode always sees the
	// engine idle
	test.Equate(t, regRead(t, r, rsp.RegDMABusy), 0)
	test.Equate(t, regRead(t, r, rsp.RegDMAFull), 0)
	test.Equate(t, regRead(t, r, rsp.RegStatus)&rsp.StatusDMABusy, 0)
}

func TestDMAAddressesAdvance(t *testing.T) {
	b := &testBus{}
	r := rsp.NewRSP(b)

	r.RegisterWrite(rsp.RegMemAddr, 0)
	r.RegisterWrite(rsp.RegDRAMAddr, 0x1000)
	r.RegisterWrite(rsp.RegRdLen, 0xff)

	test.Equate(t, regRead(t, r, rsp.RegDRAMAddr), 0x1100)
	test.Equate(t, regRead(t, r, rsp.RegMemAddr), 0x100)
}
