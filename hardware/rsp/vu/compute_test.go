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

package vu_test

import (
	"testing"

	"github.com/rasky/r64emu/hardware/rsp/vu"
	"github.com/rasky/r64emu/test"
)

// cop2 assembles a COP2 compute instruction word.
func cop2(funct, vd, vs, vt, e int) uint32 {
	return 0x12<<26 | 1<<25 | uint32(e)<<21 | uint32(vt)<<16 | uint32(vs)<<11 | uint32(vd)<<6 | uint32(funct)
}

const (
	fnVMULF = 0x00
	fnVMULU = 0x01
	fnVMUDH = 0x07
	fnVMACF = 0x08
	fnVMADH = 0x0f
	fnVADD  = 0x10
	fnVADDC = 0x14
	fnVSUBC = 0x15
	fnVSAR  = 0x1d
	fnVAND  = 0x28
	fnVMOV  = 0x33
)

func setAllLanes(r *vu.Register, val uint16) {
	for i := 0; i < 8; i++ {
		r.SetLane(i, val)
	}
}

func TestVMULFSmoke(t *testing.T) {
	v := vu.NewVU()
	v.Regs[0].SetLane(0, 0x4000)
	setAllLanes(&v.Regs[1], 0x4000)

	v.Op(cop2(fnVMULF, 2, 0, 1, 0))

	test.Equate(t, v.Regs[2].Lane(0), 0x2000)
	test.Equate(t, v.Acc.Md(0), 0x2000)
	test.Equate(t, v.Acc.Lo(0), 0x8000)
	test.Equate(t, v.Acc.Hi(0), 0)

	// remaining lanes multiplied zero by 0x4000; only the rounding bias
	// reaches the accumulator
	test.Equate(t, v.Regs[2].Lane(1), 0)
	test.Equate(t, v.Acc.Lo(1), 0x8000)
}

func TestVMULFPositiveSaturation(t *testing.T) {
	v := vu.NewVU()
	setAllLanes(&v.Regs[0], 0x8000)
	setAllLanes(&v.Regs[1], 0x8000)

	v.Op(cop2(fnVMULF, 2, 0, 1, 0))

	// -1.0 * -1.0 saturates to +0x7FFF
	for i := 0; i < 8; i++ {
		test.Equate(t, v.Regs[2].Lane(i), 0x7fff)
	}
	test.Equate(t, v.Acc.Md(0), 0x8000)
	test.Equate(t, v.Acc.Lo(0), 0x8000)
	test.Equate(t, v.Acc.Hi(0), 0)
}

func TestVMULUNegativeClampsToZero(t *testing.T) {
	v := vu.NewVU()
	setAllLanes(&v.Regs[0], 0x8000)
	setAllLanes(&v.Regs[1], 0x0001)

	v.Op(cop2(fnVMULU, 2, 0, 1, 0))

	for i := 0; i < 8; i++ {
		test.Equate(t, v.Regs[2].Lane(i), 0)
	}
	// accumulator keeps the negative product
	if v.Acc.Lane(0) >= 0 {
		t.Errorf("accumulator lane should be negative (%#x)", v.Acc.Lane(0))
	}
}

func TestVADDSaturationAndCarry(t *testing.T) {
	v := vu.NewVU()
	setAllLanes(&v.Regs[0], 0x7fff)
	setAllLanes(&v.Regs[1], 0x0000)
	v.SetVCO(0x0001) // carry into lane 0

	v.Op(cop2(fnVADD, 2, 0, 1, 0))

	test.Equate(t, v.Regs[2].Lane(0), 0x7fff) // saturated
	test.Equate(t, v.Acc.Lo(0), 0x8000)       // unsaturated sum
	test.Equate(t, v.Regs[2].Lane(1), 0x7fff) // no carry
	test.Equate(t, v.Acc.Lo(1), 0x7fff)
	test.Equate(t, v.VCO(), 0) // both halves clear
}

func TestVADDCCarryOut(t *testing.T) {
	v := vu.NewVU()
	v.Regs[0].SetLane(0, 0xffff)
	v.Regs[1].SetLane(0, 0x0002)

	v.Op(cop2(fnVADDC, 2, 0, 1, 0))

	test.Equate(t, v.Regs[2].Lane(0), 0x0001)
	test.Equate(t, v.Acc.Lo(0), 0x0001)
	test.Equate(t, v.VCO(), 0x0001) // carry lane 0, not-equal clear
}

func TestVSUBCFlags(t *testing.T) {
	v := vu.NewVU()
	v.Regs[0].SetLane(0, 0x0001)
	v.Regs[1].SetLane(0, 0x0002)
	v.Regs[0].SetLane(1, 0x0005)
	v.Regs[1].SetLane(1, 0x0002)
	// lane 2: equal operands

	v.Op(cop2(fnVSUBC, 2, 0, 1, 0))

	test.Equate(t, v.Regs[2].Lane(0), 0xffff)
	// lane 0: borrow and not-equal; lane 1: not-equal only; lane 2: none
	test.Equate(t, v.VCO(), 0x0301)
}

func TestVSARReadsAccumulator(t *testing.T) {
	v := vu.NewVU()
	setAllLanes(&v.Regs[0], 0x0002)
	setAllLanes(&v.Regs[1], 0x0003)
	v.Op(cop2(fnVMUDH, 2, 0, 1, 0)) // acc = 6 << 16 per lane

	v.Op(cop2(fnVSAR, 3, 0, 0, 8)) // ACC_HI
	v.Op(cop2(fnVSAR, 4, 0, 0, 9)) // ACC_MD
	v.Op(cop2(fnVSAR, 5, 0, 0, 10)) // ACC_LO
	v.Op(cop2(fnVSAR, 6, 0, 0, 0)) // reserved element reads zero

	test.Equate(t, v.Regs[3].Lane(0), 0)
	test.Equate(t, v.Regs[4].Lane(0), 6)
	test.Equate(t, v.Regs[5].Lane(0), 0)
	test.Equate(t, v.Regs[6].Lane(0), 0)

	// VSAR never writes the accumulator
	test.Equate(t, v.Acc.Md(0), 6)
}

func TestVMACAccumulatorWrap(t *testing.T) {
	v := vu.NewVU()
	setAllLanes(&v.Regs[0], 0x7fff)
	setAllLanes(&v.Regs[1], 0x7fff)

	v.Op(cop2(fnVMUDH, 2, 0, 1, 0))
	for i := 0; i < 3; i++ {
		v.Op(cop2(fnVMADH, 2, 0, 1, 0))
	}

	// 4 * 0x3FFF0001_0000 pushes past 2^47; the accumulator wraps to
	// negative and the signed read saturates low
	if v.Acc.Lane(0) >= 0 {
		t.Errorf("accumulator lane should have wrapped negative (%#x)", v.Acc.Lane(0))
	}
	test.Equate(t, v.Regs[2].Lane(0), 0x8000)
}

func TestBroadcastSplat(t *testing.T) {
	v := vu.NewVU()
	for i := 0; i < 8; i++ {
		v.Regs[1].SetLane(i, uint16(i))
	}

	v.Op(cop2(fnVADD, 2, 0, 1, 8+3)) // vt[e3] splat

	for i := 0; i < 8; i++ {
		test.Equate(t, v.Regs[2].Lane(i), 3)
	}
}

func TestBroadcastHalves(t *testing.T) {
	v := vu.NewVU()
	for i := 0; i < 8; i++ {
		v.Regs[1].SetLane(i, uint16(i))
	}

	v.Op(cop2(fnVADD, 2, 0, 1, 4)) // 0h: lanes 0,0,0,0,4,4,4,4

	want := []int{0, 0, 0, 0, 4, 4, 4, 4}
	for i := 0; i < 8; i++ {
		test.Equate(t, v.Regs[2].Lane(i), want[i])
	}
}

func TestVANDWritesAccumulator(t *testing.T) {
	v := vu.NewVU()
	setAllLanes(&v.Regs[0], 0xf0f0)
	setAllLanes(&v.Regs[1], 0x3c3c)

	v.Op(cop2(fnVAND, 2, 0, 1, 0))

	test.Equate(t, v.Regs[2].Lane(0), 0x3030)
	test.Equate(t, v.Acc.Lo(0), 0x3030)
}

func TestVMOVSingleLaneQuirk(t *testing.T) {
	v := vu.NewVU()
	for i := 0; i < 8; i++ {
		v.Regs[1].SetLane(i, uint16(0x100+i))
	}

	// vt element 2, destination element 5: the field merge selects
	// source lane (5 &^ 1) | (2 & 1) = 4
	v.Op(cop2(fnVMOV, 2, 5, 1, 2))

	test.Equate(t, v.Regs[2].Lane(5), 0x104)
	test.Equate(t, v.Regs[2].Lane(0), 0)
	test.Equate(t, v.Acc.Lo(3), 0x103) // ACC_LO takes the whole of VT
}

func TestGoldenVMACF(t *testing.T) {
	v := vu.NewVU()
	setAllLanes(&v.Regs[0], 0x0100)
	setAllLanes(&v.Regs[1], 0x0200)

	v.Op(cop2(fnVMULF, 2, 0, 1, 0))
	// acc = 0x100*0x200*2 + 0x8000 = 0x48000
	test.Equate(t, v.Acc.Md(0), 4)
	test.Equate(t, v.Acc.Lo(0), 0x8000)

	v.Op(cop2(fnVMACF, 2, 0, 1, 0))
	// acc += 0x40000 (no rounding on accumulate) = 0x88000
	test.Equate(t, v.Acc.Md(0), 8)
	test.Equate(t, v.Acc.Lo(0), 0x8000)
	test.Equate(t, v.Regs[2].Lane(0), 8)
}
