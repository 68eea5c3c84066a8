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

package vu

import (
	"math"
	"math/bits"
)

// The reciprocal unit. A 32-bit quotient is produced from a 512-entry
// mantissa ROM: the input is made positive, normalised so the leading one
// sits at bit 31, and the next nine bits index the ROM. VRSQ folds the
// lowest index bit with the parity of the normalisation shift, which
// halves the exponent. Negative inputs complement the result on the way
// out.
//
// The ROM contents are a fixed property of the chip. They are generated
// at startup from the closed forms below, which reproduce the silicon
// tables exactly; generating them beats carrying a thousand opaque
// literals in the source.
var rcpROM [512]uint16
var rsqROM [512]uint16

func init() {
	for i := uint64(0); i < 512; i++ {
		if i == 0 {
			rcpROM[i] = 0xffff
		} else {
			rcpROM[i] = uint16(((1<<34)/(i+512) + 1) >> 8)
		}

		a := (i + 512) >> (i & 1)
		b := uint64(math.Sqrt(float64(uint64(1)<<44) / float64(a)))
		if b > 2 {
			b -= 2
		}
		for a*(b+1)*(b+1) < 1<<44 {
			b++
		}
		rsqROM[i] = uint16(b >> 1)
	}
}

// rcp32 computes the 32-bit reciprocal quotient of a signed input. Zero
// saturates to all ones; the one input whose absolute value has no
// 16-bit representation (-32768) short-circuits to the hardware constant.
func rcp32(x int32) uint32 {
	if x == 0 {
		return 0xffffffff
	}
	if uint32(x) == 0xffff8000 {
		return 0xffff0000
	}

	mask := x >> 31
	data := x ^ mask
	if x > -32768 {
		data -= mask
	}

	shift := bits.LeadingZeros32(uint32(data))
	idx := uint64(uint32(data)) << shift >> 22 & 0x1ff
	q := uint64(0x10000|uint32(rcpROM[idx])) + 1

	r := q << 15 >> (31 - shift)
	if r > 0xffffffff {
		r = 0xffffffff
	}
	return uint32(r) ^ uint32(mask)
}

// rsq32 computes the 32-bit reciprocal square root quotient of a signed
// input, with the same special cases as rcp32.
func rsq32(x int32) uint32 {
	if x == 0 {
		return 0xffffffff
	}
	if uint32(x) == 0xffff8000 {
		return 0xffff0000
	}

	mask := x >> 31
	data := x ^ mask
	if x > -32768 {
		data -= mask
	}

	shift := bits.LeadingZeros32(uint32(data))
	idx := uint64(uint32(data))<<shift>>22&0x1fe | uint64(shift&1)
	q := uint64(0x10000|uint32(rsqROM[idx])) + 1

	r := q << 15 >> ((31 - shift) >> 1)
	if r > 0xffffffff {
		r = 0xffffffff
	}
	return uint32(r) ^ uint32(mask)
}

// reciprocal runs the shared plumbing of the six reciprocal ops: source
// lane selection through the single-lane quirk, ACC_LO side-loading with
// the whole of VT, and the DIV_OUT update.
func (v *VU) reciprocal(op vop, f func(int32) uint32) {
	se := singleLaneSource(op.e, op.vs)
	vt := v.Regs[op.vt]

	var in int32
	if v.divInLoaded {
		in = int32(uint32(v.divIn)<<16 | uint32(vt.Lane(se)))
	} else {
		in = int32(int16(vt.Lane(se)))
	}
	res := f(in)

	for i := 0; i < 8; i++ {
		v.Acc.SetLo(i, vt.Lane(i))
	}
	v.Regs[op.vd].SetLane(op.vs&7, uint16(res))
	v.divOut = uint16(res >> 16)
	v.divInLoaded = false
}

// vRCP and vRSQ are the single-precision forms: any pending DIV_IN is
// discarded before the input is read.
func vRCP(v *VU, op vop) {
	v.divInLoaded = false
	v.reciprocal(op, rcp32)
}

func vRSQ(v *VU, op vop) {
	v.divInLoaded = false
	v.reciprocal(op, rsq32)
}

// vRCPL and vRSQL consume a DIV_IN high half if one was loaded, otherwise
// they degrade to the single-precision behavior.
func vRCPL(v *VU, op vop) {
	v.reciprocal(op, rcp32)
}

func vRSQL(v *VU, op vop) {
	v.reciprocal(op, rsq32)
}

// vRCPH and vRSQH (identical in operation) return the high half of the
// previous quotient and prime DIV_IN for a following L-form.
func vRCPH(v *VU, op vop) {
	se := singleLaneSource(op.e, op.vs)
	vt := v.Regs[op.vt]

	for i := 0; i < 8; i++ {
		v.Acc.SetLo(i, vt.Lane(i))
	}
	v.Regs[op.vd].SetLane(op.vs&7, v.divOut)
	v.divIn = vt.Lane(se)
	v.divInLoaded = true
}

func vRSQH(v *VU, op vop) {
	vRCPH(v, op)
}
