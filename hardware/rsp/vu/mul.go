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

// The multiply family. Every op multiplies the eight lane pairs of VS and
// VT (through the element selector), deposits the product in the 48-bit
// accumulator - replacing it for the VMUL/VMUD forms, adding to it for the
// VMAC/VMAD forms - and reads one field of the accumulator back into VD
// through an op-specific clamp.
//
// The four signedness combinations position the 32-bit product at
// different accumulator offsets:
//
//	VMUDL  unsigned * unsigned   product >> 16
//	VMUDM  signed   * unsigned   product
//	VMUDN  unsigned * signed     product
//	VMUDH  signed   * signed     product << 16
//
// VMULF/VMULU double the signed product and add a rounding bias of 0x8000;
// their accumulating forms (VMACF/VMACU) double but do not round.

type mulProduct func(s, t uint16) int64
type mulResult func(a *Accumulator, idx int) uint16

func mulLoop(v *VU, op vop, mac bool, product mulProduct, result mulResult) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		p := product(vs.Lane(i), vt.Lane(i))
		if mac {
			v.Acc.AddLane(i, p)
		} else {
			v.Acc.SetLane(i, p)
		}
		out.SetLane(i, result(&v.Acc, i))
	}
	v.Regs[op.vd] = out
}

func mulFract(s, t uint16) int64 {
	return int64(int16(s))*int64(int16(t))*2 + 0x8000
}

func macFract(s, t uint16) int64 {
	return int64(int16(s)) * int64(int16(t)) * 2
}

func mulLowLow(s, t uint16) int64 {
	return int64(uint64(s) * uint64(t) >> 16)
}

func mulMidM(s, t uint16) int64 {
	return int64(int16(s)) * int64(t)
}

func mulMidN(s, t uint16) int64 {
	return int64(s) * int64(int16(t))
}

func mulHigh(s, t uint16) int64 {
	return int64(int16(s)) * int64(int16(t)) << 16
}

func vMULF(v *VU, op vop) {
	mulLoop(v, op, false, mulFract, (*Accumulator).clampSignedLane)
}

func vMULU(v *VU, op vop) {
	mulLoop(v, op, false, mulFract, (*Accumulator).clampUnsignedMd)
}

func vMACF(v *VU, op vop) {
	mulLoop(v, op, true, macFract, (*Accumulator).clampSignedLane)
}

func vMACU(v *VU, op vop) {
	mulLoop(v, op, true, macFract, (*Accumulator).clampUnsignedMd)
}

func vMUDL(v *VU, op vop) {
	mulLoop(v, op, false, mulLowLow, (*Accumulator).clampUnsignedLo)
}

func vMADL(v *VU, op vop) {
	mulLoop(v, op, true, mulLowLow, (*Accumulator).clampUnsignedLo)
}

func vMUDM(v *VU, op vop) {
	// no clamp: with a fresh product ACC_HI is the sign extension of
	// ACC_MD, so the VMADM clamp would misread negative products
	mulLoop(v, op, false, mulMidM, (*Accumulator).Md)
}

func vMADM(v *VU, op vop) {
	mulLoop(v, op, true, mulMidM, (*Accumulator).clampUnsignedMd)
}

func vMUDN(v *VU, op vop) {
	mulLoop(v, op, false, mulMidN, (*Accumulator).clampUnsignedLo)
}

func vMADN(v *VU, op vop) {
	mulLoop(v, op, true, mulMidN, (*Accumulator).clampUnsignedLo)
}

func vMUDH(v *VU, op vop) {
	mulLoop(v, op, false, mulHigh, (*Accumulator).clampSignedLane)
}

func vMADH(v *VU, op vop) {
	mulLoop(v, op, true, mulHigh, (*Accumulator).clampSignedLane)
}
