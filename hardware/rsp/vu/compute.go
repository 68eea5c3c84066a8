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

// vADD: VD = saturate(VS + VT + VCO carry). The carry participates in the
// saturation: 0x7FFF + 0 + carry must stay 0x7FFF. ACC_LO takes the
// unsaturated sum. Both halves of VCO clear.
func vADD(v *VU, op vop) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		c := int32(0)
		if v.vcoCarry[i] {
			c = 1
		}
		r := int32(int16(vs.Lane(i))) + int32(int16(vt.Lane(i))) + c
		v.Acc.SetLo(i, uint16(r))
		out.SetLane(i, clampSigned(r))
		v.vcoCarry[i] = false
		v.vcoNE[i] = false
	}
	v.Regs[op.vd] = out
}

// vSUB: VD = saturate(VS - VT - VCO carry); mirror of vADD.
func vSUB(v *VU, op vop) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		c := int32(0)
		if v.vcoCarry[i] {
			c = 1
		}
		r := int32(int16(vs.Lane(i))) - int32(int16(vt.Lane(i))) - c
		v.Acc.SetLo(i, uint16(r))
		out.SetLane(i, clampSigned(r))
		v.vcoCarry[i] = false
		v.vcoNE[i] = false
	}
	v.Regs[op.vd] = out
}

// vABS: VD = sign(VS) * VT. Negating 0x8000 saturates the register result
// to 0x7FFF but the accumulator keeps the unsaturated 0x8000.
func vABS(v *VU, op vop) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		s := int16(vs.Lane(i))
		t := vt.Lane(i)
		var res, acc uint16
		switch {
		case s < 0 && t == 0x8000:
			res, acc = 0x7fff, 0x8000
		case s < 0:
			res = uint16(-int16(t))
			acc = res
		case s == 0:
			res, acc = 0, 0
		default:
			res, acc = t, t
		}
		v.Acc.SetLo(i, acc)
		out.SetLane(i, res)
	}
	v.Regs[op.vd] = out
}

// vADDC: unsaturated add; the 17th bit of each sum lands in the VCO carry
// flag and the not-equal half clears.
func vADDC(v *VU, op vop) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		sum := uint32(vs.Lane(i)) + uint32(vt.Lane(i))
		v.Acc.SetLo(i, uint16(sum))
		out.SetLane(i, uint16(sum))
		v.vcoCarry[i] = sum > 0xffff
		v.vcoNE[i] = false
	}
	v.Regs[op.vd] = out
}

// vSUBC: unsaturated subtract; borrow lands in the VCO carry flag and a
// nonzero difference sets the not-equal flag.
func vSUBC(v *VU, op vop) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		diff := int32(vs.Lane(i)) - int32(vt.Lane(i))
		v.Acc.SetLo(i, uint16(diff))
		out.SetLane(i, uint16(diff))
		v.vcoCarry[i] = diff < 0
		v.vcoNE[i] = diff != 0
	}
	v.Regs[op.vd] = out
}

// vSUBB and vSUCB are undocumented: the lane sums reach ACC_LO but the
// destination register is zeroed.
func vSUBB(v *VU, op vop) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	for i := 0; i < 8; i++ {
		v.Acc.SetLo(i, vs.Lane(i)+vt.Lane(i))
	}
	v.Regs[op.vd] = Register{}
}

func vSUCB(v *VU, op vop) {
	vSUBB(v, op)
}

// vSAR reads one third of the accumulator into VD. Elements 8/9/10 select
// HI/MD/LO; every other element yields zero. The accumulator itself is
// never written, despite what the programming manuals say.
func vSAR(v *VU, op vop) {
	switch op.e {
	case 8:
		v.Regs[op.vd] = v.Acc.HiVector()
	case 9:
		v.Regs[op.vd] = v.Acc.MdVector()
	case 10:
		v.Regs[op.vd] = v.Acc.LoVector()
	default:
		v.Regs[op.vd] = Register{}
	}
}

func vAND(v *VU, op vop) {
	logical(v, op, func(s, t uint16) uint16 { return s & t })
}

func vNAND(v *VU, op vop) {
	logical(v, op, func(s, t uint16) uint16 { return ^(s & t) })
}

func vOR(v *VU, op vop) {
	logical(v, op, func(s, t uint16) uint16 { return s | t })
}

func vNOR(v *VU, op vop) {
	logical(v, op, func(s, t uint16) uint16 { return ^(s | t) })
}

func vXOR(v *VU, op vop) {
	logical(v, op, func(s, t uint16) uint16 { return s ^ t })
}

func vNXOR(v *VU, op vop) {
	logical(v, op, func(s, t uint16) uint16 { return ^(s ^ t) })
}

func logical(v *VU, op vop, f func(s, t uint16) uint16) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		r := f(vs.Lane(i), vt.Lane(i))
		v.Acc.SetLo(i, r)
		out.SetLane(i, r)
	}
	v.Regs[op.vd] = out
}

// vMOV copies a single lane of VT into a single lane of VD. The source
// lane goes through the single-lane merge quirk; ACC_LO takes the whole of
// VT.
func vMOV(v *VU, op vop) {
	se := singleLaneSource(op.e, op.vs)
	vt := v.Regs[op.vt]
	res := vt.Lane(se)
	for i := 0; i < 8; i++ {
		v.Acc.SetLo(i, vt.Lane(i))
	}
	v.Regs[op.vd].SetLane(op.vs&7, res)
}
