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

// The compare/select family. The flag algebra here was reverse engineered
// from silicon; the equal-with-carry tie-break rules in VLT/VGE and the
// three-way flag exchange of VCH/VCL are exactly what the hardware does,
// not what the programming manual describes.

// vLT: per-lane signed less-than. An equal pair counts as less-than only
// when both VCO flags of the lane are set (the VSUBC/VCH prologue leaves
// them that way for borrow lanes). VD and ACC_LO receive the minimum.
func vLT(v *VU, op vop) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		s := int16(vs.Lane(i))
		t := int16(vt.Lane(i))
		cond := s < t || (s == t && v.vcoCarry[i] && v.vcoNE[i])
		res := vt.Lane(i)
		if cond {
			res = vs.Lane(i)
		}
		v.Acc.SetLo(i, res)
		out.SetLane(i, res)
		v.vccCompare[i] = cond
		v.vccClip[i] = false
		v.vcoCarry[i] = false
		v.vcoNE[i] = false
	}
	v.Regs[op.vd] = out
}

// vEQ: per-lane equality, masked by the VCO not-equal flag.
func vEQ(v *VU, op vop) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		cond := vs.Lane(i) == vt.Lane(i) && !v.vcoNE[i]
		res := vt.Lane(i)
		if cond {
			res = vs.Lane(i)
		}
		v.Acc.SetLo(i, res)
		out.SetLane(i, res)
		v.vccCompare[i] = cond
		v.vccClip[i] = false
		v.vcoCarry[i] = false
		v.vcoNE[i] = false
	}
	v.Regs[op.vd] = out
}

// vNE: per-lane inequality; an equal pair still counts as not-equal when
// the VCO not-equal flag is set.
func vNE(v *VU, op vop) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		cond := vs.Lane(i) != vt.Lane(i) || v.vcoNE[i]
		res := vt.Lane(i)
		if cond {
			res = vs.Lane(i)
		}
		v.Acc.SetLo(i, res)
		out.SetLane(i, res)
		v.vccCompare[i] = cond
		v.vccClip[i] = false
		v.vcoCarry[i] = false
		v.vcoNE[i] = false
	}
	v.Regs[op.vd] = out
}

// vGE: per-lane signed greater-or-equal; the mirror of vLT's tie-break:
// an equal pair counts as greater-or-equal unless both VCO flags are set.
func vGE(v *VU, op vop) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		s := int16(vs.Lane(i))
		t := int16(vt.Lane(i))
		cond := s > t || (s == t && !(v.vcoCarry[i] && v.vcoNE[i]))
		res := vt.Lane(i)
		if cond {
			res = vs.Lane(i)
		}
		v.Acc.SetLo(i, res)
		out.SetLane(i, res)
		v.vccCompare[i] = cond
		v.vccClip[i] = false
		v.vcoCarry[i] = false
		v.vcoNE[i] = false
	}
	v.Regs[op.vd] = out
}

// vCH: clip test high. Sets up all three flag banks for a following vCL.
// The lane behavior depends on whether the operand signs differ.
func vCH(v *VU, op vop) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		s := int16(vs.Lane(i))
		t := int16(vt.Lane(i))
		sign := (s ^ t) < 0

		var le, ge, vce, ne bool
		var res uint16
		if sign {
			sum := int32(s) + int32(t)
			ge = t < 0
			le = sum <= 0
			vce = sum == -1
			ne = sum != 0 && sum != -1
			if le {
				res = uint16(-t)
			} else {
				res = uint16(s)
			}
		} else {
			diff := int32(s) - int32(t)
			le = t < 0
			ge = diff >= 0
			ne = diff != 0
			if ge {
				res = uint16(t)
			} else {
				res = uint16(s)
			}
		}

		v.Acc.SetLo(i, res)
		out.SetLane(i, res)
		v.vccCompare[i] = le
		v.vccClip[i] = ge
		v.vce[i] = vce
		v.vcoCarry[i] = sign
		v.vcoNE[i] = ne
	}
	v.Regs[op.vd] = out
}

// vCL: clip test low. Consumes the flags a previous vCH (or CTC2) left
// behind: VCO carry selects the sign interpretation per lane, VCO
// not-equal freezes the lane's compare flag, VCE widens the equality test
// by one.
func vCL(v *VU, op vop) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		s := vs.Lane(i)
		t := vt.Lane(i)
		sign := v.vcoCarry[i]
		le := v.vccCompare[i]
		ge := v.vccClip[i]

		if sign {
			if !v.vcoNE[i] {
				sum := uint32(s) + uint32(t)
				ncarry := sum <= 0xffff
				diZero := uint16(s+t) == 0
				if v.vce[i] {
					le = diZero || ncarry
				} else {
					le = diZero && ncarry
				}
			}
		} else {
			if !v.vcoNE[i] {
				ge = s >= t
			}
		}

		vtAbs := t
		if sign {
			vtAbs = uint16(-int16(t))
		}
		sel := ge
		if sign {
			sel = le
		}
		res := s
		if sel {
			res = vtAbs
		}

		v.Acc.SetLo(i, res)
		out.SetLane(i, res)
		v.vccCompare[i] = le
		v.vccClip[i] = ge
		v.vcoCarry[i] = false
		v.vcoNE[i] = false
		v.vce[i] = false
	}
	v.Regs[op.vd] = out
}

// vCR: single-precision clip against a one's-complement bound. Like vCH
// with the select producing ~VT instead of -VT. VCC receives the compare
// and clip flags; VCO and VCE are left clear.
func vCR(v *VU, op vop) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		s := int16(vs.Lane(i))
		t := int16(vt.Lane(i))
		sign := (s ^ t) < 0

		var le, ge bool
		var res uint16
		if sign {
			ge = t < 0
			le = int32(s)+int32(t) < 0
			if le {
				res = ^uint16(t)
			} else {
				res = uint16(s)
			}
		} else {
			le = t < 0
			ge = int32(s)-int32(t) >= 0
			if ge {
				res = uint16(t)
			} else {
				res = uint16(s)
			}
		}

		v.Acc.SetLo(i, res)
		out.SetLane(i, res)
		v.vccCompare[i] = le
		v.vccClip[i] = ge
		v.vcoCarry[i] = false
		v.vcoNE[i] = false
		v.vce[i] = false
	}
	v.Regs[op.vd] = out
}

// vMRG merges VS and VT lane by lane under the VCC compare flags. VCO
// clears; VCC is left alone.
func vMRG(v *VU, op vop) {
	vs := v.Regs[op.vs]
	vt := v.broadcast(op.vt, op.e)
	var out Register
	for i := 0; i < 8; i++ {
		res := vt.Lane(i)
		if v.vccCompare[i] {
			res = vs.Lane(i)
		}
		v.Acc.SetLo(i, res)
		out.SetLane(i, res)
		v.vcoCarry[i] = false
		v.vcoNE[i] = false
	}
	v.Regs[op.vd] = out
}
