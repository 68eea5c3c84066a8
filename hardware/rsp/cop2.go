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
	"github.com/rasky/r64emu/hardware/rsp/vu"
)

// The COP2 bridge between the scalar and vector units. Compute
// instructions (bit 25 set) go straight to the vector unit; the move
// instructions below transfer 16-bit quantities between the two register
// files.

func suCOP2(r *RSP, op instruction) {
	if op&(1<<25) != 0 {
		r.VU.Op(uint32(op))
		return
	}

	switch op.rs() {
	case 0x00: // MFC2
		e := int(op>>7) & 0xf
		reg := &r.VU.Regs[op.rd()]
		val := uint16(reg.Byte(e))<<8 | uint16(reg.Byte((e+1)&15))
		r.setGPR(op.rt(), uint32(int32(int16(val))))
	case 0x04: // MTC2
		e := int(op>>7) & 0xf
		reg := &r.VU.Regs[op.rd()]
		val := uint16(r.GPR[op.rt()])
		reg.SetByte(e, uint8(val>>8))
		reg.SetByte((e+1)&15, uint8(val))
	case 0x02: // CFC2
		switch op.rd() {
		case vu.CtrlVCO:
			r.setGPR(op.rt(), uint32(int32(int16(r.VU.VCO()))))
		case vu.CtrlVCC:
			r.setGPR(op.rt(), uint32(int32(int16(r.VU.VCC()))))
		case vu.CtrlVCE:
			r.setGPR(op.rt(), uint32(r.VU.VCE()))
		default:
			r.setGPR(op.rt(), 0)
		}
	case 0x06: // CTC2
		val := r.GPR[op.rt()]
		switch op.rd() {
		case vu.CtrlVCO:
			r.VU.SetVCO(uint16(val))
		case vu.CtrlVCC:
			r.VU.SetVCC(uint16(val))
		case vu.CtrlVCE:
			r.VU.SetVCE(uint8(val))
		}
	}
}

func suLWC2(r *RSP, op instruction) {
	r.VU.Load(uint32(op), r.GPR[op.rs()], r.DMem[:])
}

func suSWC2(r *RSP, op instruction) {
	r.VU.Store(uint32(op), r.GPR[op.rs()], r.DMem[:])
}
