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

// control register indices for CFC2/CTC2.
const (
	CtrlVCO = 0
	CtrlVCC = 1
	CtrlVCE = 2
)

// VU is the vector unit of the RSP.
type VU struct {
	// the thirty-two vector registers
	Regs [32]Register

	// the accumulator
	Acc Accumulator

	// VCO: carry (low half) and not-equal (high half) flags
	vcoCarry [8]bool
	vcoNE    [8]bool

	// VCC: compare (low half) and clip (high half) flags
	vccCompare [8]bool
	vccClip    [8]bool

	// VCE: compare extension flags
	vce [8]bool

	// the split 32-bit reciprocal protocol. divIn is only meaningful
	// while divInLoaded is set, which happens on VRCPH/VRSQH and ends on
	// the next VRCPL/VRSQL.
	divIn       uint16
	divOut      uint16
	divInLoaded bool
}

// NewVU is the preferred method of initialisation for the VU type.
func NewVU() *VU {
	return &VU{}
}

// Reset the vector unit to its power-on state.
func (v *VU) Reset() {
	*v = VU{}
}

// Snapshot creates a copy of the VU in its current state.
func (v *VU) Snapshot() *VU {
	n := *v
	return &n
}

// VCO returns the VCO flag bank: carry flags in the low byte, not-equal
// flags in the high byte, lane 0 at bit 0.
func (v *VU) VCO() uint16 {
	return packFlags(&v.vcoCarry) | packFlags(&v.vcoNE)<<8
}

// SetVCO sets the VCO flag bank.
func (v *VU) SetVCO(val uint16) {
	unpackFlags(&v.vcoCarry, uint8(val))
	unpackFlags(&v.vcoNE, uint8(val>>8))
}

// VCC returns the VCC flag bank: compare flags in the low byte, clip flags
// in the high byte.
func (v *VU) VCC() uint16 {
	return packFlags(&v.vccCompare) | packFlags(&v.vccClip)<<8
}

// SetVCC sets the VCC flag bank.
func (v *VU) SetVCC(val uint16) {
	unpackFlags(&v.vccCompare, uint8(val))
	unpackFlags(&v.vccClip, uint8(val>>8))
}

// VCE returns the VCE flag bank.
func (v *VU) VCE() uint8 {
	return uint8(packFlags(&v.vce))
}

// SetVCE sets the VCE flag bank.
func (v *VU) SetVCE(val uint8) {
	unpackFlags(&v.vce, val)
}

// DivOut returns the high half of the last reciprocal result.
func (v *VU) DivOut() uint16 { return v.divOut }

// DivInLoaded reports whether a VRCPH/VRSQH has primed the high half of a
// 32-bit reciprocal input.
func (v *VU) DivInLoaded() bool { return v.divInLoaded }

func packFlags(f *[8]bool) uint16 {
	var r uint16
	for i := 0; i < 8; i++ {
		if f[i] {
			r |= 1 << i
		}
	}
	return r
}

func unpackFlags(f *[8]bool, val uint8) {
	for i := 0; i < 8; i++ {
		f[i] = val&(1<<i) != 0
	}
}

// vop is the pre-parsed operand bundle of a COP2 compute instruction.
type vop struct {
	e  int // element selector, bits 24..21
	vt int // source register, bits 20..16
	vs int // source register, bits 15..11 (destination element for single-lane ops)
	vd int // destination register, bits 10..6
}

type computeFunc func(v *VU, op vop)

// the 64-entry dispatch table for the COP2 function field. Entries left
// nil decode to no-operation; reserved encodings do not trap on the
// hardware.
var computeTable = [64]computeFunc{
	0x00: vMULF,
	0x01: vMULU,
	0x04: vMUDL,
	0x05: vMUDM,
	0x06: vMUDN,
	0x07: vMUDH,
	0x08: vMACF,
	0x09: vMACU,
	0x0c: vMADL,
	0x0d: vMADM,
	0x0e: vMADN,
	0x0f: vMADH,
	0x10: vADD,
	0x11: vSUB,
	0x13: vABS,
	0x14: vADDC,
	0x15: vSUBC,
	0x17: vSUBB,
	0x19: vSUCB,
	0x1d: vSAR,
	0x20: vLT,
	0x21: vEQ,
	0x22: vNE,
	0x23: vGE,
	0x24: vCL,
	0x25: vCH,
	0x26: vCR,
	0x27: vMRG,
	0x28: vAND,
	0x29: vNAND,
	0x2a: vOR,
	0x2b: vNOR,
	0x2c: vXOR,
	0x2d: vNXOR,
	0x30: vRCP,
	0x31: vRCPL,
	0x32: vRCPH,
	0x33: vMOV,
	0x34: vRSQ,
	0x35: vRSQL,
	0x36: vRSQH,
	0x37: vNOP, // VNOP
	0x3f: vNOP, // VNULL
}

// Op executes a COP2 compute instruction (bit 25 of the opcode set). The
// caller has already classified the instruction; only the fields below the
// coprocessor number are examined here.
func (v *VU) Op(op uint32) {
	f := computeTable[op&0x3f]
	if f == nil {
		return
	}
	f(v, vop{
		e:  int(op>>21) & 0xf,
		vt: int(op>>16) & 0x1f,
		vs: int(op>>11) & 0x1f,
		vd: int(op>>6) & 0x1f,
	})
}

func vNOP(v *VU, op vop) {}
