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

// The scalar unit: the MIPS I integer subset that RSP microcode uses.
// There is no TLB and no exception machinery, so the trapping arithmetic
// ops behave exactly like their unsigned twins and reserved encodings
// retire as no-operations. All data accesses go to DMEM and wrap at 4 KiB.

// instruction is a raw 32-bit opcode word with accessors for the MIPS
// operand fields.
type instruction uint32

// register index in bits [25:21]
func (op instruction) rs() int {
	return int(op>>21) & 0x1f
}

// register index in bits [20:16]
func (op instruction) rt() int {
	return int(op>>16) & 0x1f
}

// register index in bits [15:11]
func (op instruction) rd() int {
	return int(op>>11) & 0x1f
}

// shift amount in bits [10:6]
func (op instruction) sa() int {
	return int(op>>6) & 0x1f
}

// immediate value in bits [15:0]
func (op instruction) imm() uint32 {
	return uint32(op) & 0xffff
}

// immediate value in bits [15:0], sign-extended
func (op instruction) simm() int32 {
	return int32(int16(op))
}

// jump target in bits [25:0]
func (op instruction) target() uint32 {
	return uint32(op) & 0x3ffffff
}

func (op instruction) funct() int {
	return int(op) & 0x3f
}

type suFunc func(r *RSP, op instruction)

// the three dispatch tables of the scalar decoder: major opcode, SPECIAL
// function and REGIMM rt field. nil entries retire as no-operations; the
// RSP has no reserved-instruction trap.
var majorTable = [64]suFunc{
	0x00: suSPECIAL,
	0x01: suREGIMM,
	0x02: suJ,
	0x03: suJAL,
	0x04: suBEQ,
	0x05: suBNE,
	0x06: suBLEZ,
	0x07: suBGTZ,
	0x08: suADDI,
	0x09: suADDIU,
	0x0a: suSLTI,
	0x0b: suSLTIU,
	0x0c: suANDI,
	0x0d: suORI,
	0x0e: suXORI,
	0x0f: suLUI,
	0x10: suCOP0,
	0x12: suCOP2,
	0x20: suLB,
	0x21: suLH,
	0x23: suLW,
	0x24: suLBU,
	0x25: suLHU,
	0x27: suLWU,
	0x28: suSB,
	0x29: suSH,
	0x2b: suSW,
	0x32: suLWC2,
	0x3a: suSWC2,
}

var specialTable = [64]suFunc{
	0x00: suSLL,
	0x02: suSRL,
	0x03: suSRA,
	0x04: suSLLV,
	0x06: suSRLV,
	0x07: suSRAV,
	0x08: suJR,
	0x09: suJALR,
	0x0d: suBREAK,
	0x10: suMFHI,
	0x11: suMTHI,
	0x12: suMFLO,
	0x13: suMTLO,
	0x18: suMULT,
	0x19: suMULTU,
	0x1a: suDIV,
	0x1b: suDIVU,
	0x20: suADD,
	0x21: suADDU,
	0x22: suSUB,
	0x23: suSUBU,
	0x24: suAND,
	0x25: suOR,
	0x26: suXOR,
	0x27: suNOR,
	0x2a: suSLT,
	0x2b: suSLTU,
}

var regimmTable = [32]suFunc{
	0x00: suBLTZ,
	0x01: suBGEZ,
	0x10: suBLTZAL,
	0x11: suBGEZAL,
}

func (r *RSP) execute(op instruction) {
	if f := majorTable[op>>26]; f != nil {
		f(r, op)
	}
}

func suSPECIAL(r *RSP, op instruction) {
	if f := specialTable[op.funct()]; f != nil {
		f(r, op)
	}
}

func suREGIMM(r *RSP, op instruction) {
	if f := regimmTable[op.rt()]; f != nil {
		f(r, op)
	}
}

// setGPR writes a scalar register, keeping GPR[0] a zero sink.
func (r *RSP) setGPR(idx int, val uint32) {
	if idx != 0 {
		r.GPR[idx] = val
	}
}

// branch redirects nextPC. At this point r.pc is already the address of
// the delay slot, so the MIPS branch target arithmetic is r.pc plus the
// shifted offset.
func (r *RSP) branch(op instruction, taken bool) {
	if taken {
		r.nextPC = (r.pc + uint32(op.simm()<<2)) & 0xffc
	}
}

// jump

func suJ(r *RSP, op instruction) {
	r.nextPC = op.target() << 2 & 0xffc
}

func suJAL(r *RSP, op instruction) {
	r.setGPR(31, (r.pc+4)&0xffc)
	r.nextPC = op.target() << 2 & 0xffc
}

func suJR(r *RSP, op instruction) {
	r.nextPC = r.GPR[op.rs()] & 0xffc
}

func suJALR(r *RSP, op instruction) {
	target := r.GPR[op.rs()] & 0xffc
	r.setGPR(op.rd(), (r.pc+4)&0xffc)
	r.nextPC = target
}

// branch

func suBEQ(r *RSP, op instruction) {
	r.branch(op, r.GPR[op.rs()] == r.GPR[op.rt()])
}

func suBNE(r *RSP, op instruction) {
	r.branch(op, r.GPR[op.rs()] != r.GPR[op.rt()])
}

func suBLEZ(r *RSP, op instruction) {
	r.branch(op, int32(r.GPR[op.rs()]) <= 0)
}

func suBGTZ(r *RSP, op instruction) {
	r.branch(op, int32(r.GPR[op.rs()]) > 0)
}

func suBLTZ(r *RSP, op instruction) {
	r.branch(op, int32(r.GPR[op.rs()]) < 0)
}

func suBGEZ(r *RSP, op instruction) {
	r.branch(op, int32(r.GPR[op.rs()]) >= 0)
}

func suBLTZAL(r *RSP, op instruction) {
	taken := int32(r.GPR[op.rs()]) < 0
	r.setGPR(31, (r.pc+4)&0xffc)
	r.branch(op, taken)
}

func suBGEZAL(r *RSP, op instruction) {
	taken := int32(r.GPR[op.rs()]) >= 0
	r.setGPR(31, (r.pc+4)&0xffc)
	r.branch(op, taken)
}

// alu immediate. ADDI is ADDIU: the RSP has no overflow trap.

func suADDI(r *RSP, op instruction) {
	suADDIU(r, op)
}

func suADDIU(r *RSP, op instruction) {
	r.setGPR(op.rt(), r.GPR[op.rs()]+uint32(op.simm()))
}

func suSLTI(r *RSP, op instruction) {
	if int32(r.GPR[op.rs()]) < op.simm() {
		r.setGPR(op.rt(), 1)
	} else {
		r.setGPR(op.rt(), 0)
	}
}

func suSLTIU(r *RSP, op instruction) {
	if r.GPR[op.rs()] < uint32(op.simm()) {
		r.setGPR(op.rt(), 1)
	} else {
		r.setGPR(op.rt(), 0)
	}
}

func suANDI(r *RSP, op instruction) {
	r.setGPR(op.rt(), r.GPR[op.rs()]&op.imm())
}

func suORI(r *RSP, op instruction) {
	r.setGPR(op.rt(), r.GPR[op.rs()]|op.imm())
}

func suXORI(r *RSP, op instruction) {
	r.setGPR(op.rt(), r.GPR[op.rs()]^op.imm())
}

func suLUI(r *RSP, op instruction) {
	r.setGPR(op.rt(), op.imm()<<16)
}

// alu register

func suADD(r *RSP, op instruction) {
	suADDU(r, op)
}

func suADDU(r *RSP, op instruction) {
	r.setGPR(op.rd(), r.GPR[op.rs()]+r.GPR[op.rt()])
}

func suSUB(r *RSP, op instruction) {
	suSUBU(r, op)
}

func suSUBU(r *RSP, op instruction) {
	r.setGPR(op.rd(), r.GPR[op.rs()]-r.GPR[op.rt()])
}

func suAND(r *RSP, op instruction) {
	r.setGPR(op.rd(), r.GPR[op.rs()]&r.GPR[op.rt()])
}

func suOR(r *RSP, op instruction) {
	r.setGPR(op.rd(), r.GPR[op.rs()]|r.GPR[op.rt()])
}

func suXOR(r *RSP, op instruction) {
	r.setGPR(op.rd(), r.GPR[op.rs()]^r.GPR[op.rt()])
}

func suNOR(r *RSP, op instruction) {
	r.setGPR(op.rd(), ^(r.GPR[op.rs()] | r.GPR[op.rt()]))
}

func suSLT(r *RSP, op instruction) {
	if int32(r.GPR[op.rs()]) < int32(r.GPR[op.rt()]) {
		r.setGPR(op.rd(), 1)
	} else {
		r.setGPR(op.rd(), 0)
	}
}

func suSLTU(r *RSP, op instruction) {
	if r.GPR[op.rs()] < r.GPR[op.rt()] {
		r.setGPR(op.rd(), 1)
	} else {
		r.setGPR(op.rd(), 0)
	}
}

// shifts

func suSLL(r *RSP, op instruction) {
	r.setGPR(op.rd(), r.GPR[op.rt()]<<op.sa())
}

func suSRL(r *RSP, op instruction) {
	r.setGPR(op.rd(), r.GPR[op.rt()]>>op.sa())
}

func suSRA(r *RSP, op instruction) {
	r.setGPR(op.rd(), uint32(int32(r.GPR[op.rt()])>>op.sa()))
}

func suSLLV(r *RSP, op instruction) {
	r.setGPR(op.rd(), r.GPR[op.rt()]<<(r.GPR[op.rs()]&0x1f))
}

func suSRLV(r *RSP, op instruction) {
	r.setGPR(op.rd(), r.GPR[op.rt()]>>(r.GPR[op.rs()]&0x1f))
}

func suSRAV(r *RSP, op instruction) {
	r.setGPR(op.rd(), uint32(int32(r.GPR[op.rt()])>>(r.GPR[op.rs()]&0x1f)))
}

// multiply / divide

func suMULT(r *RSP, op instruction) {
	prod := int64(int32(r.GPR[op.rs()])) * int64(int32(r.GPR[op.rt()]))
	r.lo = uint32(prod)
	r.hi = uint32(prod >> 32)
}

func suMULTU(r *RSP, op instruction) {
	prod := uint64(r.GPR[op.rs()]) * uint64(r.GPR[op.rt()])
	r.lo = uint32(prod)
	r.hi = uint32(prod >> 32)
}

func suDIV(r *RSP, op instruction) {
	num := int32(r.GPR[op.rs()])
	den := int32(r.GPR[op.rt()])
	switch {
	case den == 0:
		// no trap; the MIPS-documented garbage values
		r.hi = uint32(num)
		if num >= 0 {
			r.lo = 0xffffffff
		} else {
			r.lo = 1
		}
	case num == -0x80000000 && den == -1:
		r.lo = 0x80000000
		r.hi = 0
	default:
		r.lo = uint32(num / den)
		r.hi = uint32(num % den)
	}
}

func suDIVU(r *RSP, op instruction) {
	num := r.GPR[op.rs()]
	den := r.GPR[op.rt()]
	if den == 0 {
		r.lo = 0xffffffff
		r.hi = num
		return
	}
	r.lo = num / den
	r.hi = num % den
}

func suMFHI(r *RSP, op instruction) {
	r.setGPR(op.rd(), r.hi)
}

func suMTHI(r *RSP, op instruction) {
	r.hi = r.GPR[op.rs()]
}

func suMFLO(r *RSP, op instruction) {
	r.setGPR(op.rd(), r.lo)
}

func suMTLO(r *RSP, op instruction) {
	r.lo = r.GPR[op.rs()]
}

// loads and stores. accesses are byte-assembled so that unaligned
// addresses and the 4 KiB wrap fall out of the same code path.

func (r *RSP) dmemRead8(addr uint32) uint8 {
	return r.DMem[addr&0xfff]
}

func (r *RSP) dmemRead16(addr uint32) uint16 {
	return uint16(r.dmemRead8(addr))<<8 | uint16(r.dmemRead8(addr+1))
}

func (r *RSP) dmemRead32(addr uint32) uint32 {
	return uint32(r.dmemRead16(addr))<<16 | uint32(r.dmemRead16(addr+2))
}

func (r *RSP) dmemWrite8(addr uint32, val uint8) {
	r.DMem[addr&0xfff] = val
}

func (r *RSP) dmemWrite16(addr uint32, val uint16) {
	r.dmemWrite8(addr, uint8(val>>8))
	r.dmemWrite8(addr+1, uint8(val))
}

func (r *RSP) dmemWrite32(addr uint32, val uint32) {
	r.dmemWrite16(addr, uint16(val>>16))
	r.dmemWrite16(addr+2, uint16(val))
}

func (op instruction) addr(r *RSP) uint32 {
	return r.GPR[op.rs()] + uint32(op.simm())
}

func suLB(r *RSP, op instruction) {
	r.setGPR(op.rt(), uint32(int32(int8(r.dmemRead8(op.addr(r))))))
}

func suLBU(r *RSP, op instruction) {
	r.setGPR(op.rt(), uint32(r.dmemRead8(op.addr(r))))
}

func suLH(r *RSP, op instruction) {
	r.setGPR(op.rt(), uint32(int32(int16(r.dmemRead16(op.addr(r))))))
}

func suLHU(r *RSP, op instruction) {
	r.setGPR(op.rt(), uint32(r.dmemRead16(op.addr(r))))
}

func suLW(r *RSP, op instruction) {
	r.setGPR(op.rt(), r.dmemRead32(op.addr(r)))
}

func suLWU(r *RSP, op instruction) {
	suLW(r, op)
}

func suSB(r *RSP, op instruction) {
	r.dmemWrite8(op.addr(r), uint8(r.GPR[op.rt()]))
}

func suSH(r *RSP, op instruction) {
	r.dmemWrite16(op.addr(r), uint16(r.GPR[op.rt()]))
}

func suSW(r *RSP, op instruction) {
	r.dmemWrite32(op.addr(r), r.GPR[op.rt()])
}

// suBREAK begins the stop sequence. The delay countdown is two so that
// the instruction after the BREAK still retires before HALT and BROKE
// rise; see RSP.step().
func suBREAK(r *RSP, op instruction) {
	r.breakDelay = 2
}
