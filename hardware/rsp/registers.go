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
	"github.com/rasky/r64emu/curated"
	"github.com/rasky/r64emu/logger"
)

// UnknownRegister is the sentinel error pattern returned by RegisterRead
// and RegisterWrite for an offset outside the SP register block. The
// hardware register file simply does not decode such offsets; a host
// reaching one has a wiring bug, not a hardware condition.
const UnknownRegister = "rsp: unknown register (offset %#x)"

// Offsets of the SP registers inside the register block. The same indices
// (divided by four) are what RSP microcode reaches with MTC0/MFC0.
const (
	RegMemAddr   uint32 = 0x00
	RegDRAMAddr  uint32 = 0x04
	RegRdLen     uint32 = 0x08
	RegWrLen     uint32 = 0x0c
	RegStatus    uint32 = 0x10
	RegDMAFull   uint32 = 0x14
	RegDMABusy   uint32 = 0x18
	RegSemaphore uint32 = 0x1c
)

// SP_STATUS bits as read by the host or by MFC0.
const (
	StatusHalt uint32 = 1 << iota
	StatusBroke
	StatusDMABusy
	StatusDMAFull
	StatusIOFull
	StatusSingleStep
	StatusInterruptOnBreak
	StatusSig0
	StatusSig1
	StatusSig2
	StatusSig3
	StatusSig4
	StatusSig5
	StatusSig6
	StatusSig7
)

// RegisterRead implements the read side of the SP register block. An
// offset outside the block returns an UnknownRegister error.
func (r *RSP) RegisterRead(offset uint32) (uint32, error) {
	switch offset {
	case RegMemAddr:
		return r.memAddr, nil
	case RegDRAMAddr:
		return r.dramAddr, nil
	case RegRdLen:
		return r.rdLen, nil
	case RegWrLen:
		return r.wrLen, nil
	case RegStatus:
		return r.status, nil
	case RegDMAFull:
		return r.status >> 3 & 1, nil
	case RegDMABusy:
		return r.status >> 2 & 1, nil
	case RegSemaphore:
		// reading acquires: the first reader sees 0, everyone after
		// sees 1 until a write releases
		old := r.semaphore
		r.semaphore = 1
		return old, nil
	}
	return 0, curated.Errorf(UnknownRegister, offset)
}

// RegisterWrite implements the write side of the SP register block. A
// write to one of the length registers performs the DMA transfer before
// returning. Writes to the read-only registers are dropped the way the
// hardware drops them; an offset outside the block returns an
// UnknownRegister error.
func (r *RSP) RegisterWrite(offset uint32, val uint32) error {
	switch offset {
	case RegMemAddr:
		r.memAddr = val & 0x1ff8
	case RegDRAMAddr:
		r.dramAddr = val & 0xfffff8
	case RegRdLen:
		r.rdLen = val
		r.dmaTransfer(dmaToMem, val)
	case RegWrLen:
		r.wrLen = val
		r.dmaTransfer(dmaToDRAM, val)
	case RegStatus:
		r.statusWrite(val)
	case RegDMAFull, RegDMABusy:
		// read-only
	case RegSemaphore:
		r.semaphore = 0
	default:
		return curated.Errorf(UnknownRegister, offset)
	}
	return nil
}

// statusWrite decodes the command encoding of SP_STATUS: bits come in
// clear/set pairs, one pair (or single clear bit) per status field.
func (r *RSP) statusWrite(val uint32) {
	clearSet := func(flag uint32, clr, set bool) {
		if clr {
			r.status &^= flag
		}
		if set {
			r.status |= flag
		}
	}

	wasHalted := r.Halted()
	clearSet(StatusHalt, val&(1<<0) != 0, val&(1<<1) != 0)
	clearSet(StatusBroke, val&(1<<2) != 0, false)
	if val&(1<<3) != 0 {
		// the pending bit lives in the MI, which is beyond the narrow
		// bus capability handed to this core
		logger.Log("rsp", "clear SP interrupt ignored (MI owns the pending bit)")
	}
	if val&(1<<4) != 0 {
		r.bus.RaiseInterrupt()
	}
	clearSet(StatusSingleStep, val&(1<<5) != 0, val&(1<<6) != 0)
	clearSet(StatusInterruptOnBreak, val&(1<<7) != 0, val&(1<<8) != 0)
	for i := 0; i < 8; i++ {
		sig := StatusSig0 << i
		clearSet(sig, val&(1<<(9+i*2)) != 0, val&(1<<(10+i*2)) != 0)
	}

	if wasHalted && !r.Halted() {
		// no reset on restart: execution continues from where the core
		// was halted, as on hardware
		logger.Logf("rsp", "started at pc=%03x", r.pc)
	}
}
