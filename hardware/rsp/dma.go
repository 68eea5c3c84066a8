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
	"github.com/rasky/r64emu/logger"
)

type dmaDirection int

const (
	dmaToMem dmaDirection = iota
	dmaToDRAM
)

// dmaTransfer runs one SP DMA to completion. The length register encodes
// count strips of width bytes; the strips are separated by skip bytes on
// the DRAM side and contiguous on the IMEM/DMEM side, where the address
// wraps at the 4 KiB boundary of the selected bank. Addresses on both
// sides are treated as 8-byte aligned.
func (r *RSP) dmaTransfer(dir dmaDirection, val uint32) {
	width := int(val&0xfff) + 1
	count := int(val>>12&0xff) + 1
	skip := int(val >> 20 & 0xfff)

	bank := r.memAddr & 0x1000
	mem := r.memAddr & 0xff8
	dram := r.dramAddr &^ 7

	if dir == dmaToMem {
		logger.Logf("rsp dma", "DRAM %06x -> %s %03x (width %d count %d skip %d)",
			dram, bankName(bank), mem, width, count, skip)
	} else {
		logger.Logf("rsp dma", "%s %03x -> DRAM %06x (width %d count %d skip %d)",
			bankName(bank), mem, dram, width, count, skip)
	}

	buf := make([]byte, width)
	for c := 0; c < count; c++ {
		if dir == dmaToMem {
			r.bus.ReadDRAM(dram, buf)
			r.memWrite(bank, mem, buf)
		} else {
			r.memRead(bank, mem, buf)
			r.bus.WriteDRAM(dram, buf)
		}
		dram += uint32(width + skip)
		mem = (mem + uint32(width)) & 0xfff
	}

	// the address registers advance with the transfer
	r.memAddr = bank | mem&0xff8
	r.dramAddr = dram & 0xfffff8
}

func bankName(bank uint32) string {
	if bank != 0 {
		return "IMEM"
	}
	return "DMEM"
}

func (r *RSP) memWrite(bank, addr uint32, p []byte) {
	target := &r.DMem
	if bank != 0 {
		target = &r.IMem
	}
	for i := range p {
		target[(addr+uint32(i))&0xfff] = p[i]
	}
}

func (r *RSP) memRead(bank, addr uint32, p []byte) {
	source := &r.DMem
	if bank != 0 {
		source = &r.IMem
	}
	for i := range p {
		p[i] = source[(addr+uint32(i))&0xfff]
	}
}
