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

// COP0 on the RSP is not a real coprocessor: MTC0 and MFC0 are windows
// onto the SP hardware registers (indices 0..7) and the RDP command
// registers (indices 8..15). The RDP is outside this core, so its half of
// the window reads zero and swallows writes.

func suCOP0(r *RSP, op instruction) {
	switch op.rs() {
	case 0x00: // MFC0
		r.setGPR(op.rt(), r.cop0Read(op.rd()))
	case 0x04: // MTC0
		r.cop0Write(op.rd(), r.GPR[op.rt()])
	}
}

func (r *RSP) cop0Read(reg int) uint32 {
	if reg < 8 {
		// indices 0..7 always decode, so the error path is unreachable
		val, _ := r.RegisterRead(uint32(reg) * 4)
		return val
	}
	logger.Logf("rsp", "MFC0 from RDP register %d reads zero", reg)
	return 0
}

func (r *RSP) cop0Write(reg int, val uint32) {
	if reg < 8 {
		_ = r.RegisterWrite(uint32(reg)*4, val)
		return
	}
	logger.Logf("rsp", "MTC0 to RDP register %d ignored", reg)
}
