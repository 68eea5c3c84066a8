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

// Package vu emulates the vector unit of the RSP: thirty-two 128-bit
// registers of eight signed 16-bit lanes, the 8x48-bit accumulator, the
// VCO/VCC/VCE flag banks, the reciprocal lookup unit and the full set of
// COP2 compute and LWC2/SWC2 memory operations.
//
// The unit is driven through three entry points. Op() executes a COP2
// compute instruction (the encoding with bit 25 set). Load() and Store()
// execute the LWC2 and SWC2 families against a DMEM slice provided by the
// caller. The scalar-visible moves (MFC2/MTC2/CFC2/CTC2) are implemented
// by the rsp package on top of the accessors exposed here.
//
// Correctness of this package is defined bit-exactly against the silicon:
// lane wrapping in the unaligned load shapes, the clamping rules when the
// accumulator is read back into a register, and the reciprocal ROM
// extraction all follow the hardware even where the behavior looks like
// an accident. Tests pin each of those edges.
package vu
