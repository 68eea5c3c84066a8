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

// Package rsp emulates the Reality Signal Processor of the N64: the
// scalar MIPS core, its two 4 KiB memories, the SP control registers and
// DMA engine, and - through the vu sub-package - the vector coprocessor.
//
// The RSP is created with a bus.Bus giving it reach into main memory and
// the MI interrupt line; everything else is internal state. The host CPU
// side of the chip is the RegisterRead()/RegisterWrite() pair (the SP
// register block) plus the PC()/SetPC() pair (the separate SP_PC
// register). The IMem and DMem arrays are exported so the outer emulator
// can implement the memory-mapped view of the two SRAMs directly.
//
// Execution is driven with Step(). The function retires whole
// instructions until the requested count is reached or the HALT bit
// rises, either from a host register write, from microcode writing the
// status register, or from a BREAK instruction. In keeping with the
// branch-delay pipeline, the instruction after a BREAK is retired before
// the core stops.
//
// DMA transfers complete synchronously within the register write that
// starts them, so DMA_BUSY and DMA_FULL always read back zero. Microcode
// that polls those bits sees them clear on the first read.
package rsp
