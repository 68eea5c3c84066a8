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

// Package bus defines the narrow interfaces through which the RSP reaches
// the rest of the console. The RSP owns its own memories (IMEM and DMEM)
// outright; everything else it can touch - main memory and the MI
// interrupt line - is owned by the outer emulator and accessed through the
// Bus interface. Keeping the interface this small means the RSP core can
// be driven by a full console emulation or by a test harness with equal
// ease.
package bus

// DRAM is the RSP's view of main memory. Both functions transfer len(p)
// bytes starting at addr. Addresses are physical RDRAM addresses; the
// implementation is responsible for masking them to the installed memory
// size.
type DRAM interface {
	ReadDRAM(addr uint32, p []byte)
	WriteDRAM(addr uint32, p []byte)
}

// InterruptLine is the SP interrupt wire into the MI. Raising an already
// raised line is harmless.
type InterruptLine interface {
	RaiseInterrupt()
}

// Bus is the complete capability set handed to the RSP at creation.
type Bus interface {
	DRAM
	InterruptLine
}
