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

// Package hardware is the base package for the emulated N64 components.
// Each sub-package models one piece of silicon; the bus package holds the
// narrow interfaces the pieces use to reach each other. The packages here
// are headless: hosts drive them through their exported methods and
// memory-mapped register functions.
package hardware
