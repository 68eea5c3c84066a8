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

// Package curated is the error mechanism used throughout the emulator. A
// curated error keeps the pattern string it was created with, which means
// errors can be compared by identity rather than by fragile string matching
// of the formatted message.
//
// Create errors with the Errorf() function and test for them with the Is()
// and Has() functions, as the rsp package does for its register block:
//
//	const UnknownRegister = "rsp: unknown register (offset %#x)"
//
//	err := curated.Errorf(UnknownRegister, offset)
//	if curated.Is(err, UnknownRegister) {
//		...
//	}
//
// Wrapping a curated error in another curated error preserves the chain;
// Has() will find a pattern anywhere in the chain.
package curated
