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

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Register is a single 128-bit vector register. The byte layout is the
// architectural one: byte 0 is the most significant byte of lane 0, byte 15
// the least significant byte of lane 7. External observers (savestates,
// debuggers) can therefore use the array directly.
type Register [16]byte

// Lane returns the 16-bit value of lane idx. Lane 0 occupies the
// high-order bytes.
func (r *Register) Lane(idx int) uint16 {
	return binary.BigEndian.Uint16(r[idx*2:])
}

// SetLane sets the 16-bit value of lane idx.
func (r *Register) SetLane(idx int, val uint16) {
	binary.BigEndian.PutUint16(r[idx*2:], val)
}

// Byte returns byte idx of the register. Byte 0 is the most significant
// byte of lane 0.
func (r *Register) Byte(idx int) uint8 {
	return r[idx]
}

// SetByte sets byte idx of the register.
func (r *Register) SetByte(idx int, val uint8) {
	r[idx] = val
}

func (r Register) String() string {
	s := strings.Builder{}
	for i := 0; i < 8; i++ {
		if i > 0 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("%04x", r.Lane(i)))
	}
	return s.String()
}
