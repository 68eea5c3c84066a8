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

import "math/bits"

// broadcastLane maps the 4-bit element selector of a compute instruction
// to the source lane that feeds each destination lane: 0 and 1 are the
// identity, 2..3 broadcast quarters, 4..7 broadcast halves, 8..15 splat a
// single lane.
var broadcastLane = [16][8]int{
	{0, 1, 2, 3, 4, 5, 6, 7},
	{0, 1, 2, 3, 4, 5, 6, 7},
	{0, 0, 2, 2, 4, 4, 6, 6},
	{1, 1, 3, 3, 5, 5, 7, 7},
	{0, 0, 0, 0, 4, 4, 4, 4},
	{1, 1, 1, 1, 5, 5, 5, 5},
	{2, 2, 2, 2, 6, 6, 6, 6},
	{3, 3, 3, 3, 7, 7, 7, 7},
	{0, 0, 0, 0, 0, 0, 0, 0},
	{1, 1, 1, 1, 1, 1, 1, 1},
	{2, 2, 2, 2, 2, 2, 2, 2},
	{3, 3, 3, 3, 3, 3, 3, 3},
	{4, 4, 4, 4, 4, 4, 4, 4},
	{5, 5, 5, 5, 5, 5, 5, 5},
	{6, 6, 6, 6, 6, 6, 6, 6},
	{7, 7, 7, 7, 7, 7, 7, 7},
}

// broadcast returns register vt as seen through element selector e.
func (v *VU) broadcast(vt, e int) Register {
	src := &v.Regs[vt]
	if e < 2 {
		return *src
	}
	var r Register
	for i := 0; i < 8; i++ {
		r.SetLane(i, src.Lane(broadcastLane[e][i]))
	}
	return r
}

// singleLaneSource computes the source lane of a single-lane operation
// (VMOV and the reciprocal family) from the vt element field and the
// destination element field. The hardware merges the two fields below the
// highest set bit of the vt element; microcode in the wild depends on the
// merge.
func singleLaneSource(vtElem, vdElem int) int {
	msb := 0
	if vtElem > 0 {
		msb = bits.Len(uint(vtElem)) - 1
	}
	mask := 1<<msb - 1
	return (vdElem&^mask | vtElem&mask) & 7
}
