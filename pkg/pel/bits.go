/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package pel

import "fmt"

// Bits extracts width bits starting at bit offset from a little-endian run of
// at most 8 bytes. Bit 0 is the least significant bit of b[0].
// The layout is fixed by the caller, so a field that does not fit panics.
func Bits(b []byte, offset, width uint) uint64 {
	if len(b) > 8 || width == 0 || offset+width > uint(len(b))*8 {
		panic(fmt.Sprintf("pel: bit field %d:%d does not fit in %d bytes", offset+width-1, offset, len(b)))
	}
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return (v >> offset) & (uint64(1)<<width - 1)
}

// ByteBits extracts width bits starting at bit offset from a single byte
func ByteBits(b byte, offset, width uint) uint8 {
	return uint8(Bits([]byte{b}, offset, width))
}
