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

import "testing"

func TestBits(t *testing.T) {
	tests := []struct {
		name   string
		b      []byte
		offset uint
		width  uint
		want   uint64
	}{
		{"low bit", []byte{0b00000011}, 0, 1, 1},
		{"middle bits", []byte{0b00000101}, 1, 3, 2},
		{"reserved nibble", []byte{0xa5}, 4, 4, 0xa},
		{"whole byte", []byte{0xa5}, 0, 8, 0xa5},
		{"across bytes", []byte{0x00, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e}, 0, 48, 0x0e0d0c0b0a00},
		{"high half of word", []byte{0x07, 0x00, 0x05, 0x00}, 16, 2, 1},
		{"full width", []byte{1, 2, 3, 4, 5, 6, 7, 8}, 0, 64, 0x0807060504030201},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Bits(tc.b, tc.offset, tc.width); got != tc.want {
				t.Errorf("Bits(%x, %d, %d) = %#x, want %#x", tc.b, tc.offset, tc.width, got, tc.want)
			}
		})
	}
}

func TestBitsOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Bits() did not panic on a field wider than the input")
		}
	}()
	Bits([]byte{0xff}, 6, 3)
}

func TestByteBits(t *testing.T) {
	if got := ByteBits(0b11110110, 1, 3); got != 0b011 {
		t.Errorf("ByteBits() = %03b, want 011", got)
	}
}
