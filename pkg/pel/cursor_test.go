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

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCursorIntegers(t *testing.T) {
	data := []byte{
		0x01,
		0x02, 0x01,
		0x04, 0x03, 0x02, 0x01,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
		0x01, 0, 0, 0, 0, 0, 0, 0, 0x02, 0, 0, 0, 0, 0, 0, 0,
	}
	c := NewCursor(data)
	u8, err := c.Uint8("u8")
	if err != nil || u8 != 0x01 {
		t.Fatalf("Uint8() = %#x, %v", u8, err)
	}
	u16, err := c.Uint16("u16")
	if err != nil || u16 != 0x0102 {
		t.Fatalf("Uint16() = %#x, %v", u16, err)
	}
	u32, err := c.Uint32("u32")
	if err != nil || u32 != 0x01020304 {
		t.Fatalf("Uint32() = %#x, %v", u32, err)
	}
	u64, err := c.Uint64("u64")
	if err != nil || u64 != 0x0102030405060708 {
		t.Fatalf("Uint64() = %#x, %v", u64, err)
	}
	u128, err := c.Uint128("u128")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Uint128{Lo: 1, Hi: 2}, u128); diff != "" {
		t.Errorf("Uint128() diff (-want +got):\n%s", diff)
	}
	if c.Len() != 0 || c.Offset() != len(data) {
		t.Errorf("cursor at %d with %d left, want %d with 0 left", c.Offset(), c.Len(), len(data))
	}
}

func TestCursorTruncated(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})
	if _, err := c.Take(2, "first"); err != nil {
		t.Fatal(err)
	}
	_, err := c.Uint16("second")
	var truncated ErrTruncated
	if !errors.As(err, &truncated) {
		t.Fatalf("Uint16() error = %v, want ErrTruncated", err)
	}
	want := ErrTruncated{Offset: 2, Field: "second", Need: 2, Have: 1}
	if diff := cmp.Diff(want, truncated); diff != "" {
		t.Errorf("error diff (-want +got):\n%s", diff)
	}
	if !IsTruncated(err) {
		t.Error("IsTruncated() = false")
	}
}

func TestCursorSeek(t *testing.T) {
	c := NewCursor(make([]byte, 10))
	if err := c.Seek(10, "end"); err != nil {
		t.Fatalf("Seek(10) error = %v", err)
	}
	if err := c.Seek(11, "past end"); !IsTruncated(err) {
		t.Errorf("Seek(11) error = %v, want ErrTruncated", err)
	}
	if err := c.Seek(4, "back"); err != nil || c.Offset() != 4 {
		t.Errorf("Seek(4) = %v, offset %d", err, c.Offset())
	}
}

func TestTakeCopyDoesNotAlias(t *testing.T) {
	data := []byte{1, 2, 3}
	b, err := NewCursor(data).TakeCopy(3, "bytes")
	if err != nil {
		t.Fatal(err)
	}
	data[0] = 9
	if b[0] != 1 {
		t.Error("TakeCopy() result changed with the buffer")
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"nul padded", []byte("ABC123\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"), "ABC123"},
		{"space padded", []byte("  MODEL X    "), "MODEL X"},
		{"mixed padding", []byte("SN 1 \x00 \x00"), "SN 1  "},
		{"space before nul padding", []byte("ABC \x00\x00"), "ABC "},
		{"embedded nul", []byte("A\x00B"), "AB"},
		{"invalid utf8", []byte{'A', 0xff, 'B'}, "A\uFFFDB"},
		{"empty", make([]byte, 8), ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanText(tc.in); got != tc.want {
				t.Errorf("CleanText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestUint128String(t *testing.T) {
	tests := []struct {
		in   Uint128
		want string
	}{
		{Uint128{}, "0"},
		{Uint128{Lo: 12345}, "12345"},
		{Uint128{Hi: 1}, "18446744073709551616"},
		{Uint128{Lo: ^uint64(0), Hi: ^uint64(0)}, "340282366920938463463374607431768211455"},
	}
	for _, tc := range tests {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("%#v.String() = %s, want %s", tc.in, got, tc.want)
		}
	}
}
