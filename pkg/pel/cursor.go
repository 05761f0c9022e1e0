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
	"encoding/binary"
	"math/big"
	"strings"
)

// Cursor reads fields from an immutable byte buffer.
// The position is the only mutable state of a decode.
type Cursor struct {
	data []byte
	off  int
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the number of bytes consumed so far
func (c *Cursor) Offset() int {
	return c.off
}

// Len returns the number of bytes that remain
func (c *Cursor) Len() int {
	return len(c.data) - c.off
}

// Take returns the next n bytes and advances the cursor.
// The returned slice aliases the buffer; copy it before keeping it.
func (c *Cursor) Take(n int, field string) ([]byte, error) {
	if n < 0 || n > c.Len() {
		return nil, ErrTruncated{Offset: c.off, Field: field, Need: n, Have: c.Len()}
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

// TakeCopy is Take for bytes that outlive the buffer
func (c *Cursor) TakeCopy(n int, field string) ([]byte, error) {
	b, err := c.Take(n, field)
	if err != nil {
		return nil, err
	}
	return clone(b), nil
}

// Skip discards n reserved bytes
func (c *Cursor) Skip(n int, field string) error {
	_, err := c.Take(n, field)
	return err
}

// Seek moves the cursor to an absolute offset inside the buffer
func (c *Cursor) Seek(offset int, field string) error {
	if offset < 0 || offset > len(c.data) {
		return ErrTruncated{Offset: c.off, Field: field, Need: offset - c.off, Have: c.Len()}
	}
	c.off = offset
	return nil
}

func (c *Cursor) Uint8(field string) (uint8, error) {
	b, err := c.Take(1, field)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) Uint16(field string) (uint16, error) {
	b, err := c.Take(2, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) Uint32(field string) (uint32, error) {
	b, err := c.Take(4, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint48 reads 6 bytes zero-extended to 64 bits
func (c *Cursor) Uint48(field string) (uint64, error) {
	b, err := c.Take(6, field)
	if err != nil {
		return 0, err
	}
	return Bits(b, 0, 48), nil
}

func (c *Cursor) Uint64(field string) (uint64, error) {
	b, err := c.Take(8, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *Cursor) Uint128(field string) (Uint128, error) {
	b, err := c.Take(16, field)
	if err != nil {
		return Uint128{}, err
	}
	return Uint128{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}, nil
}

// Text reads a fixed-length text field. Invalid UTF-8 is replaced,
// NUL characters are removed and surrounding whitespace is trimmed.
func (c *Cursor) Text(n int, field string) (string, error) {
	b, err := c.Take(n, field)
	if err != nil {
		return "", err
	}
	return CleanText(b), nil
}

func CleanText(b []byte) string {
	s := strings.ToValidUTF8(string(b), "\uFFFD")
	return strings.ReplaceAll(strings.TrimSpace(s), "\x00", "")
}

// Uint128 is a little-endian 128-bit counter as used by SMART and power-on-hours fields
type Uint128 struct {
	Lo uint64
	Hi uint64
}

func (u Uint128) Big() *big.Int {
	v := new(big.Int).SetUint64(u.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string {
	if u.Hi == 0 {
		return big.NewInt(0).SetUint64(u.Lo).String()
	}
	return u.Big().String()
}

func (u Uint128) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

func clone(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
