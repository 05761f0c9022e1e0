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
	"fmt"
)

// ErrTruncated returned when fewer bytes remain than a field or a declared length requires
type ErrTruncated struct {
	Offset int
	Field  string
	Need   int
	Have   int
}

func (e ErrTruncated) Error() string {
	return fmt.Sprintf("Truncated input at offset %d while decoding %s: need %d bytes, have %d", e.Offset, e.Field, e.Need, e.Have)
}

// ErrMalformedEventHeader returned when an event header declares a length
// that can not hold the fixed event header itself
type ErrMalformedEventHeader struct {
	Offset       int
	HeaderLength int
}

func (e ErrMalformedEventHeader) Error() string {
	return fmt.Sprintf("Malformed event header at offset %d: total header length %d is less than %d",
		e.Offset, e.HeaderLength, EventHeaderSize)
}

// IsTruncated reports whether err or any error it wraps is ErrTruncated
func IsTruncated(err error) bool {
	var truncated ErrTruncated
	return errors.As(err, &truncated)
}
