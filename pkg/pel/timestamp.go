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
	"fmt"
	"time"
)

// TimestampSize is the on-wire size of a Timestamp
const TimestampSize = 8

// TimestampSynch is the raw synch bit of the timestamp attributes.
// Values other than the named ones are kept as they are.
type TimestampSynch uint8

const (
	SynchContinuous TimestampSynch = 0
	SynchSkipped    TimestampSynch = 1
)

func (s TimestampSynch) Known() bool {
	return s <= SynchSkipped
}

func (s TimestampSynch) String() string {
	switch s {
	case SynchContinuous:
		return "Continuous"
	case SynchSkipped:
		return "Skipped"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(s))
}

func (s TimestampSynch) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// TimestampOrigin is the raw 3-bit origin code of the timestamp attributes
type TimestampOrigin uint8

const (
	OriginReset      TimestampOrigin = 0
	OriginSetFeature TimestampOrigin = 1
)

func (o TimestampOrigin) Known() bool {
	return o <= OriginSetFeature
}

func (o TimestampOrigin) String() string {
	switch o {
	case OriginReset:
		return "Reset"
	case OriginSetFeature:
		return "SetFeature"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(o))
}

func (o TimestampOrigin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Timestamp ... // 8 bytes
type Timestamp struct {
	Milliseconds uint64          `json:"milliseconds"` // 48 bits
	Synch        TimestampSynch  `json:"synch"`
	Origin       TimestampOrigin `json:"origin"`
}

// Duration returns the millisecond counter as a time.Duration
func (t Timestamp) Duration() time.Duration {
	return time.Duration(t.Milliseconds) * time.Millisecond
}

// Time interprets the counter as milliseconds since the Unix epoch.
// This is only meaningful when the host set the clock (OriginSetFeature).
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t.Milliseconds)).UTC()
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%dms origin=%s synch=%s", t.Milliseconds, t.Origin, t.Synch)
}

// DecodeTimestamp decodes the composite timestamp.
// Unknown origin and synch codes are kept, so this fails only on short input.
func DecodeTimestamp(c *Cursor, field string) (Timestamp, error) {
	// 05:00 - milliseconds
	ms, err := c.Uint48(field + " milliseconds")
	if err != nil {
		return Timestamp{}, err
	}
	// 06 - attributes
	// bits 07:04 - reserved
	// bits 03:01 - timestamp origin
	// bit 00 - synch
	attr, err := c.Uint8(field + " attributes")
	if err != nil {
		return Timestamp{}, err
	}
	// 07 - reserved
	if err := c.Skip(1, field+" reserved"); err != nil {
		return Timestamp{}, err
	}
	return Timestamp{
		Milliseconds: ms,
		Synch:        TimestampSynch(ByteBits(attr, 0, 1)),
		Origin:       TimestampOrigin(ByteBits(attr, 1, 3)),
	}, nil
}
