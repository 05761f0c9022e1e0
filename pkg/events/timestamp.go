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

package events

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-pel/pkg/pel"
)

// TimestampChangeSize is the size of the timestamp change event data
const TimestampChangeSize = 16

// TimestampChange is logged when the host sets the timestamp.
// The new value is the timestamp of the event header.
type TimestampChange struct {
	layers.BaseLayer       `json:"-"`
	Previous               pel.Timestamp `json:"previous"`
	MillisecondsSinceReset uint64        `json:"millisecondsSinceReset"`
}

func (t *TimestampChange) LayerType() gopacket.LayerType {
	return TimestampChangeLayerType
}

func (t *TimestampChange) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := fixedPart(pel.EventTypeTimestampChange, data, TimestampChangeSize); err != nil {
		return err
	}
	c := pel.NewCursor(data)
	var err error

	// 07:00 - previous timestamp
	if t.Previous, err = pel.DecodeTimestamp(c, "previous timestamp"); err != nil {
		return err
	}
	// 15:08 - milliseconds since reset
	if t.MillisecondsSinceReset, err = c.Uint64("milliseconds since reset"); err != nil {
		return err
	}
	t.BaseLayer = pel.NewBaseLayer(data, c.Offset())
	return nil
}
