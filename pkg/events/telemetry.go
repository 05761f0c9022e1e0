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

const telemetryLogCreateFixedSize = 14

// TelemetryLogCreate is logged when a host-initiated telemetry log is created.
// The event data starts with the telemetry log header.
type TelemetryLogCreate struct {
	layers.BaseLayer   `json:"-"`
	LogIdentifier      uint8   `json:"logIdentifier"`
	IEEEOUI            [3]byte `json:"ieeeOui"`
	DataArea1LastBlock uint16  `json:"dataArea1LastBlock"`
	DataArea2LastBlock uint16  `json:"dataArea2LastBlock"`
	DataArea3LastBlock uint16  `json:"dataArea3LastBlock"`
	// Remaining holds the rest of the telemetry log header
	Remaining []byte `json:"remaining,omitempty"`
}

func (t *TelemetryLogCreate) LayerType() gopacket.LayerType {
	return TelemetryLogCreateLayerType
}

func (t *TelemetryLogCreate) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := fixedPart(pel.EventTypeTelemetryLogCreate, data, telemetryLogCreateFixedSize); err != nil {
		return err
	}
	c := pel.NewCursor(data)
	var err error

	// 00 - log identifier
	if t.LogIdentifier, err = c.Uint8("telemetry log identifier"); err != nil {
		return err
	}
	// 04:01 - reserved
	if err = c.Skip(4, "telemetry reserved"); err != nil {
		return err
	}
	// 07:05 - IEEE OUI identifier
	oui, err := c.Take(3, "ieee oui identifier")
	if err != nil {
		return err
	}
	copy(t.IEEEOUI[:], oui)
	// 09:08, 11:10, 13:12 - data area 1, 2, 3 last block
	for _, dst := range []*uint16{&t.DataArea1LastBlock, &t.DataArea2LastBlock, &t.DataArea3LastBlock} {
		if *dst, err = c.Uint16("data area last block"); err != nil {
			return err
		}
	}
	if t.Remaining, err = c.TakeCopy(c.Len(), "telemetry log header"); err != nil {
		return err
	}
	t.BaseLayer = pel.NewBaseLayer(data, c.Offset())
	return nil
}
