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

import "jinr.ru/greenlab/go-pel/pkg/log"

const (
	// EventHeaderSize is the size of the fixed part of an event header
	EventHeaderSize = 24
	// lengthBias is the number of bytes in front of the header length field
	// (event type, revision and the field itself). Neither length field counts them.
	lengthBias = 3
)

// EventHeader ... // 24 bytes
type EventHeader struct {
	Type     EventType
	Revision uint8
	// HeaderLength is the total header length (EHL + 3)
	HeaderLength     int
	ControllerID     uint16
	Timestamp        Timestamp
	VendorInfoLength int
	// EventLength is the total event length (EL + EHL + 3)
	EventLength int
}

// BodyLength is the number of bytes that follow the header,
// vendor specific information included
func (h *EventHeader) BodyLength() int {
	return h.EventLength - h.HeaderLength
}

// DecodeEventHeader decodes an event header and corrects its length fields
func DecodeEventHeader(c *Cursor) (*EventHeader, error) {
	h := &EventHeader{}

	// 00 - event type
	tag, err := c.Uint8("event type")
	if err != nil {
		return nil, err
	}
	h.Type = EventType(tag)
	// 01 - event type revision
	if h.Revision, err = c.Uint8("event type revision"); err != nil {
		return nil, err
	}
	// 02 - event header length (EHL)
	// 03 - reserved
	ehl, err := c.Uint8("event header length")
	if err != nil {
		return nil, err
	}
	if err = c.Skip(1, "event header reserved"); err != nil {
		return nil, err
	}
	// 05:04 - controller identifier
	if h.ControllerID, err = c.Uint16("controller identifier"); err != nil {
		return nil, err
	}
	// 13:06 - event timestamp
	// 19:14 - reserved
	if h.Timestamp, err = DecodeTimestamp(c, "event timestamp"); err != nil {
		return nil, err
	}
	if err = c.Skip(6, "event header reserved"); err != nil {
		return nil, err
	}
	// 21:20 - vendor specific information length (VSIL)
	vsil, err := c.Uint16("vendor specific information length")
	if err != nil {
		return nil, err
	}
	// 23:22 - event length (EL)
	el, err := c.Uint16("event length")
	if err != nil {
		return nil, err
	}

	h.VendorInfoLength = int(vsil)
	h.HeaderLength = int(ehl) + lengthBias
	h.EventLength = int(el) + int(ehl) + lengthBias

	log.Debug("DecodeEventHeader: Type: %s", h.Type)
	log.Debug("DecodeEventHeader: Revision: %d", h.Revision)
	log.Debug("DecodeEventHeader: HeaderLength: %d (EHL %d)", h.HeaderLength, ehl)
	log.Debug("DecodeEventHeader: EventLength: %d (EL %d)", h.EventLength, el)
	log.Debug("DecodeEventHeader: VendorInfoLength: %d", h.VendorInfoLength)

	return h, nil
}
