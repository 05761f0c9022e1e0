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
	"encoding/hex"
	"fmt"

	"jinr.ru/greenlab/go-pel/pkg/log"
)

// Event is one decoded event record. The concrete type of Payload is
// selected by the event type through the Registry; RawPayload is the
// variant for unknown, opaque and undecodable payloads.
type Event struct {
	*EventHeader
	// Index is the position of the event in the log
	Index int
	// Offset is the position of the record in the capture
	Offset     int
	VendorInfo []byte
	Payload    Payload
	Warnings   []Warning
}

// Decoded reports whether the payload was decoded by a type specific decoder
func (e *Event) Decoded() bool {
	_, raw := e.Payload.(*RawPayload)
	return !raw
}

func (e *Event) warn(kind WarningKind, offset int, format string, v ...interface{}) {
	w := Warning{
		Kind:   kind,
		Event:  e.Index,
		Offset: offset,
		What:   fmt.Sprintf(format, v...),
	}
	log.Warning("%s", w)
	e.Warnings = append(e.Warnings, w)
}

type payloadFeedback struct {
	truncated bool
}

func (f *payloadFeedback) SetTruncated() {
	f.truncated = true
}

// decodePayload turns a panicking decoder into a failed one
func decodePayload(decoder PayloadDecoder, data []byte, revision uint8, df *payloadFeedback) (payload Payload, err error) {
	defer func() {
		if r := recover(); r != nil {
			payload = nil
			err = fmt.Errorf("payload decoder panic: %v", r)
		}
	}()
	return decoder.DecodePayload(data, revision, df)
}

// DecodeEvent decodes one event record starting at the cursor position and
// leaves the cursor at the declared end of the record. Only a record whose
// header can not be read or whose declared length runs past the buffer is an error.
func DecodeEvent(c *Cursor, index int, registry *Registry, headersOnly bool) (*Event, error) {
	start := c.Offset()
	hdr, err := DecodeEventHeader(c)
	if err != nil {
		return nil, err
	}
	if hdr.HeaderLength < EventHeaderSize {
		return nil, ErrMalformedEventHeader{Offset: start, HeaderLength: hdr.HeaderLength}
	}
	ev := &Event{
		EventHeader: hdr,
		Index:       index,
		Offset:      start,
	}
	// header bytes beyond the fixed part are not interpreted
	if err := c.Skip(hdr.HeaderLength-EventHeaderSize, "event header"); err != nil {
		return nil, err
	}
	bodyOffset := c.Offset()
	body, err := c.Take(hdr.BodyLength(), fmt.Sprintf("event %d body", index))
	if err != nil {
		return nil, err
	}
	end := start + hdr.EventLength

	vsil := hdr.VendorInfoLength
	if vsil > len(body) {
		ev.warn(VendorInfoOverflow, bodyOffset, "vendor specific information length %d exceeds event body of %d bytes", vsil, len(body))
		vsil = len(body)
	}
	ev.VendorInfo = clone(body[:vsil])
	data := clone(body[vsil:])
	payloadOffset := bodyOffset + vsil

	if log.Enabled(log.DebugLevel) {
		log.Debug("DecodeEvent: event %d payload:\n%s", index, hex.Dump(data))
	}

	meta := registry.Lookup(hdr.Type)
	if headersOnly {
		meta = EventTypeMetadata{DecodeWith: PayloadDecodeFunc(decodeRawPayload)}
	}
	df := &payloadFeedback{}
	payload, err := decodePayload(meta.DecodeWith, data, hdr.Revision, df)
	if err != nil || payload == nil {
		ev.warn(PayloadDecodeFailed, payloadOffset, "%s payload kept raw: %v", hdr.Type, err)
		payload, _ = decodeRawPayload(data, hdr.Revision, df)
	} else {
		if df.truncated {
			ev.warn(PayloadTruncated, payloadOffset, "%s payload of %d bytes ends inside a variable part", hdr.Type, len(data))
		}
		if consumed := len(payload.LayerContents()); consumed != len(data) {
			ev.warn(PayloadLengthMismatch, payloadOffset, "%s decoder consumed %d of %d declared bytes", hdr.Type, consumed, len(data))
		}
	}
	ev.Payload = payload

	// the body was taken whole so this is a no-op; it pins the next record
	// to the declared end should body slicing ever change
	if err := c.Seek(end, "event end"); err != nil {
		return nil, err
	}
	return ev, nil
}
