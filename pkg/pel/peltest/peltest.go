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

// Package peltest builds Persistent Event Log captures for tests
package peltest

import (
	"encoding/binary"
)

// Header describes a log header. Zero values give an empty revision 1 header.
type Header struct {
	LogID           uint8
	NumEvents       uint32
	LogLength       uint64
	Revision        uint8
	HeaderLength    uint16
	Timestamp       [8]byte
	PowerOnHours    [16]byte
	PowerCycleCount uint64
	VendorID        uint16
	SSVendorID      uint16
	SerialNumber    string
	ModelNumber     string
	SubsystemNQN    string
	Generation      uint16
	ReportingCtx    uint32
	Supported       []uint8
}

// LogHeader returns the 512-byte encoding of h
func LogHeader(h Header) []byte {
	b := make([]byte, 512)
	b[0] = h.LogID
	binary.LittleEndian.PutUint32(b[4:8], h.NumEvents)
	binary.LittleEndian.PutUint64(b[8:16], h.LogLength)
	b[16] = h.Revision
	binary.LittleEndian.PutUint16(b[18:20], h.HeaderLength)
	copy(b[20:28], h.Timestamp[:])
	copy(b[28:44], h.PowerOnHours[:])
	binary.LittleEndian.PutUint64(b[44:52], h.PowerCycleCount)
	binary.LittleEndian.PutUint16(b[52:54], h.VendorID)
	binary.LittleEndian.PutUint16(b[54:56], h.SSVendorID)
	copy(b[56:76], h.SerialNumber)
	copy(b[76:116], h.ModelNumber)
	copy(b[116:372], h.SubsystemNQN)
	if h.Revision >= 2 {
		binary.LittleEndian.PutUint16(b[372:374], h.Generation)
		binary.LittleEndian.PutUint32(b[374:378], h.ReportingCtx)
	}
	for _, t := range h.Supported {
		b[480+int(t)/8] |= 1 << (t % 8)
	}
	return b
}

// Timestamp returns the 8-byte encoding of a timestamp
func Timestamp(ms uint64, origin, synch uint8) [8]byte {
	var ts [8]byte
	binary.LittleEndian.PutUint64(ts[:], ms&0xffffffffffff)
	ts[6] = (origin&0x7)<<1 | synch&0x1
	return ts
}

// Event describes an event record. When EHL is zero the standard value 21 is used.
// EL is computed from VendorInfo and Payload unless RawEL is set.
type Event struct {
	Type         uint8
	Revision     uint8
	EHL          uint8
	ControllerID uint16
	Timestamp    [8]byte
	VendorInfo   []byte
	Payload      []byte
	RawEL        *uint16
	RawVSIL      *uint16
}

// Bytes returns the encoding of e, header extension bytes included
func (e Event) Bytes() []byte {
	ehl := e.EHL
	if ehl == 0 {
		ehl = 21
	}
	headerLen := int(ehl) + 3
	if headerLen < 24 {
		headerLen = 24
	}
	el := uint16(len(e.VendorInfo) + len(e.Payload))
	if e.RawEL != nil {
		el = *e.RawEL
	}
	vsil := uint16(len(e.VendorInfo))
	if e.RawVSIL != nil {
		vsil = *e.RawVSIL
	}
	b := make([]byte, headerLen, headerLen+len(e.VendorInfo)+len(e.Payload))
	b[0] = e.Type
	b[1] = e.Revision
	b[2] = ehl
	binary.LittleEndian.PutUint16(b[4:6], e.ControllerID)
	copy(b[6:14], e.Timestamp[:])
	binary.LittleEndian.PutUint16(b[20:22], vsil)
	binary.LittleEndian.PutUint16(b[22:24], el)
	b = append(b, e.VendorInfo...)
	return append(b, e.Payload...)
}

// Capture concatenates a header and event records. NumEvents and LogLength
// are filled in when they are zero in h.
func Capture(h Header, events ...Event) []byte {
	var body []byte
	for _, e := range events {
		body = append(body, e.Bytes()...)
	}
	if h.NumEvents == 0 {
		h.NumEvents = uint32(len(events))
	}
	if h.LogLength == 0 {
		h.LogLength = uint64(512 + len(body))
	}
	if h.LogID == 0 {
		h.LogID = 0x0d
	}
	return append(LogHeader(h), body...)
}

// Uint16 returns a pointer for the RawEL and RawVSIL fields
func Uint16(v uint16) *uint16 {
	return &v
}
