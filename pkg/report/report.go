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

// Package report turns decoded logs into documents for people and programs
package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-pel/pkg/log"
	"jinr.ru/greenlab/go-pel/pkg/pel"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("Unknown output format %q. Must be one of: yaml, json.", s)
}

// Hex16 is rendered as a hex string
type Hex16 uint16

func (h Hex16) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("0x%04x", uint16(h)))
}

func (h *Hex16) UnmarshalJSON(bytes []byte) error {
	trimmed := strings.Trim(string(bytes), "\"")
	v, err := strconv.ParseUint(trimmed, 0, 16)
	if err != nil {
		return err
	}
	*h = Hex16(v)
	return nil
}

type Header struct {
	LogID            Hex16         `json:"logID"`
	NumEvents        uint32        `json:"numEvents"`
	LogLength        uint64        `json:"logLength"`
	Revision         uint8         `json:"revision"`
	HeaderLength     uint16        `json:"headerLength"`
	Timestamp        pel.Timestamp `json:"timestamp"`
	PowerOnHours     pel.Uint128   `json:"powerOnHours"`
	PowerCycleCount  uint64        `json:"powerCycleCount"`
	VendorID         Hex16         `json:"vendorID"`
	SubsystemVendor  Hex16         `json:"subsystemVendorID"`
	SerialNumber     string        `json:"serialNumber"`
	ModelNumber      string        `json:"modelNumber"`
	SubsystemNQN     string        `json:"subsystemNQN"`
	Generation       *uint16       `json:"generation,omitempty"`
	ReportingContext string        `json:"reportingContext,omitempty"`
	SupportedEvents  []string      `json:"supportedEvents"`
}

type Event struct {
	Index        int           `json:"index"`
	Offset       int           `json:"offset"`
	Type         string        `json:"type"`
	TypeCode     Hex16         `json:"typeCode"`
	Revision     uint8         `json:"revision"`
	ControllerID Hex16         `json:"controllerID"`
	Timestamp    pel.Timestamp `json:"timestamp"`
	HeaderLength int           `json:"headerLength"`
	EventLength  int           `json:"eventLength"`
	VendorInfo   []byte        `json:"vendorInfo,omitempty"`
	Decoded      bool          `json:"decoded"`
	Payload      pel.Payload   `json:"payload"`
	Warnings     []string      `json:"warnings,omitempty"`
}

// Log is the document form of a decoded log
type Log struct {
	Header   Header   `json:"header"`
	Events   []Event  `json:"events"`
	Warnings []string `json:"warnings,omitempty"`
}

func newHeader(h *pel.LogHeader) Header {
	header := Header{
		LogID:           Hex16(h.LogID),
		NumEvents:       h.NumEvents,
		LogLength:       h.LogLength,
		Revision:        h.Revision,
		HeaderLength:    h.HeaderLength,
		Timestamp:       h.Timestamp,
		PowerOnHours:    h.PowerOnHours,
		PowerCycleCount: h.PowerCycleCount,
		VendorID:        Hex16(h.VendorID),
		SubsystemVendor: Hex16(h.SubsystemVendorID),
		SerialNumber:    h.SerialNumber,
		ModelNumber:     h.ModelNumber,
		SubsystemNQN:    h.SubsystemNQN,
		SupportedEvents: []string{},
	}
	if h.Extension != nil {
		generation := h.Extension.Generation
		header.Generation = &generation
		header.ReportingContext = h.Extension.ReportingContext.String()
	}
	for _, t := range h.SupportedEvents.Types() {
		header.SupportedEvents = append(header.SupportedEvents, t.String())
	}
	return header
}

func warningStrings(warnings []pel.Warning) []string {
	var result []string
	for _, w := range warnings {
		result = append(result, w.String())
	}
	return result
}

func newEvent(ev *pel.Event) Event {
	return Event{
		Index:        ev.Index,
		Offset:       ev.Offset,
		Type:         ev.Type.String(),
		TypeCode:     Hex16(ev.Type),
		Revision:     ev.Revision,
		ControllerID: Hex16(ev.ControllerID),
		Timestamp:    ev.Timestamp,
		HeaderLength: ev.HeaderLength,
		EventLength:  ev.EventLength,
		VendorInfo:   ev.VendorInfo,
		Decoded:      ev.Decoded(),
		Payload:      ev.Payload,
		Warnings:     warningStrings(ev.Warnings),
	}
}

// New builds the document of a decoded log
func New(l *pel.Log) *Log {
	r := &Log{
		Header:   newHeader(l.Header),
		Events:   make([]Event, 0, len(l.Events)),
		Warnings: warningStrings(l.Warnings),
	}
	for _, ev := range l.Events {
		r.Events = append(r.Events, newEvent(ev))
	}
	return r
}

// Marshal renders v, a Log or a Summary, in the given format
func Marshal(v interface{}, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		return yaml.Marshal(v)
	}
	return nil, fmt.Errorf("Unknown output format %q", format)
}

func (r *Log) String() string {
	result, err := yaml.Marshal(r)
	if err != nil {
		log.Error("Error occured while marshaling log report, %s", err)
		return ""
	}
	return fmt.Sprintf("---\n%s", string(result))
}
