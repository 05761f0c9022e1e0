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

// Package events decodes the payloads of the event types defined for the
// Persistent Event Log. Every payload is a gopacket layer registered with
// the layer type pel.EventLayerNumBase plus its event type.
package events

import (
	"fmt"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-pel/pkg/pel"
)

// ErrShortPayload returned when a payload is shorter than its fixed part
type ErrShortPayload struct {
	Type pel.EventType
	Need int
	Have int
}

func (e ErrShortPayload) Error() string {
	return fmt.Sprintf("%s payload is %d bytes, at least %d expected", e.Type, e.Have, e.Need)
}

// payloadLayer is implemented by every payload of this package
type payloadLayer interface {
	pel.Payload
	DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error
}

// newLayer returns an empty payload for the event type or nil if the type has no decoder
func newLayer(t pel.EventType) payloadLayer {
	switch t {
	case pel.EventTypeSmartHealth:
		return &SmartHealth{}
	case pel.EventTypeFirmwareCommit:
		return &FirmwareCommit{}
	case pel.EventTypeTimestampChange:
		return &TimestampChange{}
	case pel.EventTypePowerOnReset:
		return &PowerOnReset{}
	case pel.EventTypeNvmHardwareError:
		return &NvmHardwareError{}
	case pel.EventTypeChangeNamespace:
		return &ChangeNamespace{}
	case pel.EventTypeFormatNvmStart:
		return &FormatNvmStart{}
	case pel.EventTypeFormatNvmCompletion:
		return &FormatNvmCompletion{}
	case pel.EventTypeSanitizeStart:
		return &SanitizeStart{}
	case pel.EventTypeSanitizeCompletion:
		return &SanitizeCompletion{}
	case pel.EventTypeSetFeature:
		return &SetFeature{}
	case pel.EventTypeTelemetryLogCreate:
		return &TelemetryLogCreate{}
	case pel.EventTypeThermalExcursion:
		return &ThermalExcursion{}
	case pel.EventTypeVendorSpecific, pel.EventTypeTcgDefined:
		return &Opaque{Type: t}
	}
	return nil
}

func registerLayerType(t pel.EventType) gopacket.LayerType {
	return gopacket.RegisterLayerType(pel.EventLayerNumBase+int(t), gopacket.LayerTypeMetadata{
		Name: t.String(),
		Decoder: gopacket.DecodeFunc(func(data []byte, p gopacket.PacketBuilder) error {
			l := newLayer(t)
			if err := l.DecodeFromBytes(data, p); err != nil {
				return err
			}
			p.AddLayer(l)
			return nil
		}),
	})
}

// payloadDecoder adapts DecodeFromBytes to pel.PayloadDecoder
func payloadDecoder(t pel.EventType) pel.PayloadDecoder {
	return pel.PayloadDecodeFunc(func(data []byte, revision uint8, df gopacket.DecodeFeedback) (pel.Payload, error) {
		l := newLayer(t)
		if err := l.DecodeFromBytes(data, df); err != nil {
			return nil, err
		}
		return l, nil
	})
}

var (
	SmartHealthLayerType         = registerLayerType(pel.EventTypeSmartHealth)
	FirmwareCommitLayerType      = registerLayerType(pel.EventTypeFirmwareCommit)
	TimestampChangeLayerType     = registerLayerType(pel.EventTypeTimestampChange)
	PowerOnResetLayerType        = registerLayerType(pel.EventTypePowerOnReset)
	NvmHardwareErrorLayerType    = registerLayerType(pel.EventTypeNvmHardwareError)
	ChangeNamespaceLayerType     = registerLayerType(pel.EventTypeChangeNamespace)
	FormatNvmStartLayerType      = registerLayerType(pel.EventTypeFormatNvmStart)
	FormatNvmCompletionLayerType = registerLayerType(pel.EventTypeFormatNvmCompletion)
	SanitizeStartLayerType       = registerLayerType(pel.EventTypeSanitizeStart)
	SanitizeCompletionLayerType  = registerLayerType(pel.EventTypeSanitizeCompletion)
	SetFeatureLayerType          = registerLayerType(pel.EventTypeSetFeature)
	TelemetryLogCreateLayerType  = registerLayerType(pel.EventTypeTelemetryLogCreate)
	ThermalExcursionLayerType    = registerLayerType(pel.EventTypeThermalExcursion)
	VendorSpecificLayerType      = registerLayerType(pel.EventTypeVendorSpecific)
	TcgDefinedLayerType          = registerLayerType(pel.EventTypeTcgDefined)
)

// NewRegistry returns a registry with a decoder for every defined event type
func NewRegistry() *pel.Registry {
	r := pel.NewRegistry()
	for i := 0; i < 256; i++ {
		t := pel.EventType(i)
		l := newLayer(t)
		if l == nil {
			continue
		}
		r.Register(t, pel.EventTypeMetadata{
			DecodeWith: payloadDecoder(t),
			Name:       t.String(),
			LayerType:  l.LayerType(),
		})
	}
	return r
}

// Kelvin is a temperature as reported by the controller
type Kelvin uint16

func (k Kelvin) Celsius() int {
	return int(k) - 273
}

func (k Kelvin) String() string {
	return fmt.Sprintf("%dK (%dC)", uint16(k), k.Celsius())
}

// fixedPart checks that data holds the fixed part of a payload
func fixedPart(t pel.EventType, data []byte, size int) error {
	if len(data) < size {
		return ErrShortPayload{Type: t, Need: size, Have: len(data)}
	}
	return nil
}
