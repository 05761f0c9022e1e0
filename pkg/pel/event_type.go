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

import "fmt"

// EventType is the one-byte tag that identifies an event record.
// Any value is valid: tags without a name are reported as Unknown.
type EventType uint8

const (
	EventTypeSmartHealth         EventType = 0x01
	EventTypeFirmwareCommit      EventType = 0x02
	EventTypeTimestampChange     EventType = 0x03
	EventTypePowerOnReset        EventType = 0x04
	EventTypeNvmHardwareError    EventType = 0x05
	EventTypeChangeNamespace     EventType = 0x06
	EventTypeFormatNvmStart      EventType = 0x07
	EventTypeFormatNvmCompletion EventType = 0x08
	EventTypeSanitizeStart       EventType = 0x09
	EventTypeSanitizeCompletion  EventType = 0x0a
	EventTypeSetFeature          EventType = 0x0b
	EventTypeTelemetryLogCreate  EventType = 0x0c
	EventTypeThermalExcursion    EventType = 0x0d
	EventTypeVendorSpecific      EventType = 0xde
	EventTypeTcgDefined          EventType = 0xdf
)

// Known reports whether the tag is one of the defined event types
func (t EventType) Known() bool {
	switch {
	case t >= EventTypeSmartHealth && t <= EventTypeThermalExcursion:
		return true
	case t == EventTypeVendorSpecific || t == EventTypeTcgDefined:
		return true
	}
	return false
}

func (t EventType) String() string {
	switch t {
	case EventTypeSmartHealth:
		return "SmartHealth"
	case EventTypeFirmwareCommit:
		return "FirmwareCommit"
	case EventTypeTimestampChange:
		return "TimestampChange"
	case EventTypePowerOnReset:
		return "PowerOnReset"
	case EventTypeNvmHardwareError:
		return "NvmHardwareError"
	case EventTypeChangeNamespace:
		return "ChangeNamespace"
	case EventTypeFormatNvmStart:
		return "FormatNvmStart"
	case EventTypeFormatNvmCompletion:
		return "FormatNvmCompletion"
	case EventTypeSanitizeStart:
		return "SanitizeStart"
	case EventTypeSanitizeCompletion:
		return "SanitizeCompletion"
	case EventTypeSetFeature:
		return "SetFeature"
	case EventTypeTelemetryLogCreate:
		return "TelemetryLogCreate"
	case EventTypeThermalExcursion:
		return "ThermalExcursion"
	case EventTypeVendorSpecific:
		return "VendorSpecific"
	case EventTypeTcgDefined:
		return "TcgDefined"
	}
	return fmt.Sprintf("Unknown(0x%02x)", uint8(t))
}
