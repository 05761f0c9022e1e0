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

	"jinr.ru/greenlab/go-pel/pkg/log"
)

const (
	// LogHeaderSize is the size of the fixed log header region
	LogHeaderSize = 512
	// LogIdentifier is the log page identifier of the Persistent Event Log
	LogIdentifier = 0x0d
	// ExtendedHeaderRevision is the first log revision that carries
	// the generation number and the reporting context
	ExtendedHeaderRevision = 2
)

// ReportingContextType is the port identifier type of the reporting context
type ReportingContextType uint8

const (
	ReportingContextDoesNotExist ReportingContextType = 0
	ReportingContextNVMPort      ReportingContextType = 1
	ReportingContextMiPort       ReportingContextType = 2
)

func (t ReportingContextType) String() string {
	switch t {
	case ReportingContextDoesNotExist:
		return "DoesNotExist"
	case ReportingContextNVMPort:
		return "NVMPort"
	case ReportingContextMiPort:
		return "MiPort"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(t))
}

// ReportingContext identifies the port through which the log was reported.
// Port is meaningful for NVMPort and MiPort only.
type ReportingContext struct {
	Type ReportingContextType
	Port uint16
	Raw  uint32
}

func (r ReportingContext) String() string {
	switch r.Type {
	case ReportingContextNVMPort, ReportingContextMiPort:
		return fmt.Sprintf("%s(%d)", r.Type, r.Port)
	}
	return r.Type.String()
}

// DecodeReportingContext decodes the reporting context information word
// bits 15:00 - port identifier
// bits 17:16 - port identifier type
// bit 18 - reporting context exists
func DecodeReportingContext(raw uint32) ReportingContext {
	b := []byte{byte(raw), byte(raw >> 8), byte(raw >> 16), byte(raw >> 24)}
	rc := ReportingContext{Raw: raw}
	if Bits(b, 18, 1) == 0 {
		rc.Type = ReportingContextDoesNotExist
		return rc
	}
	rc.Type = ReportingContextType(Bits(b, 16, 2))
	rc.Port = uint16(Bits(b, 0, 16))
	return rc
}

// LogHeaderExtension holds the fields present from ExtendedHeaderRevision on
type LogHeaderExtension struct {
	Generation       uint16
	ReportingContext ReportingContext
}

// LogHeader ... // 512 bytes
type LogHeader struct {
	LogID             uint8
	NumEvents         uint32 // TNEV
	LogLength         uint64 // TLL, total log length in bytes
	Revision          uint8
	HeaderLength      uint16
	Timestamp         Timestamp
	PowerOnHours      Uint128
	PowerCycleCount   uint64
	VendorID          uint16
	SubsystemVendorID uint16
	SerialNumber      string
	ModelNumber       string
	SubsystemNQN      string
	SupportedEvents   SupportedEvents
	// Extension is nil for logs older than ExtendedHeaderRevision
	Extension *LogHeaderExtension
}

// DecodeLogHeader decodes the 512-byte log header
func DecodeLogHeader(c *Cursor) (*LogHeader, error) {
	h := &LogHeader{}
	var err error

	// 00 - log identifier
	// 03:01 - reserved
	if h.LogID, err = c.Uint8("log identifier"); err != nil {
		return nil, err
	}
	if err = c.Skip(3, "log header reserved"); err != nil {
		return nil, err
	}
	// 07:04 - total number of events (TNEV)
	if h.NumEvents, err = c.Uint32("total number of events"); err != nil {
		return nil, err
	}
	// 15:08 - total log length (TLL)
	if h.LogLength, err = c.Uint64("total log length"); err != nil {
		return nil, err
	}
	// 16 - log revision
	// 17 - reserved
	if h.Revision, err = c.Uint8("log revision"); err != nil {
		return nil, err
	}
	if err = c.Skip(1, "log header reserved"); err != nil {
		return nil, err
	}
	// 19:18 - log header length
	if h.HeaderLength, err = c.Uint16("log header length"); err != nil {
		return nil, err
	}
	// 27:20 - timestamp
	if h.Timestamp, err = DecodeTimestamp(c, "log timestamp"); err != nil {
		return nil, err
	}
	// 43:28 - power on hours (POH)
	if h.PowerOnHours, err = c.Uint128("power on hours"); err != nil {
		return nil, err
	}
	// 51:44 - power cycle count
	if h.PowerCycleCount, err = c.Uint64("power cycle count"); err != nil {
		return nil, err
	}
	// 53:52 - PCI vendor id (VID)
	if h.VendorID, err = c.Uint16("pci vendor id"); err != nil {
		return nil, err
	}
	// 55:54 - PCI subsystem vendor id (SSVID)
	if h.SubsystemVendorID, err = c.Uint16("pci subsystem vendor id"); err != nil {
		return nil, err
	}
	// 75:56 - serial number (SN)
	if h.SerialNumber, err = c.Text(20, "serial number"); err != nil {
		return nil, err
	}
	// 115:76 - model number (MN)
	if h.ModelNumber, err = c.Text(40, "model number"); err != nil {
		return nil, err
	}
	// 371:116 - NVM subsystem NVMe qualified name (SUBNQN)
	if h.SubsystemNQN, err = c.Text(256, "subsystem nqn"); err != nil {
		return nil, err
	}
	// 479:372 - reserved before revision 2
	// 373:372 - generation number, 377:374 - reporting context information
	reserved := 108
	if h.Revision >= ExtendedHeaderRevision {
		ext := &LogHeaderExtension{}
		if ext.Generation, err = c.Uint16("generation number"); err != nil {
			return nil, err
		}
		rci, err := c.Uint32("reporting context information")
		if err != nil {
			return nil, err
		}
		ext.ReportingContext = DecodeReportingContext(rci)
		h.Extension = ext
		reserved -= 6
	}
	if err = c.Skip(reserved, "log header reserved"); err != nil {
		return nil, err
	}
	// 511:480 - supported events bitmap
	if h.SupportedEvents, err = DecodeSupportedEvents(c); err != nil {
		return nil, err
	}

	log.Debug("DecodeLogHeader: LogID: 0x%02x", h.LogID)
	log.Debug("DecodeLogHeader: NumEvents: %d", h.NumEvents)
	log.Debug("DecodeLogHeader: LogLength: %d", h.LogLength)
	log.Debug("DecodeLogHeader: Revision: %d", h.Revision)
	log.Debug("DecodeLogHeader: SerialNumber: %q", h.SerialNumber)
	log.Debug("DecodeLogHeader: ModelNumber: %q", h.ModelNumber)

	return h, nil
}
