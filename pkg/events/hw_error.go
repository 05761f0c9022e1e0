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
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-pel/pkg/pel"
)

const nvmHardwareErrorFixedSize = 4

// HardwareErrorCode is the NVM subsystem hardware error event code
type HardwareErrorCode uint16

const (
	HardwareErrorPCIeCorrectable           HardwareErrorCode = 0x01
	HardwareErrorPCIeUncorrectableNonFatal HardwareErrorCode = 0x02
	HardwareErrorPCIeUncorrectableFatal    HardwareErrorCode = 0x03
	HardwareErrorPCIeLinkStatusChange      HardwareErrorCode = 0x04
	HardwareErrorPCIeLinkNotActive         HardwareErrorCode = 0x05
	HardwareErrorCriticalWarning           HardwareErrorCode = 0x06
	HardwareErrorEnduranceGroupWarning     HardwareErrorCode = 0x07
	HardwareErrorUnsafeShutdown            HardwareErrorCode = 0x08
	HardwareErrorControllerFatalStatus     HardwareErrorCode = 0x09
	HardwareErrorMediaAndDataIntegrity     HardwareErrorCode = 0x0a
)

func (c HardwareErrorCode) String() string {
	switch c {
	case HardwareErrorPCIeCorrectable:
		return "PCIeCorrectableError"
	case HardwareErrorPCIeUncorrectableNonFatal:
		return "PCIeUncorrectableNonFatalError"
	case HardwareErrorPCIeUncorrectableFatal:
		return "PCIeUncorrectableFatalError"
	case HardwareErrorPCIeLinkStatusChange:
		return "PCIeLinkStatusChange"
	case HardwareErrorPCIeLinkNotActive:
		return "PCIeLinkNotActive"
	case HardwareErrorCriticalWarning:
		return "CriticalWarningCondition"
	case HardwareErrorEnduranceGroupWarning:
		return "EnduranceGroupCriticalWarningCondition"
	case HardwareErrorUnsafeShutdown:
		return "UnsafeShutdown"
	case HardwareErrorControllerFatalStatus:
		return "ControllerFatalStatus"
	case HardwareErrorMediaAndDataIntegrity:
		return "MediaAndDataIntegrityStatus"
	}
	return fmt.Sprintf("Unknown(0x%04x)", uint16(c))
}

func (c HardwareErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// NvmHardwareError is logged when the NVM subsystem detects a hardware error.
// The additional information is specific to the error code and kept raw.
type NvmHardwareError struct {
	layers.BaseLayer `json:"-"`
	Code             HardwareErrorCode `json:"code"`
	AdditionalInfo   []byte            `json:"additionalInfo,omitempty"`
}

func (h *NvmHardwareError) LayerType() gopacket.LayerType {
	return NvmHardwareErrorLayerType
}

func (h *NvmHardwareError) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := fixedPart(pel.EventTypeNvmHardwareError, data, nvmHardwareErrorFixedSize); err != nil {
		return err
	}
	c := pel.NewCursor(data)

	// 01:00 - hardware error event code
	code, err := c.Uint16("hardware error event code")
	if err != nil {
		return err
	}
	h.Code = HardwareErrorCode(code)
	// 03:02 - reserved
	if err = c.Skip(2, "hardware error reserved"); err != nil {
		return err
	}
	// additional hardware error information
	if h.AdditionalInfo, err = c.TakeCopy(c.Len(), "additional hardware error information"); err != nil {
		return err
	}
	h.BaseLayer = pel.NewBaseLayer(data, c.Offset())
	return nil
}
