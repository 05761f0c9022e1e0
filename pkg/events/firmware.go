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

// FirmwareCommitSize is the size of the firmware commit event data
const FirmwareCommitSize = 22

// FirmwareCommit is logged when a Firmware Commit command completes
type FirmwareCommit struct {
	layers.BaseLayer `json:"-"`
	OldRevision      string `json:"oldRevision"`
	NewRevision      string `json:"newRevision"`
	CommitAction     uint8  `json:"commitAction"`
	Slot             uint8  `json:"slot"`
	StatusCodeType   uint8  `json:"statusCodeType"`
	Status           uint8  `json:"status"`
	VendorStatus     uint16 `json:"vendorStatus"`
}

func (f *FirmwareCommit) LayerType() gopacket.LayerType {
	return FirmwareCommitLayerType
}

func (f *FirmwareCommit) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := fixedPart(pel.EventTypeFirmwareCommit, data, FirmwareCommitSize); err != nil {
		return err
	}
	c := pel.NewCursor(data)
	var err error

	// 07:00 - old firmware revision
	if f.OldRevision, err = c.Text(8, "old firmware revision"); err != nil {
		return err
	}
	// 15:08 - new firmware revision
	if f.NewRevision, err = c.Text(8, "new firmware revision"); err != nil {
		return err
	}
	// 16 - firmware commit action
	if f.CommitAction, err = c.Uint8("firmware commit action"); err != nil {
		return err
	}
	// 17 - firmware slot
	if f.Slot, err = c.Uint8("firmware slot"); err != nil {
		return err
	}
	// 18 - status code type for firmware commit command
	if f.StatusCodeType, err = c.Uint8("status code type"); err != nil {
		return err
	}
	// 19 - status returned for firmware commit command
	if f.Status, err = c.Uint8("status"); err != nil {
		return err
	}
	// 21:20 - vendor assigned firmware commit status code
	if f.VendorStatus, err = c.Uint16("vendor status"); err != nil {
		return err
	}
	f.BaseLayer = pel.NewBaseLayer(data, c.Offset())
	return nil
}
