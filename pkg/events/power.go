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

const (
	// powerOnResetFixedSize is the firmware revision preceding the descriptors
	powerOnResetFixedSize = 8
	// ResetDescriptorSize is the size of one controller reset information descriptor
	ResetDescriptorSize = 36
)

// ResetDescriptor describes the reset of one controller
type ResetDescriptor struct {
	ControllerID         uint16        `json:"controllerID"`
	FirmwareActivation   uint8         `json:"firmwareActivation"`
	OperationInProgress  uint8         `json:"operationInProgress"`
	ControllerPowerCycle uint32        `json:"controllerPowerCycle"`
	PowerOnMilliseconds  uint64        `json:"powerOnMilliseconds"`
	ControllerTimestamp  pel.Timestamp `json:"controllerTimestamp"`
}

// PowerOnReset is logged after a power on or a reset of the NVM subsystem
type PowerOnReset struct {
	layers.BaseLayer `json:"-"`
	FirmwareRevision string            `json:"firmwareRevision"`
	Resets           []ResetDescriptor `json:"resets"`
}

func (p *PowerOnReset) LayerType() gopacket.LayerType {
	return PowerOnResetLayerType
}

func decodeResetDescriptor(c *pel.Cursor) (ResetDescriptor, error) {
	var d ResetDescriptor
	var err error

	// 01:00 - controller id
	if d.ControllerID, err = c.Uint16("controller id"); err != nil {
		return d, err
	}
	// 02 - firmware activation
	if d.FirmwareActivation, err = c.Uint8("firmware activation"); err != nil {
		return d, err
	}
	// 03 - operation in progress
	if d.OperationInProgress, err = c.Uint8("operation in progress"); err != nil {
		return d, err
	}
	// 15:04 - reserved
	if err = c.Skip(12, "reset descriptor reserved"); err != nil {
		return d, err
	}
	// 19:16 - controller power cycle
	if d.ControllerPowerCycle, err = c.Uint32("controller power cycle"); err != nil {
		return d, err
	}
	// 27:20 - power on milliseconds
	if d.PowerOnMilliseconds, err = c.Uint64("power on milliseconds"); err != nil {
		return d, err
	}
	// 35:28 - controller timestamp
	if d.ControllerTimestamp, err = pel.DecodeTimestamp(c, "controller timestamp"); err != nil {
		return d, err
	}
	return d, nil
}

func (p *PowerOnReset) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := fixedPart(pel.EventTypePowerOnReset, data, powerOnResetFixedSize); err != nil {
		return err
	}
	c := pel.NewCursor(data)
	var err error

	// 07:00 - firmware revision
	if p.FirmwareRevision, err = c.Text(8, "firmware revision"); err != nil {
		return err
	}
	// one descriptor per controller until the end of the event
	p.Resets = make([]ResetDescriptor, 0, c.Len()/ResetDescriptorSize)
	for c.Len() >= ResetDescriptorSize {
		d, err := decodeResetDescriptor(c)
		if err != nil {
			return err
		}
		p.Resets = append(p.Resets, d)
	}
	if c.Len() > 0 {
		df.SetTruncated()
	}
	p.BaseLayer = pel.NewBaseLayer(data, c.Offset())
	return nil
}
