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
	FormatNvmStartSize      = 12
	FormatNvmCompletionSize = 12
)

// FormatNvmStart is logged when a Format NVM command starts
type FormatNvmStart struct {
	layers.BaseLayer `json:"-"`
	NamespaceID      uint32 `json:"namespaceID"`
	FormatAttributes uint8  `json:"formatAttributes"`
	CDW10            uint32 `json:"cdw10"`
}

func (f *FormatNvmStart) LayerType() gopacket.LayerType {
	return FormatNvmStartLayerType
}

func (f *FormatNvmStart) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := fixedPart(pel.EventTypeFormatNvmStart, data, FormatNvmStartSize); err != nil {
		return err
	}
	c := pel.NewCursor(data)
	var err error

	// 03:00 - namespace identifier
	if f.NamespaceID, err = c.Uint32("namespace id"); err != nil {
		return err
	}
	// 04 - format NVM attributes
	if f.FormatAttributes, err = c.Uint8("format nvm attributes"); err != nil {
		return err
	}
	// 07:05 - reserved
	if err = c.Skip(3, "format nvm start reserved"); err != nil {
		return err
	}
	// 11:08 - format NVM CDW10
	if f.CDW10, err = c.Uint32("format nvm cdw10"); err != nil {
		return err
	}
	f.BaseLayer = pel.NewBaseLayer(data, c.Offset())
	return nil
}

// FormatNvmCompletion is logged when a Format NVM command completes
type FormatNvmCompletion struct {
	layers.BaseLayer `json:"-"`
	NamespaceID      uint32 `json:"namespaceID"`
	// SmallestProgressIndicator is the lowest format progress reported while formatting
	SmallestProgressIndicator uint8  `json:"smallestProgressIndicator"`
	Status                    uint8  `json:"status"`
	CompletionInfo            uint16 `json:"completionInfo"`
	StatusField               uint32 `json:"statusField"`
}

func (f *FormatNvmCompletion) LayerType() gopacket.LayerType {
	return FormatNvmCompletionLayerType
}

func (f *FormatNvmCompletion) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := fixedPart(pel.EventTypeFormatNvmCompletion, data, FormatNvmCompletionSize); err != nil {
		return err
	}
	c := pel.NewCursor(data)
	var err error

	// 03:00 - namespace identifier
	if f.NamespaceID, err = c.Uint32("namespace id"); err != nil {
		return err
	}
	// 04 - smallest format progress indicator
	if f.SmallestProgressIndicator, err = c.Uint8("smallest format progress indicator"); err != nil {
		return err
	}
	// 05 - format NVM status
	if f.Status, err = c.Uint8("format nvm status"); err != nil {
		return err
	}
	// 07:06 - completion information
	if f.CompletionInfo, err = c.Uint16("completion information"); err != nil {
		return err
	}
	// 11:08 - status field
	if f.StatusField, err = c.Uint32("status field"); err != nil {
		return err
	}
	f.BaseLayer = pel.NewBaseLayer(data, c.Offset())
	return nil
}
