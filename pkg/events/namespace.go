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

// ChangeNamespaceSize is the size of the change namespace event data
const ChangeNamespaceSize = 48

// ChangeNamespace is logged when a namespace is created, deleted or resized
type ChangeNamespace struct {
	layers.BaseLayer `json:"-"`
	// ManagementCDW10 holds the select field of the Namespace Management command
	ManagementCDW10  uint32 `json:"managementCdw10"`
	Size             uint64 `json:"size"`
	Capacity         uint64 `json:"capacity"`
	FormattedLBASize uint8  `json:"formattedLbaSize"`
	DataProtection   uint8  `json:"dataProtection"`
	MultipathSharing uint8  `json:"multipathSharing"`
	ANAGroupID       uint32 `json:"anaGroupID"`
	NVMSetID         uint16 `json:"nvmSetID"`
	NamespaceID      uint32 `json:"namespaceID"`
}

func (n *ChangeNamespace) LayerType() gopacket.LayerType {
	return ChangeNamespaceLayerType
}

func (n *ChangeNamespace) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := fixedPart(pel.EventTypeChangeNamespace, data, ChangeNamespaceSize); err != nil {
		return err
	}
	c := pel.NewCursor(data)
	var err error

	// 03:00 - namespace management CDW10
	if n.ManagementCDW10, err = c.Uint32("namespace management cdw10"); err != nil {
		return err
	}
	// 07:04 - reserved
	if err = c.Skip(4, "change namespace reserved"); err != nil {
		return err
	}
	// 15:08 - namespace size (NSZE)
	if n.Size, err = c.Uint64("namespace size"); err != nil {
		return err
	}
	// 23:16 - reserved
	if err = c.Skip(8, "change namespace reserved"); err != nil {
		return err
	}
	// 31:24 - namespace capacity (NCAP)
	if n.Capacity, err = c.Uint64("namespace capacity"); err != nil {
		return err
	}
	// 32 - formatted LBA size (FLBAS)
	if n.FormattedLBASize, err = c.Uint8("formatted lba size"); err != nil {
		return err
	}
	// 33 - end-to-end data protection type settings (DPS)
	if n.DataProtection, err = c.Uint8("data protection settings"); err != nil {
		return err
	}
	// 34 - namespace multi-path I/O and namespace sharing capabilities (NMIC)
	if n.MultipathSharing, err = c.Uint8("namespace multipath and sharing"); err != nil {
		return err
	}
	// 35 - reserved
	if err = c.Skip(1, "change namespace reserved"); err != nil {
		return err
	}
	// 39:36 - ANA group identifier
	if n.ANAGroupID, err = c.Uint32("ana group identifier"); err != nil {
		return err
	}
	// 41:40 - NVM set identifier
	if n.NVMSetID, err = c.Uint16("nvm set identifier"); err != nil {
		return err
	}
	// 43:42 - reserved
	if err = c.Skip(2, "change namespace reserved"); err != nil {
		return err
	}
	// 47:44 - namespace ID
	if n.NamespaceID, err = c.Uint32("namespace id"); err != nil {
		return err
	}
	n.BaseLayer = pel.NewBaseLayer(data, c.Offset())
	return nil
}
