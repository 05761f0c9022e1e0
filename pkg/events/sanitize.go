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
	SanitizeStartSize      = 12
	SanitizeCompletionSize = 8
)

// SanitizeStart is logged when a Sanitize command starts
type SanitizeStart struct {
	layers.BaseLayer `json:"-"`
	Capabilities     uint32 `json:"capabilities"`
	CDW10            uint32 `json:"cdw10"`
	CDW11            uint32 `json:"cdw11"`
}

func (s *SanitizeStart) LayerType() gopacket.LayerType {
	return SanitizeStartLayerType
}

func (s *SanitizeStart) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := fixedPart(pel.EventTypeSanitizeStart, data, SanitizeStartSize); err != nil {
		return err
	}
	c := pel.NewCursor(data)
	var err error

	// 03:00 - sanitize capabilities (SANICAP)
	if s.Capabilities, err = c.Uint32("sanitize capabilities"); err != nil {
		return err
	}
	// 07:04 - sanitize CDW10
	if s.CDW10, err = c.Uint32("sanitize cdw10"); err != nil {
		return err
	}
	// 11:08 - sanitize CDW11
	if s.CDW11, err = c.Uint32("sanitize cdw11"); err != nil {
		return err
	}
	s.BaseLayer = pel.NewBaseLayer(data, c.Offset())
	return nil
}

// SanitizeCompletion is logged when a sanitize operation completes
type SanitizeCompletion struct {
	layers.BaseLayer `json:"-"`
	Progress         uint16 `json:"progress"`
	Status           uint16 `json:"status"`
	CompletionInfo   uint16 `json:"completionInfo"`
}

func (s *SanitizeCompletion) LayerType() gopacket.LayerType {
	return SanitizeCompletionLayerType
}

// ProgressPercent converts the progress numerator, a fraction of 65536, into percent
func (s *SanitizeCompletion) ProgressPercent() float64 {
	return float64(s.Progress) * 100 / 65536
}

func (s *SanitizeCompletion) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := fixedPart(pel.EventTypeSanitizeCompletion, data, SanitizeCompletionSize); err != nil {
		return err
	}
	c := pel.NewCursor(data)
	var err error

	// 01:00 - sanitize progress (SPROG)
	if s.Progress, err = c.Uint16("sanitize progress"); err != nil {
		return err
	}
	// 03:02 - sanitize status (SSTAT)
	if s.Status, err = c.Uint16("sanitize status"); err != nil {
		return err
	}
	// 05:04 - completion information
	if s.CompletionInfo, err = c.Uint16("completion information"); err != nil {
		return err
	}
	// 07:06 - reserved
	if err = c.Skip(2, "sanitize completion reserved"); err != nil {
		return err
	}
	s.BaseLayer = pel.NewBaseLayer(data, c.Offset())
	return nil
}
