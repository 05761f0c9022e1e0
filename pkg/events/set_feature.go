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

const setFeatureFixedSize = 4

// SetFeature is logged when a Set Features command changes a feature.
// The layout word tells which parts of the command were recorded.
type SetFeature struct {
	layers.BaseLayer `json:"-"`
	// DwordCount is the number of command dwords starting with CDW10
	DwordCount uint8 `json:"dwordCount"`
	// HasCompletionDW0 is set when completion queue entry dword 0 follows the command dwords
	HasCompletionDW0 bool `json:"hasCompletionDw0"`
	// MemoryBufferCount is the number of bytes of the command data buffer
	MemoryBufferCount uint16   `json:"memoryBufferCount"`
	CommandDwords     []uint32 `json:"commandDwords"`
	CompletionDW0     uint32   `json:"completionDw0,omitempty"`
	MemoryBuffer      []byte   `json:"memoryBuffer,omitempty"`
}

func (s *SetFeature) LayerType() gopacket.LayerType {
	return SetFeatureLayerType
}

// FeatureID returns the feature identifier from CDW10 or false if CDW10 was not logged
func (s *SetFeature) FeatureID() (uint8, bool) {
	if len(s.CommandDwords) == 0 {
		return 0, false
	}
	return uint8(s.CommandDwords[0]), true
}

func (s *SetFeature) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := fixedPart(pel.EventTypeSetFeature, data, setFeatureFixedSize); err != nil {
		return err
	}
	c := pel.NewCursor(data)

	// 03:00 - set feature event layout
	// bits 02:00 - dword count
	// bit 03 - logged command completion dword 0
	// bits 31:16 - memory buffer count
	word, err := c.Take(4, "set feature event layout")
	if err != nil {
		return err
	}
	s.DwordCount = uint8(pel.Bits(word, 0, 3))
	s.HasCompletionDW0 = pel.Bits(word, 3, 1) == 1
	s.MemoryBufferCount = uint16(pel.Bits(word, 16, 16))

	// the command may be cut short, contents end at the last complete field
	defer func() {
		s.BaseLayer = pel.NewBaseLayer(data, c.Offset())
	}()

	// command dwords
	s.CommandDwords = make([]uint32, 0, s.DwordCount)
	for i := 0; i < int(s.DwordCount); i++ {
		dw, err := c.Uint32("set feature command dword")
		if err != nil {
			df.SetTruncated()
			return nil
		}
		s.CommandDwords = append(s.CommandDwords, dw)
	}
	// completion queue entry dword 0
	if s.HasCompletionDW0 {
		if s.CompletionDW0, err = c.Uint32("set feature completion dword 0"); err != nil {
			df.SetTruncated()
			return nil
		}
	}
	// memory buffer
	n := int(s.MemoryBufferCount)
	if n > c.Len() {
		n = c.Len()
		df.SetTruncated()
	}
	if s.MemoryBuffer, err = c.TakeCopy(n, "set feature memory buffer"); err != nil {
		return err
	}
	return nil
}
