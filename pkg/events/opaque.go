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

// Opaque is the payload of vendor specific and TCG defined events.
// Its contents are defined outside of the log format and kept verbatim.
type Opaque struct {
	layers.BaseLayer `json:"-"`
	Type             pel.EventType `json:"-"`
	Data             []byte        `json:"data"`
}

func (o *Opaque) LayerType() gopacket.LayerType {
	if o.Type == pel.EventTypeTcgDefined {
		return TcgDefinedLayerType
	}
	return VendorSpecificLayerType
}

func (o *Opaque) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	o.Data = data
	o.BaseLayer = pel.NewBaseLayer(data, len(data))
	return nil
}
