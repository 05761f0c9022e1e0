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

const ThermalExcursionSize = 2

// ThermalExcursion is logged when the composite temperature crosses a threshold
type ThermalExcursion struct {
	layers.BaseLayer `json:"-"`
	OverTemperature  uint8 `json:"overTemperature"`
	Threshold        uint8 `json:"threshold"`
}

func (t *ThermalExcursion) LayerType() gopacket.LayerType {
	return ThermalExcursionLayerType
}

func (t *ThermalExcursion) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := fixedPart(pel.EventTypeThermalExcursion, data, ThermalExcursionSize); err != nil {
		return err
	}
	t.OverTemperature = data[0]
	t.Threshold = data[1]
	t.BaseLayer = pel.NewBaseLayer(data, ThermalExcursionSize)
	return nil
}
