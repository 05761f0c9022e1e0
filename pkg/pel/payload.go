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
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// EventLayerNumBase is added to an event type to get the number
	// of the gopacket layer type of its payload
	EventLayerNumBase = 2000
	// RawPayloadLayerNum identifies the fallback payload layer
	RawPayloadLayerNum = 2300
)

// Payload is the decoded body of an event record. LayerContents holds the bytes
// the decoder consumed and LayerPayload the bytes it left undecoded.
type Payload interface {
	gopacket.Layer
}

// PayloadDecoder decodes the body of an event record. data holds exactly the
// declared payload length and is owned by the decoder. Decoders call
// df.SetTruncated() when the body ends in the middle of a variable part.
type PayloadDecoder interface {
	DecodePayload(data []byte, revision uint8, df gopacket.DecodeFeedback) (Payload, error)
}

// PayloadDecodeFunc is an adapter allowing plain functions to be used as PayloadDecoder
type PayloadDecodeFunc func(data []byte, revision uint8, df gopacket.DecodeFeedback) (Payload, error)

func (f PayloadDecodeFunc) DecodePayload(data []byte, revision uint8, df gopacket.DecodeFeedback) (Payload, error) {
	return f(data, revision, df)
}

// NewBaseLayer splits a payload into the consumed part and the undecoded rest
func NewBaseLayer(data []byte, consumed int) layers.BaseLayer {
	if consumed > len(data) {
		consumed = len(data)
	}
	return layers.BaseLayer{
		Contents: data[:consumed],
		Payload:  data[consumed:],
	}
}

// RawPayload keeps the body of an event verbatim. It is produced for event
// types without a registered decoder and when a decoder fails.
type RawPayload struct {
	layers.BaseLayer `json:"-"`
	Data             []byte `json:"data"`
}

var RawPayloadLayerType = gopacket.RegisterLayerType(RawPayloadLayerNum,
	gopacket.LayerTypeMetadata{Name: "RawPayload"})

// LayerType returns the type of the raw payload layer in the layer catalog
func (p *RawPayload) LayerType() gopacket.LayerType {
	return RawPayloadLayerType
}

func decodeRawPayload(data []byte, revision uint8, df gopacket.DecodeFeedback) (Payload, error) {
	return &RawPayload{
		BaseLayer: NewBaseLayer(data, len(data)),
		Data:      data,
	}, nil
}
