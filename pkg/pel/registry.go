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
	"fmt"

	"github.com/google/gopacket"
)

// EventTypeMetadata describes how the payload of one event type is decoded
type EventTypeMetadata struct {
	DecodeWith PayloadDecoder
	Name       string
	LayerType  gopacket.LayerType
}

// Registry maps every possible event type to a payload decoder.
// A new registry decodes every payload as RawPayload. Registries are
// plain values owned by the caller and passed to Decode explicitly.
type Registry struct {
	entries [256]EventTypeMetadata
}

func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.entries {
		r.entries[i] = EventTypeMetadata{
			DecodeWith: PayloadDecodeFunc(decodeRawPayload),
			Name:       EventType(i).String(),
			LayerType:  RawPayloadLayerType,
		}
	}
	return r
}

// Register installs the decoder of an event type. A nil decoder restores the fallback.
func (r *Registry) Register(t EventType, meta EventTypeMetadata) {
	if meta.DecodeWith == nil {
		meta.DecodeWith = PayloadDecodeFunc(decodeRawPayload)
		meta.LayerType = RawPayloadLayerType
	}
	if meta.Name == "" {
		meta.Name = t.String()
	}
	r.entries[t] = meta
}

// Lookup never fails: unregistered event types get the raw payload decoder
func (r *Registry) Lookup(t EventType) EventTypeMetadata {
	return r.entries[t]
}

// Registered reports whether the event type has a decoder other than the fallback
func (r *Registry) Registered(t EventType) bool {
	return r.entries[t].LayerType != RawPayloadLayerType
}

// Clone returns an independent copy that can be modified without affecting r
func (r *Registry) Clone() *Registry {
	c := *r
	return &c
}

func (r *Registry) String() string {
	n := 0
	for i := range r.entries {
		if r.Registered(EventType(i)) {
			n++
		}
	}
	return fmt.Sprintf("Registry{%d decoders}", n)
}
