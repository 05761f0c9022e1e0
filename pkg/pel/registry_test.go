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
	"testing"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 256; i++ {
		meta := r.Lookup(EventType(i))
		if r.Registered(EventType(i)) || meta.LayerType != RawPayloadLayerType || meta.DecodeWith == nil {
			t.Errorf("tag 0x%02x: %+v", i, meta)
		}
		if meta.Name != EventType(i).String() {
			t.Errorf("tag 0x%02x: Name = %s", i, meta.Name)
		}
	}
	if got := r.String(); got != "Registry{0 decoders}" {
		t.Errorf("String() = %s", got)
	}
}

func TestRegistryRegister(t *testing.T) {
	r := testRegistry(EventTypeThermalExcursion, testDecoder(2))
	if !r.Registered(EventTypeThermalExcursion) {
		t.Fatal("decoder not registered")
	}
	if meta := r.Lookup(EventTypeThermalExcursion); meta.Name != "ThermalExcursion" || meta.LayerType != testPayloadLayerType {
		t.Errorf("Lookup() = %+v", meta)
	}

	clone := r.Clone()
	r.Register(EventTypeThermalExcursion, EventTypeMetadata{})
	if r.Registered(EventTypeThermalExcursion) {
		t.Error("nil decoder did not restore the fallback")
	}
	if !clone.Registered(EventTypeThermalExcursion) {
		t.Error("clone changed with the original")
	}
	if got := clone.String(); got != "Registry{1 decoders}" {
		t.Errorf("String() = %s", got)
	}
}
